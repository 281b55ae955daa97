package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-redis/redis_rate/v10"

	"github.com/mraditya/flight-journal-service/internal/app/config"
	"github.com/mraditya/flight-journal-service/internal/app/dto"
	"github.com/mraditya/flight-journal-service/internal/app/endpoints"
	httptransport "github.com/mraditya/flight-journal-service/internal/pkg/transport/http"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
	limiter *redis_rate.Limiter,
) *chi.Mux {
	// Initialize Router
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.CORSMiddleware(),
			httptransport.Recoverer(slog.Default()),
			render.SetContentType(render.ContentTypeJSON),
		)

		router.Route("/flights", flightRoutes(endpts.Flight))
		router.Route("/groups", groupRoutes(endpts.Group))
		router.Route("/email-accounts", emailAccountRoutes(endpts.EmailAccount))
		router.Route("/airline-rules", airlineRuleRoutes(endpts.AirlineRule))
		router.Route("/inbox", inboxRoutes(endpts.Inbox, limiter, cfg.Forwarding.ImportRatePerMinute))
	})

	return router
}

func flightRoutes(endpt endpoints.FlightEndpoint) func(chi.Router) {
	return func(router chi.Router) {
		router.Post("/", httptransport.MakeHandlerFunc(
			endpt.CreateFlight,
			httptransport.DecodeRequest[dto.FlightRequest],
			httptransport.CreatedResponseWithBody,
		))
		router.Get("/", httptransport.MakeHandlerFunc(
			endpt.ListFlights,
			decodeFlightFilter,
			httptransport.ResponseWithBody,
		))
		router.Get("/upcoming", httptransport.MakeHandlerFunc(
			endpt.ListUpcoming,
			httptransport.NopRequestDecoder,
			httptransport.ResponseWithBody,
		))
		router.Get("/past", httptransport.MakeHandlerFunc(
			endpt.ListPast,
			httptransport.NopRequestDecoder,
			httptransport.ResponseWithBody,
		))
		router.Get("/stats", httptransport.MakeHandlerFunc(
			endpt.Stats,
			httptransport.NopRequestDecoder,
			httptransport.ResponseWithBody,
		))
		router.Get("/{id}", httptransport.MakeHandlerFunc(
			endpt.GetFlight,
			httptransport.DecodeIDRequest,
			httptransport.ResponseWithBody,
		))
		router.Put("/{id}", httptransport.MakeHandlerFunc(
			endpt.UpdateFlight,
			httptransport.DecodeIDWithBody[dto.FlightRequest],
			httptransport.ResponseWithBody,
		))
		router.Delete("/{id}", httptransport.MakeHandlerFunc(
			endpt.DeleteFlight,
			httptransport.DecodeIDRequest,
			httptransport.NoContentResponse,
		))
	}
}

func groupRoutes(endpt endpoints.GroupEndpoint) func(chi.Router) {
	return func(router chi.Router) {
		router.Post("/", httptransport.MakeHandlerFunc(
			endpt.CreateGroup,
			httptransport.DecodeRequest[dto.GroupRequest],
			httptransport.CreatedResponseWithBody,
		))
		router.Get("/", httptransport.MakeHandlerFunc(
			endpt.ListGroups,
			httptransport.NopRequestDecoder,
			httptransport.ResponseWithBody,
		))
		router.Post("/auto-group", httptransport.MakeHandlerFunc(
			endpt.AutoGroup,
			httptransport.NopRequestDecoder,
			httptransport.ResponseWithBody,
		))
		router.Get("/{id}", httptransport.MakeHandlerFunc(
			endpt.GetGroup,
			httptransport.DecodeIDRequest,
			httptransport.ResponseWithBody,
		))
		router.Put("/{id}", httptransport.MakeHandlerFunc(
			endpt.UpdateGroup,
			httptransport.DecodeIDWithBody[dto.GroupRequest],
			httptransport.ResponseWithBody,
		))
		router.Delete("/{id}", httptransport.MakeHandlerFunc(
			endpt.DeleteGroup,
			httptransport.DecodeIDRequest,
			httptransport.NoContentResponse,
		))
		router.Post("/{id}/flights", httptransport.MakeHandlerFunc(
			endpt.AddFlights,
			httptransport.DecodeIDWithBody[dto.GroupFlightsRequest],
			httptransport.ResponseWithBody,
		))
		router.Delete("/{id}/flights", httptransport.MakeHandlerFunc(
			endpt.RemoveFlights,
			httptransport.DecodeIDWithBody[dto.GroupFlightsRequest],
			httptransport.ResponseWithBody,
		))
		router.Get("/{id}/itinerary", httptransport.MakeHandlerFunc(
			endpt.Itinerary,
			httptransport.DecodeIDRequest,
			httptransport.ResponseWithBody,
		))
	}
}

func emailAccountRoutes(endpt endpoints.EmailAccountEndpoint) func(chi.Router) {
	return func(router chi.Router) {
		router.Post("/", httptransport.MakeHandlerFunc(
			endpt.CreateAccount,
			httptransport.DecodeRequest[dto.EmailAccountRequest],
			httptransport.CreatedResponseWithBody,
		))
		router.Get("/", httptransport.MakeHandlerFunc(
			endpt.ListAccounts,
			httptransport.NopRequestDecoder,
			httptransport.ResponseWithBody,
		))
		router.Get("/{id}", httptransport.MakeHandlerFunc(
			endpt.GetAccount,
			httptransport.DecodeIDRequest,
			httptransport.ResponseWithBody,
		))
		router.Put("/{id}", httptransport.MakeHandlerFunc(
			endpt.UpdateAccount,
			httptransport.DecodeIDWithBody[dto.EmailAccountRequest],
			httptransport.ResponseWithBody,
		))
		router.Delete("/{id}", httptransport.MakeHandlerFunc(
			endpt.DeleteAccount,
			httptransport.DecodeIDRequest,
			httptransport.NoContentResponse,
		))
	}
}

func airlineRuleRoutes(endpt endpoints.AirlineRuleEndpoint) func(chi.Router) {
	return func(router chi.Router) {
		router.Post("/", httptransport.MakeHandlerFunc(
			endpt.CreateRule,
			httptransport.DecodeRequest[dto.AirlineRuleRequest],
			httptransport.CreatedResponseWithBody,
		))
		router.Get("/", httptransport.MakeHandlerFunc(
			endpt.ListRules,
			httptransport.NopRequestDecoder,
			httptransport.ResponseWithBody,
		))
		router.Get("/{id}", httptransport.MakeHandlerFunc(
			endpt.GetRule,
			httptransport.DecodeIDRequest,
			httptransport.ResponseWithBody,
		))
		router.Put("/{id}", httptransport.MakeHandlerFunc(
			endpt.UpdateRule,
			httptransport.DecodeIDWithBody[dto.AirlineRuleRequest],
			httptransport.ResponseWithBody,
		))
		router.Delete("/{id}", httptransport.MakeHandlerFunc(
			endpt.DeleteRule,
			httptransport.DecodeIDRequest,
			httptransport.NoContentResponse,
		))
	}
}

func inboxRoutes(endpt endpoints.InboxEndpoint, limiter *redis_rate.Limiter, ratePerMinute int) func(chi.Router) {
	return func(router chi.Router) {
		router.With(httptransport.RateLimit(limiter, ratePerMinute)).
			Post("/import", httptransport.MakeHandlerFunc(
				endpt.Import,
				httptransport.DecodeRequest[dto.InboxMessage],
				httptransport.CreatedResponseWithBody,
			))
		router.Get("/forwarding-address", httptransport.MakeHandlerFunc(
			endpt.ForwardingAddress,
			httptransport.NopRequestDecoder,
			httptransport.ResponseWithBody,
		))
	}
}

func decodeFlightFilter(_ context.Context, r *http.Request) (interface{}, error) {
	query := r.URL.Query()

	return &dto.FlightFilter{
		Status:      query.Get("status"),
		AirlineCode: query.Get("airline_code"),
	}, nil
}
