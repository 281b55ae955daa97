// Package endpoints wraps the services as go-kit endpoints. Each
// endpoint type-asserts its decoded request and delegates to the
// service; no business logic lives here.
package endpoints

// Endpoints aggregates every endpoint group exposed by the HTTP router.
type Endpoints struct {
	Flight       FlightEndpoint
	Group        GroupEndpoint
	EmailAccount EmailAccountEndpoint
	AirlineRule  AirlineRuleEndpoint
	Inbox        InboxEndpoint
}

func MakeEndpoints(
	flights FlightService,
	groups GroupService,
	accounts EmailAccountService,
	rules AirlineRuleService,
	inbox InboxService,
) Endpoints {
	return Endpoints{
		Flight:       MakeFlightEndpoint(flights),
		Group:        MakeGroupEndpoint(groups),
		EmailAccount: MakeEmailAccountEndpoint(accounts),
		AirlineRule:  MakeAirlineRuleEndpoint(rules),
		Inbox:        MakeInboxEndpoint(inbox),
	}
}
