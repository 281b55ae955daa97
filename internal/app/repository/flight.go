package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mraditya/flight-journal-service/internal/app/dto"
)

const flightColumns = `id, group_id, airline_name, airline_code, flight_number, booking_reference,
		departure_airport, departure_city, departure_time, arrival_airport, arrival_city, arrival_time,
		passenger_name, seat, cabin_class, status, duration_minutes,
		email_account_id, email_subject, email_message_id, is_manually_added, notes, created_at, updated_at`

// FlightRepo defines the persistence operations for flights. The service
// layer depends on this interface, not the Postgres implementation, so it
// can be unit-tested with a mock.
type FlightRepo interface {
	// Create inserts a new flight and returns the persisted record with
	// DB-generated id and timestamps populated.
	Create(ctx context.Context, flight dto.Flight) (dto.Flight, error)

	// GetByID retrieves a single flight by its UUID primary key.
	// Returns ErrRecordNotFound if no flight with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (dto.Flight, error)

	// List returns flights matching the filter, most recent departure first.
	List(ctx context.Context, filter dto.FlightFilter) ([]dto.Flight, error)

	// ListUpcoming returns non-cancelled flights departing at or after now,
	// soonest first.
	ListUpcoming(ctx context.Context, now time.Time) ([]dto.Flight, error)

	// ListPast returns flights that already departed, most recent first.
	ListPast(ctx context.Context, now time.Time) ([]dto.Flight, error)

	// ListByGroup returns the member flights of a group ordered by departure.
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]dto.Flight, error)

	// ListUngrouped returns flights without a group ordered by departure.
	ListUngrouped(ctx context.Context) ([]dto.Flight, error)

	// Update overwrites the mutable fields of an existing flight and returns
	// the updated record. Returns ErrRecordNotFound if it does not exist.
	Update(ctx context.Context, flight dto.Flight) (dto.Flight, error)

	// Delete removes a flight by ID. Returns ErrRecordNotFound if it does
	// not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// AssignGroup sets the group of every listed flight and returns how many
	// rows changed.
	AssignGroup(ctx context.Context, flightIDs []uuid.UUID, groupID uuid.UUID) (int, error)

	// UnassignGroup detaches the listed flights from the given group only;
	// flights belonging to other groups are left alone.
	UnassignGroup(ctx context.Context, flightIDs []uuid.UUID, groupID uuid.UUID) (int, error)

	// ExistsByMessageID reports whether a flight was already imported from
	// the email message with the given Message-ID.
	ExistsByMessageID(ctx context.Context, messageID string) (bool, error)

	// Stats computes the aggregate statistics over all flights.
	Stats(ctx context.Context) (dto.FlightStats, error)
}

type pgFlightRepo struct {
	db db
}

// NewFlightRepo constructs a FlightRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx
// for rollback isolation.
func NewFlightRepo(db db) FlightRepo {
	return &pgFlightRepo{db: db}
}

func (r *pgFlightRepo) Create(ctx context.Context, flight dto.Flight) (dto.Flight, error) {
	q := `
		INSERT INTO flights (group_id, airline_name, airline_code, flight_number, booking_reference,
			departure_airport, departure_city, departure_time, arrival_airport, arrival_city, arrival_time,
			passenger_name, seat, cabin_class, status, duration_minutes,
			email_account_id, email_subject, email_message_id, is_manually_added, notes)
		VALUES (@group_id, @airline_name, @airline_code, @flight_number, @booking_reference,
			@departure_airport, @departure_city, @departure_time, @arrival_airport, @arrival_city, @arrival_time,
			@passenger_name, @seat, @cabin_class, @status, @duration_minutes,
			@email_account_id, @email_subject, @email_message_id, @is_manually_added, @notes)
		RETURNING ` + flightColumns

	row := r.db.QueryRow(ctx, q, flightArgs(flight))
	result, err := scanFlight(row)
	if err != nil {
		return dto.Flight{}, fmt.Errorf("repository.FlightRepo.Create: %w", err)
	}

	return result, nil
}

func (r *pgFlightRepo) GetByID(ctx context.Context, id uuid.UUID) (dto.Flight, error) {
	q := `SELECT ` + flightColumns + ` FROM flights WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanFlight(row)
	if err != nil {
		return dto.Flight{}, fmt.Errorf("repository.FlightRepo.GetByID: %w", err)
	}

	return result, nil
}

func (r *pgFlightRepo) List(ctx context.Context, filter dto.FlightFilter) ([]dto.Flight, error) {
	q := `SELECT ` + flightColumns + ` FROM flights WHERE 1=1`
	args := pgx.NamedArgs{}

	if filter.Status != "" {
		q += ` AND status = @status`
		args["status"] = filter.Status
	}
	if filter.AirlineCode != "" {
		q += ` AND airline_code = @airline_code`
		args["airline_code"] = filter.AirlineCode
	}
	q += ` ORDER BY departure_time DESC`

	return r.queryFlights(ctx, "List", q, args)
}

func (r *pgFlightRepo) ListUpcoming(ctx context.Context, now time.Time) ([]dto.Flight, error) {
	q := `SELECT ` + flightColumns + `
		FROM flights
		WHERE departure_time >= @now AND status <> 'cancelled'
		ORDER BY departure_time ASC`

	return r.queryFlights(ctx, "ListUpcoming", q, pgx.NamedArgs{"now": now})
}

func (r *pgFlightRepo) ListPast(ctx context.Context, now time.Time) ([]dto.Flight, error) {
	q := `SELECT ` + flightColumns + `
		FROM flights
		WHERE departure_time < @now
		ORDER BY departure_time DESC`

	return r.queryFlights(ctx, "ListPast", q, pgx.NamedArgs{"now": now})
}

func (r *pgFlightRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]dto.Flight, error) {
	q := `SELECT ` + flightColumns + `
		FROM flights
		WHERE group_id = @group_id
		ORDER BY departure_time ASC`

	return r.queryFlights(ctx, "ListByGroup", q, pgx.NamedArgs{"group_id": groupID})
}

func (r *pgFlightRepo) ListUngrouped(ctx context.Context) ([]dto.Flight, error) {
	q := `SELECT ` + flightColumns + `
		FROM flights
		WHERE group_id IS NULL
		ORDER BY departure_time ASC`

	return r.queryFlights(ctx, "ListUngrouped", q, pgx.NamedArgs{})
}

func (r *pgFlightRepo) Update(ctx context.Context, flight dto.Flight) (dto.Flight, error) {
	q := `
		UPDATE flights
		SET group_id          = @group_id,
		    airline_name      = @airline_name,
		    airline_code      = @airline_code,
		    flight_number     = @flight_number,
		    booking_reference = @booking_reference,
		    departure_airport = @departure_airport,
		    departure_city    = @departure_city,
		    departure_time    = @departure_time,
		    arrival_airport   = @arrival_airport,
		    arrival_city      = @arrival_city,
		    arrival_time      = @arrival_time,
		    passenger_name    = @passenger_name,
		    seat              = @seat,
		    cabin_class       = @cabin_class,
		    status            = @status,
		    duration_minutes  = @duration_minutes,
		    notes             = @notes,
		    updated_at        = now()
		WHERE id = @id
		RETURNING ` + flightColumns

	args := flightArgs(flight)
	args["id"] = flight.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanFlight(row)
	if err != nil {
		return dto.Flight{}, fmt.Errorf("repository.FlightRepo.Update: %w", err)
	}

	return result, nil
}

func (r *pgFlightRepo) Delete(ctx context.Context, id uuid.UUID) error {
	q := `DELETE FROM flights WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repository.FlightRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repository.FlightRepo.Delete: %w", ErrRecordNotFound)
	}

	return nil
}

func (r *pgFlightRepo) AssignGroup(ctx context.Context, flightIDs []uuid.UUID, groupID uuid.UUID) (int, error) {
	q := `
		UPDATE flights
		SET group_id = @group_id, updated_at = now()
		WHERE id = ANY(@flight_ids)`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"group_id": groupID, "flight_ids": flightIDs})
	if err != nil {
		return 0, fmt.Errorf("repository.FlightRepo.AssignGroup: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

func (r *pgFlightRepo) UnassignGroup(ctx context.Context, flightIDs []uuid.UUID, groupID uuid.UUID) (int, error) {
	q := `
		UPDATE flights
		SET group_id = NULL, updated_at = now()
		WHERE id = ANY(@flight_ids) AND group_id = @group_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"group_id": groupID, "flight_ids": flightIDs})
	if err != nil {
		return 0, fmt.Errorf("repository.FlightRepo.UnassignGroup: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

func (r *pgFlightRepo) ExistsByMessageID(ctx context.Context, messageID string) (bool, error) {
	q := `SELECT EXISTS (SELECT 1 FROM flights WHERE email_message_id = @email_message_id)`

	var exists bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email_message_id": messageID}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repository.FlightRepo.ExistsByMessageID: %w", err)
	}

	return exists, nil
}

// Stats aggregates in the database rather than loading every row; the
// service layer derives the human-readable duration fields from the
// minute total.
func (r *pgFlightRepo) Stats(ctx context.Context) (dto.FlightStats, error) {
	var stats dto.FlightStats

	q := `SELECT count(*), COALESCE(sum(duration_minutes), 0) FROM flights`
	if err := r.db.QueryRow(ctx, q).Scan(&stats.TotalFlights, &stats.TotalDurationMinutes); err != nil {
		return dto.FlightStats{}, fmt.Errorf("repository.FlightRepo.Stats: totals: %w", err)
	}

	q = `
		SELECT COALESCE(array_agg(DISTINCT airline_name ORDER BY airline_name), '{}')
		FROM flights
		WHERE airline_name <> ''`
	if err := r.db.QueryRow(ctx, q).Scan(&stats.UniqueAirlines); err != nil {
		return dto.FlightStats{}, fmt.Errorf("repository.FlightRepo.Stats: airlines: %w", err)
	}

	q = `
		SELECT COALESCE(array_agg(DISTINCT airport ORDER BY airport), '{}')
		FROM (
			SELECT departure_airport AS airport FROM flights
			UNION
			SELECT arrival_airport FROM flights
		) airports
		WHERE airport <> ''`
	if err := r.db.QueryRow(ctx, q).Scan(&stats.UniqueAirports); err != nil {
		return dto.FlightStats{}, fmt.Errorf("repository.FlightRepo.Stats: airports: %w", err)
	}

	stats.UniqueAirportsCount = len(stats.UniqueAirports)

	return stats, nil
}

func (r *pgFlightRepo) queryFlights(ctx context.Context, op, q string, args pgx.NamedArgs) ([]dto.Flight, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repository.FlightRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var flights []dto.Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.FlightRepo.%s: scan: %w", op, err)
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.FlightRepo.%s: rows: %w", op, err)
	}

	return flights, nil
}

func flightArgs(flight dto.Flight) pgx.NamedArgs {
	return pgx.NamedArgs{
		"group_id":          flight.GroupID, // nil becomes NULL
		"airline_name":      flight.AirlineName,
		"airline_code":      flight.AirlineCode,
		"flight_number":     flight.FlightNumber,
		"booking_reference": flight.BookingReference,
		"departure_airport": flight.DepartureAirport,
		"departure_city":    flight.DepartureCity,
		"departure_time":    flight.DepartureTime,
		"arrival_airport":   flight.ArrivalAirport,
		"arrival_city":      flight.ArrivalCity,
		"arrival_time":      flight.ArrivalTime,
		"passenger_name":    flight.PassengerName,
		"seat":              flight.Seat,
		"cabin_class":       flight.CabinClass,
		"status":            flight.Status,
		"duration_minutes":  flight.DurationMinutes,
		"email_account_id":  flight.EmailAccountID,
		"email_subject":     flight.EmailSubject,
		"email_message_id":  flight.EmailMessageID,
		"is_manually_added": flight.ManuallyAdded,
		"notes":             flight.Notes,
	}
}

// scanFlight maps a single database row into a dto.Flight, handling the
// UUID and nullable foreign key conversions.
func scanFlight(s scanner) (dto.Flight, error) {
	var (
		f         dto.Flight
		id        pgtype.UUID
		groupID   pgtype.UUID
		accountID pgtype.UUID
	)

	err := s.Scan(&id, &groupID, &f.AirlineName, &f.AirlineCode, &f.FlightNumber, &f.BookingReference,
		&f.DepartureAirport, &f.DepartureCity, &f.DepartureTime, &f.ArrivalAirport, &f.ArrivalCity, &f.ArrivalTime,
		&f.PassengerName, &f.Seat, &f.CabinClass, &f.Status, &f.DurationMinutes,
		&accountID, &f.EmailSubject, &f.EmailMessageID, &f.ManuallyAdded, &f.Notes, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dto.Flight{}, ErrRecordNotFound
		}
		return dto.Flight{}, err
	}

	f.ID = uuid.UUID(id.Bytes)
	if groupID.Valid {
		gid := uuid.UUID(groupID.Bytes)
		f.GroupID = &gid
	}
	if accountID.Valid {
		aid := uuid.UUID(accountID.Bytes)
		f.EmailAccountID = &aid
	}

	return f, nil
}
