package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mraditya/flight-journal-service/internal/app/dto"
)

const airlineRuleColumns = `id, airline_name, airline_code, sender_pattern, subject_pattern, body_pattern,
		date_layout, time_layout, is_active, priority, created_at, updated_at`

// AirlineRuleRepo defines the persistence operations for custom airline
// parsing rules. Builtin rules ship in code and never touch this table.
type AirlineRuleRepo interface {
	// Create inserts a new rule and returns the persisted record.
	Create(ctx context.Context, rule dto.AirlineRule) (dto.AirlineRule, error)

	// GetByID retrieves a single rule by its UUID primary key.
	// Returns ErrRecordNotFound if no rule with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (dto.AirlineRule, error)

	// List returns all stored rules ordered by priority descending.
	List(ctx context.Context) ([]dto.AirlineRule, error)

	// Update overwrites the mutable fields of an existing rule.
	// Returns ErrRecordNotFound if it does not exist.
	Update(ctx context.Context, rule dto.AirlineRule) (dto.AirlineRule, error)

	// Delete removes a rule by ID. Returns ErrRecordNotFound if it does
	// not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgAirlineRuleRepo struct {
	db db
}

// NewAirlineRuleRepo constructs an AirlineRuleRepo backed by the
// provided db connection.
func NewAirlineRuleRepo(db db) AirlineRuleRepo {
	return &pgAirlineRuleRepo{db: db}
}

func (r *pgAirlineRuleRepo) Create(ctx context.Context, rule dto.AirlineRule) (dto.AirlineRule, error) {
	q := `
		INSERT INTO airline_rules (airline_name, airline_code, sender_pattern, subject_pattern, body_pattern,
			date_layout, time_layout, is_active, priority)
		VALUES (@airline_name, @airline_code, @sender_pattern, @subject_pattern, @body_pattern,
			@date_layout, @time_layout, @is_active, @priority)
		RETURNING ` + airlineRuleColumns

	row := r.db.QueryRow(ctx, q, airlineRuleArgs(rule))
	result, err := scanAirlineRule(row)
	if err != nil {
		return dto.AirlineRule{}, fmt.Errorf("repository.AirlineRuleRepo.Create: %w", err)
	}

	return result, nil
}

func (r *pgAirlineRuleRepo) GetByID(ctx context.Context, id uuid.UUID) (dto.AirlineRule, error) {
	q := `SELECT ` + airlineRuleColumns + ` FROM airline_rules WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanAirlineRule(row)
	if err != nil {
		return dto.AirlineRule{}, fmt.Errorf("repository.AirlineRuleRepo.GetByID: %w", err)
	}

	return result, nil
}

func (r *pgAirlineRuleRepo) List(ctx context.Context) ([]dto.AirlineRule, error) {
	q := `SELECT ` + airlineRuleColumns + ` FROM airline_rules ORDER BY priority DESC, airline_name ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repository.AirlineRuleRepo.List: %w", err)
	}
	defer rows.Close()

	var rules []dto.AirlineRule
	for rows.Next() {
		rule, err := scanAirlineRule(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.AirlineRuleRepo.List: scan: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.AirlineRuleRepo.List: rows: %w", err)
	}

	return rules, nil
}

func (r *pgAirlineRuleRepo) Update(ctx context.Context, rule dto.AirlineRule) (dto.AirlineRule, error) {
	q := `
		UPDATE airline_rules
		SET airline_name    = @airline_name,
		    airline_code    = @airline_code,
		    sender_pattern  = @sender_pattern,
		    subject_pattern = @subject_pattern,
		    body_pattern    = @body_pattern,
		    date_layout     = @date_layout,
		    time_layout     = @time_layout,
		    is_active       = @is_active,
		    priority        = @priority,
		    updated_at      = now()
		WHERE id = @id
		RETURNING ` + airlineRuleColumns

	args := airlineRuleArgs(rule)
	args["id"] = rule.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanAirlineRule(row)
	if err != nil {
		return dto.AirlineRule{}, fmt.Errorf("repository.AirlineRuleRepo.Update: %w", err)
	}

	return result, nil
}

func (r *pgAirlineRuleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	q := `DELETE FROM airline_rules WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repository.AirlineRuleRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repository.AirlineRuleRepo.Delete: %w", ErrRecordNotFound)
	}

	return nil
}

func airlineRuleArgs(rule dto.AirlineRule) pgx.NamedArgs {
	return pgx.NamedArgs{
		"airline_name":    rule.AirlineName,
		"airline_code":    rule.AirlineCode,
		"sender_pattern":  rule.SenderPattern,
		"subject_pattern": rule.SubjectPattern,
		"body_pattern":    rule.BodyPattern,
		"date_layout":     rule.DateLayout,
		"time_layout":     rule.TimeLayout,
		"is_active":       rule.Active,
		"priority":        rule.Priority,
	}
}

func scanAirlineRule(s scanner) (dto.AirlineRule, error) {
	var (
		rule dto.AirlineRule
		id   pgtype.UUID
	)

	err := s.Scan(&id, &rule.AirlineName, &rule.AirlineCode, &rule.SenderPattern, &rule.SubjectPattern,
		&rule.BodyPattern, &rule.DateLayout, &rule.TimeLayout, &rule.Active, &rule.Priority,
		&rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dto.AirlineRule{}, ErrRecordNotFound
		}
		return dto.AirlineRule{}, err
	}

	rule.ID = uuid.UUID(id.Bytes)

	return rule, nil
}
