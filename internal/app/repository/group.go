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

const groupColumns = `id, name, description, is_auto_generated, created_at, updated_at`

// GroupRepo defines the persistence operations for flight groups. Only
// the stored columns live here; the derived route and date fields are
// computed by the service from the member flights.
type GroupRepo interface {
	// Create inserts a new group and returns the persisted record.
	Create(ctx context.Context, group dto.FlightGroup) (dto.FlightGroup, error)

	// GetByID retrieves a single group by its UUID primary key.
	// Returns ErrRecordNotFound if no group with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (dto.FlightGroup, error)

	// List returns all groups, newest first.
	List(ctx context.Context) ([]dto.FlightGroup, error)

	// ListAutoGenerated returns the groups created by auto-grouping.
	ListAutoGenerated(ctx context.Context) ([]dto.FlightGroup, error)

	// Update overwrites the name and description of an existing group.
	// Returns ErrRecordNotFound if it does not exist.
	Update(ctx context.Context, group dto.FlightGroup) (dto.FlightGroup, error)

	// Delete removes a group by ID. Member flights are detached, not
	// deleted, via the ON DELETE SET NULL foreign key.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgGroupRepo struct {
	db db
}

// NewGroupRepo constructs a GroupRepo backed by the provided db connection.
func NewGroupRepo(db db) GroupRepo {
	return &pgGroupRepo{db: db}
}

func (r *pgGroupRepo) Create(ctx context.Context, group dto.FlightGroup) (dto.FlightGroup, error) {
	q := `
		INSERT INTO flight_groups (name, description, is_auto_generated)
		VALUES (@name, @description, @is_auto_generated)
		RETURNING ` + groupColumns

	args := pgx.NamedArgs{
		"name":              group.Name,
		"description":       group.Description,
		"is_auto_generated": group.AutoGenerated,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanGroup(row)
	if err != nil {
		return dto.FlightGroup{}, fmt.Errorf("repository.GroupRepo.Create: %w", err)
	}

	return result, nil
}

func (r *pgGroupRepo) GetByID(ctx context.Context, id uuid.UUID) (dto.FlightGroup, error) {
	q := `SELECT ` + groupColumns + ` FROM flight_groups WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanGroup(row)
	if err != nil {
		return dto.FlightGroup{}, fmt.Errorf("repository.GroupRepo.GetByID: %w", err)
	}

	return result, nil
}

func (r *pgGroupRepo) List(ctx context.Context) ([]dto.FlightGroup, error) {
	q := `SELECT ` + groupColumns + ` FROM flight_groups ORDER BY created_at DESC`

	return r.queryGroups(ctx, "List", q, pgx.NamedArgs{})
}

func (r *pgGroupRepo) ListAutoGenerated(ctx context.Context) ([]dto.FlightGroup, error) {
	q := `SELECT ` + groupColumns + ` FROM flight_groups WHERE is_auto_generated ORDER BY created_at ASC`

	return r.queryGroups(ctx, "ListAutoGenerated", q, pgx.NamedArgs{})
}

func (r *pgGroupRepo) Update(ctx context.Context, group dto.FlightGroup) (dto.FlightGroup, error) {
	q := `
		UPDATE flight_groups
		SET name        = @name,
		    description = @description,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + groupColumns

	args := pgx.NamedArgs{
		"id":          group.ID,
		"name":        group.Name,
		"description": group.Description,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanGroup(row)
	if err != nil {
		return dto.FlightGroup{}, fmt.Errorf("repository.GroupRepo.Update: %w", err)
	}

	return result, nil
}

func (r *pgGroupRepo) Delete(ctx context.Context, id uuid.UUID) error {
	q := `DELETE FROM flight_groups WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repository.GroupRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repository.GroupRepo.Delete: %w", ErrRecordNotFound)
	}

	return nil
}

func (r *pgGroupRepo) queryGroups(ctx context.Context, op, q string, args pgx.NamedArgs) ([]dto.FlightGroup, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repository.GroupRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var groups []dto.FlightGroup
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.GroupRepo.%s: scan: %w", op, err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.GroupRepo.%s: rows: %w", op, err)
	}

	return groups, nil
}

func scanGroup(s scanner) (dto.FlightGroup, error) {
	var (
		g  dto.FlightGroup
		id pgtype.UUID
	)

	err := s.Scan(&id, &g.Name, &g.Description, &g.AutoGenerated, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dto.FlightGroup{}, ErrRecordNotFound
		}
		return dto.FlightGroup{}, err
	}

	g.ID = uuid.UUID(id.Bytes)

	return g, nil
}
