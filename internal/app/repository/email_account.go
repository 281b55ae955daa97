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

// emailAccountColumns deliberately leaves out imap_password: the secret
// is written on create/update and never read back out of this package.
const emailAccountColumns = `id, name, email_address, provider, imap_host, imap_port, imap_username,
		use_ssl, is_active, last_synced_at,
		(SELECT count(*) FROM flights f WHERE f.email_account_id = email_accounts.id) AS flight_count,
		created_at, updated_at`

// EmailAccountRepo defines the persistence operations for connected
// email accounts.
type EmailAccountRepo interface {
	// Create inserts a new account and returns the persisted record.
	Create(ctx context.Context, account dto.EmailAccount, password string) (dto.EmailAccount, error)

	// GetByID retrieves a single account by its UUID primary key.
	// Returns ErrRecordNotFound if no account with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (dto.EmailAccount, error)

	// List returns all accounts with their imported flight counts.
	List(ctx context.Context) ([]dto.EmailAccount, error)

	// Update overwrites the mutable fields of an account. An empty
	// password keeps the stored one.
	Update(ctx context.Context, account dto.EmailAccount, password string) (dto.EmailAccount, error)

	// Delete removes an account by ID. Imported flights keep their rows
	// with the account reference cleared.
	Delete(ctx context.Context, id uuid.UUID) error

	// TouchLastSynced records a successful import for the account.
	TouchLastSynced(ctx context.Context, id uuid.UUID, at time.Time) error
}

type pgEmailAccountRepo struct {
	db db
}

// NewEmailAccountRepo constructs an EmailAccountRepo backed by the
// provided db connection.
func NewEmailAccountRepo(db db) EmailAccountRepo {
	return &pgEmailAccountRepo{db: db}
}

func (r *pgEmailAccountRepo) Create(ctx context.Context, account dto.EmailAccount, password string) (dto.EmailAccount, error) {
	q := `
		INSERT INTO email_accounts (name, email_address, provider, imap_host, imap_port, imap_username,
			imap_password, use_ssl, is_active)
		VALUES (@name, @email_address, @provider, @imap_host, @imap_port, @imap_username,
			@imap_password, @use_ssl, @is_active)
		RETURNING ` + emailAccountColumns

	args := emailAccountArgs(account)
	args["imap_password"] = password

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanEmailAccount(row)
	if err != nil {
		return dto.EmailAccount{}, fmt.Errorf("repository.EmailAccountRepo.Create: %w", err)
	}

	return result, nil
}

func (r *pgEmailAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (dto.EmailAccount, error) {
	q := `SELECT ` + emailAccountColumns + ` FROM email_accounts WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanEmailAccount(row)
	if err != nil {
		return dto.EmailAccount{}, fmt.Errorf("repository.EmailAccountRepo.GetByID: %w", err)
	}

	return result, nil
}

func (r *pgEmailAccountRepo) List(ctx context.Context) ([]dto.EmailAccount, error) {
	q := `SELECT ` + emailAccountColumns + ` FROM email_accounts ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repository.EmailAccountRepo.List: %w", err)
	}
	defer rows.Close()

	var accounts []dto.EmailAccount
	for rows.Next() {
		a, err := scanEmailAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.EmailAccountRepo.List: scan: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.EmailAccountRepo.List: rows: %w", err)
	}

	return accounts, nil
}

func (r *pgEmailAccountRepo) Update(ctx context.Context, account dto.EmailAccount, password string) (dto.EmailAccount, error) {
	q := `
		UPDATE email_accounts
		SET name          = @name,
		    email_address = @email_address,
		    provider      = @provider,
		    imap_host     = @imap_host,
		    imap_port     = @imap_port,
		    imap_username = @imap_username,
		    imap_password = CASE WHEN @imap_password = '' THEN imap_password ELSE @imap_password END,
		    use_ssl       = @use_ssl,
		    is_active     = @is_active,
		    updated_at    = now()
		WHERE id = @id
		RETURNING ` + emailAccountColumns

	args := emailAccountArgs(account)
	args["id"] = account.ID
	args["imap_password"] = password

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanEmailAccount(row)
	if err != nil {
		return dto.EmailAccount{}, fmt.Errorf("repository.EmailAccountRepo.Update: %w", err)
	}

	return result, nil
}

func (r *pgEmailAccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	q := `DELETE FROM email_accounts WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repository.EmailAccountRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repository.EmailAccountRepo.Delete: %w", ErrRecordNotFound)
	}

	return nil
}

func (r *pgEmailAccountRepo) TouchLastSynced(ctx context.Context, id uuid.UUID, at time.Time) error {
	q := `UPDATE email_accounts SET last_synced_at = @at, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "at": at})
	if err != nil {
		return fmt.Errorf("repository.EmailAccountRepo.TouchLastSynced: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repository.EmailAccountRepo.TouchLastSynced: %w", ErrRecordNotFound)
	}

	return nil
}

func emailAccountArgs(account dto.EmailAccount) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":          account.Name,
		"email_address": account.EmailAddress,
		"provider":      account.Provider,
		"imap_host":     account.IMAPHost,
		"imap_port":     account.IMAPPort,
		"imap_username": account.IMAPUsername,
		"use_ssl":       account.UseSSL,
		"is_active":     account.Active,
	}
}

func scanEmailAccount(s scanner) (dto.EmailAccount, error) {
	var (
		a          dto.EmailAccount
		id         pgtype.UUID
		lastSynced pgtype.Timestamptz
	)

	err := s.Scan(&id, &a.Name, &a.EmailAddress, &a.Provider, &a.IMAPHost, &a.IMAPPort, &a.IMAPUsername,
		&a.UseSSL, &a.Active, &lastSynced, &a.FlightCount, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dto.EmailAccount{}, ErrRecordNotFound
		}
		return dto.EmailAccount{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	if lastSynced.Valid {
		t := lastSynced.Time
		a.LastSyncedAt = &t
	}

	return a, nil
}
