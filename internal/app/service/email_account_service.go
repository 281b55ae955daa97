package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mraditya/flight-journal-service/internal/app/dto"
	"github.com/mraditya/flight-journal-service/internal/app/repository"
)

const (
	defaultIMAPPort     = 993
	uniqueViolationCode = "23505"
	gmailIMAPHost       = "imap.gmail.com"
	outlookIMAPHost     = "outlook.office365.com"
	providerGmail       = "gmail"
	providerOutlook     = "outlook"
)

type EmailAccountService struct {
	Accounts repository.EmailAccountRepo
}

func NewEmailAccountService(accounts repository.EmailAccountRepo) *EmailAccountService {
	return &EmailAccountService{
		Accounts: accounts,
	}
}

// CreateAccount godoc
// @Summary      Connect an email account
// @Tags         Email Accounts
// @Param        request  body      dto.EmailAccountRequest  true  "Account"
// @Success      201      {object}  dto.EmailAccount
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /api/v1/email-accounts [post]
func (s *EmailAccountService) CreateAccount(ctx context.Context, req dto.EmailAccountRequest) (dto.EmailAccount, error) {
	account := accountFromRequest(req)

	created, err := s.Accounts.Create(ctx, account, req.IMAPPassword)
	if err != nil {
		if isUniqueViolation(err) {
			return dto.EmailAccount{}, ErrEmailAddressTaken
		}

		return dto.EmailAccount{}, fmt.Errorf("failed to create email account: %w", err)
	}

	return created, nil
}

// GetAccount godoc
// @Summary      Get an email account
// @Tags         Email Accounts
// @Param        id  path      string  true  "Account ID"
// @Success      200  {object}  dto.EmailAccount
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/email-accounts/{id} [get]
func (s *EmailAccountService) GetAccount(ctx context.Context, id uuid.UUID) (dto.EmailAccount, error) {
	account, err := s.Accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return dto.EmailAccount{}, ErrEmailAccountNotFound
		}

		return dto.EmailAccount{}, fmt.Errorf("failed to get email account: %w", err)
	}

	return account, nil
}

// ListAccounts godoc
// @Summary      List email accounts
// @Tags         Email Accounts
// @Success      200  {object}  dto.EmailAccountListResponse
// @Router       /api/v1/email-accounts [get]
func (s *EmailAccountService) ListAccounts(ctx context.Context) (dto.EmailAccountListResponse, error) {
	accounts, err := s.Accounts.List(ctx)
	if err != nil {
		return dto.EmailAccountListResponse{}, fmt.Errorf("failed to list email accounts: %w", err)
	}

	if accounts == nil {
		accounts = []dto.EmailAccount{}
	}

	return dto.EmailAccountListResponse{
		Accounts: accounts,
		Total:    len(accounts),
	}, nil
}

// UpdateAccount godoc
// @Summary      Update an email account
// @Tags         Email Accounts
// @Param        id       path      string                   true  "Account ID"
// @Param        request  body      dto.EmailAccountRequest  true  "Account"
// @Success      200      {object}  dto.EmailAccount
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/v1/email-accounts/{id} [put]
func (s *EmailAccountService) UpdateAccount(ctx context.Context, id uuid.UUID, req dto.EmailAccountRequest) (dto.EmailAccount, error) {
	account := accountFromRequest(req)
	account.ID = id

	// An empty password in the request keeps the stored one.
	updated, err := s.Accounts.Update(ctx, account, req.IMAPPassword)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return dto.EmailAccount{}, ErrEmailAccountNotFound
		}
		if isUniqueViolation(err) {
			return dto.EmailAccount{}, ErrEmailAddressTaken
		}

		return dto.EmailAccount{}, fmt.Errorf("failed to update email account: %w", err)
	}

	return updated, nil
}

// DeleteAccount godoc
// @Summary      Disconnect an email account
// @Tags         Email Accounts
// @Param        id  path  string  true  "Account ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/email-accounts/{id} [delete]
func (s *EmailAccountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	// Imported flights keep their rows; only the account reference is
	// cleared by the foreign key.
	if err := s.Accounts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return ErrEmailAccountNotFound
		}

		return fmt.Errorf("failed to delete email account: %w", err)
	}

	return nil
}

// accountFromRequest maps the request to an account, filling the IMAP
// connection defaults for the known providers.
func accountFromRequest(req dto.EmailAccountRequest) dto.EmailAccount {
	account := dto.EmailAccount{
		Name:         req.Name,
		EmailAddress: req.EmailAddress,
		Provider:     req.Provider,
		IMAPHost:     req.IMAPHost,
		IMAPPort:     req.IMAPPort,
		IMAPUsername: req.IMAPUsername,
		UseSSL:       true,
		Active:       true,
	}

	switch req.Provider {
	case providerGmail:
		account.IMAPHost = gmailIMAPHost
	case providerOutlook:
		account.IMAPHost = outlookIMAPHost
	}

	if account.IMAPPort == 0 {
		account.IMAPPort = defaultIMAPPort
	}
	if account.IMAPUsername == "" {
		account.IMAPUsername = req.EmailAddress
	}
	if req.UseSSL != nil {
		account.UseSSL = *req.UseSSL
	}
	if req.Active != nil {
		account.Active = *req.Active
	}

	return account
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
