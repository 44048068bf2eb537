// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"vikrithi/config"
	deliverycontext "vikrithi/internal/delivery/context"
	"vikrithi/internal/domain/entity"
	domainerrors "vikrithi/internal/domain/errors"
	"vikrithi/internal/domain/repository"
	"vikrithi/internal/domain/service"
	"vikrithi/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	accounts repository.AccountRepository
	hasher   service.PasswordHasher
	cfg      *config.Config
	logger   *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(
	accounts repository.AccountRepository,
	hasher service.PasswordHasher,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		accounts: accounts,
		hasher:   hasher,
		cfg:      cfg,
		logger:   logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup registers a new donor or recycler account. The plaintext credential
// is staged on the entity; the store's write interceptor hashes it before the
// document is persisted.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	if isBlank(input.Username) || isBlank(input.PhoneNumber) || isBlank(input.Password) || isBlank(input.UserType) {
		return nil, domainerrors.ErrMissingFields.WrapMessage("signup rejected")
	}

	kind, err := entity.ParseKind(input.UserType)
	if err != nil {
		return nil, domainerrors.ErrUnknownUserType.WrapMessage("signup rejected")
	}

	if kind == entity.KindRecycler && isBlank(input.CompanyName) {
		return nil, domainerrors.ErrCompanyNameRequired.WrapMessage("signup rejected")
	}

	// The store enforces no uniqueness constraint on usernames. This
	// pre-check makes the gap opt-in explicit; it is racy by nature and
	// not a guarantee.
	if srv.cfg.Auth != nil && srv.cfg.Auth.EnforceUniqueUsernames {
		_, err := srv.accounts.FindByUsername(ctx, kind, input.Username)
		if err == nil {
			return nil, domainerrors.ErrUsernameTaken.WrapMessage("signup rejected")
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(err, "failed to check username availability")
		}
	}

	account := &entity.Account{
		Kind:        kind,
		Username:    input.Username,
		PhoneNumber: input.PhoneNumber,
	}
	if kind == entity.KindRecycler {
		account.CompanyName = input.CompanyName
	}
	account.SetPassword(input.Password)

	if err := srv.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Account created",
		slog.String("kind", string(account.Kind)),
		slog.String("username", account.Username),
	)

	return &usecase.SignupOutput{Account: account}, nil
}

// Login verifies the submitted credential against the stored hash.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if isBlank(input.Name) || isBlank(input.Password) || isBlank(input.UserType) {
		return nil, domainerrors.ErrMissingFields.WrapMessage("login rejected")
	}

	account, err := srv.resolveAccount(ctx, input.UserType, input.Name)
	if err != nil {
		return nil, err
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		return nil, domainerrors.ErrIncorrectPassword.WrapMessage("login rejected")
	}

	return &usecase.LoginOutput{Account: account}, nil
}

// ForgotPassword confirms the account exists and signals "proceed to reset".
// No possession proof is required beyond knowing the username; nothing is
// mutated here.
func (srv *authService) ForgotPassword(ctx context.Context, input *usecase.ForgotPasswordInput) (*usecase.ForgotPasswordOutput, error) {
	if isBlank(input.Name) || isBlank(input.UserType) {
		return nil, domainerrors.ErrMissingFields.WrapMessage("forgot-password rejected")
	}

	account, err := srv.resolveAccount(ctx, input.UserType, input.Name)
	if err != nil {
		return nil, err
	}

	return &usecase.ForgotPasswordOutput{Name: account.Username, Kind: account.Kind}, nil
}

// ResetPassword replaces the account's credential. The resolve-hash-save
// sequence runs without isolation; concurrent resets for the same username
// race and the last write wins.
func (srv *authService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	if isBlank(input.Name) || isBlank(input.NewPassword) || isBlank(input.UserType) {
		return domainerrors.ErrMissingFields.WrapMessage("password reset rejected")
	}

	account, err := srv.resolveAccount(ctx, input.UserType, input.Name)
	if err != nil {
		return err
	}

	account.SetPassword(input.NewPassword)

	if err := srv.accounts.Save(ctx, account); err != nil {
		// The account can disappear between resolve and save.
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound.WrapMessage("password reset failed")
		}

		return err
	}

	srv.log(ctx).Info("Password updated",
		slog.String("kind", string(account.Kind)),
		slog.String("username", account.Username),
	)

	return nil
}

// resolveAccount dispatches a lookup by kind tag, mapping the parse failure
// and the repository's not-found sentinel to their caller-facing errors.
func (srv *authService) resolveAccount(ctx context.Context, userType, username string) (*entity.Account, error) {
	kind, err := entity.ParseKind(userType)
	if err != nil {
		return nil, domainerrors.ErrUnknownUserType.WrapMessage("account lookup rejected")
	}

	account, err := srv.accounts.FindByUsername(ctx, kind, username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("account lookup failed")
		}

		return nil, errors.Wrap(err, "failed to resolve account")
	}

	return account, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
