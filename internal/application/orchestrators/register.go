package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"advisory/internal/domain/account"
)

// AccountStoreForRegister defines the store interface needed by Register.
type AccountStoreForRegister interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// RegisterInput carries input for the register orchestrator.
type RegisterInput struct {
	Email    string
	Password string
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	AccountStore AccountStoreForRegister
	GenerateID   func() string
	Now          func() time.Time
}

// ErrEmailTaken is returned when an account already exists for the email.
var ErrEmailTaken = errors.New("an account with this email already exists")

// ExecuteRegister creates a student account. Programmer and admin access is
// not self-service: it is granted by the roster and the configured admin
// email at login time, so every registration stores the student role.
// PRE: Email and password provided
// POST: Account persisted with hashed password, or error
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) (account.Account, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if _, err := deps.AccountStore.GetByEmail(ctx, email); err == nil {
		return account.Account{}, ErrEmailTaken
	}

	acct := account.Account{
		ID:        deps.GenerateID(),
		Email:     email,
		Role:      account.RoleStudent,
		CreatedAt: deps.Now(),
	}
	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return account.Account{}, err
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, err
	}

	slog.Info("auth_event", "event", "account_registered", "email", email)
	return acct, nil
}
