package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"advisory/internal/domain/account"
)

// AccountStoreForReset defines the store interface needed by password reset.
type AccountStoreForReset interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

const resetTokenTTL = time.Hour

// RequestPasswordResetInput carries input for requesting a reset link.
type RequestPasswordResetInput struct {
	Email string
}

// RequestPasswordResetDeps holds dependencies for RequestPasswordReset.
type RequestPasswordResetDeps struct {
	AccountStore AccountStoreForReset
	Notify       NotifyDeps
	JWTSecret    []byte
	BaseURL      string
	Now          func() time.Time
}

// ExecuteRequestPasswordReset issues a signed, short-lived reset token and
// emails the reset link. An unknown email returns success without sending,
// so the endpoint never confirms whether an address is registered.
// PRE: Email is non-empty
// POST: A reset email is sent for registered addresses
func ExecuteRequestPasswordReset(ctx context.Context, input RequestPasswordResetInput, deps RequestPasswordResetDeps) error {
	acct, err := deps.AccountStore.GetByEmail(ctx, input.Email)
	if err != nil {
		slog.Info("auth_event", "event", "reset_requested_unknown", "email", input.Email)
		return nil
	}

	now := deps.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   acct.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(resetTokenTTL)),
	})
	signed, err := token.SignedString(deps.JWTSecret)
	if err != nil {
		return fmt.Errorf("sign reset token: %w", err)
	}

	link := deps.BaseURL + "/reset-password?token=" + signed
	body := fmt.Sprintf(
		`<p>Solicitaste restablecer tu contraseña.</p>
<p><a href="%s">Restablecer contraseña</a></p>
<p>El enlace expira en una hora. Si no fuiste tú, ignora este correo.</p>`,
		link,
	)
	sendOrQueue(ctx, deps.Notify, []string{acct.Email}, "Restablecer contraseña", body)

	slog.Info("auth_event", "event", "reset_requested", "account_id", acct.ID)
	return nil
}

// ConfirmPasswordResetInput carries input for completing a reset.
type ConfirmPasswordResetInput struct {
	Token       string
	NewPassword string
}

// ConfirmPasswordResetDeps holds dependencies for ConfirmPasswordReset.
type ConfirmPasswordResetDeps struct {
	AccountStore AccountStoreForReset
	JWTSecret    []byte
}

// ErrInvalidResetToken is returned for expired, malformed or forged tokens.
var ErrInvalidResetToken = errors.New("reset link is invalid or has expired")

// ExecuteConfirmPasswordReset verifies the reset token and sets the new
// password. A successful reset also clears any lockout.
// PRE: Token was issued by ExecuteRequestPasswordReset within the last hour
// POST: Password updated and lockout cleared, or error with no change
func ExecuteConfirmPasswordReset(ctx context.Context, input ConfirmPasswordResetInput, deps ConfirmPasswordResetDeps) error {
	parsed, err := jwt.ParseWithClaims(input.Token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return deps.JWTSecret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidResetToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return ErrInvalidResetToken
	}

	acct, err := deps.AccountStore.GetByID(ctx, claims.Subject)
	if err != nil {
		return ErrInvalidResetToken
	}

	if err := acct.SetPassword(input.NewPassword); err != nil {
		return err
	}
	acct.ResetFailedLogins()

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "reset_completed", "account_id", acct.ID)
	return nil
}
