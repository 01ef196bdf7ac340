package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"advisory/internal/adapters/http/middleware"
	"advisory/internal/application/orchestrators"
	"advisory/internal/domain/account"
	"advisory/internal/domain/audit"
)

// handleLogin handles POST /api/login.
// PRE: Body carries Email and Password
// POST: Session cookie set; returns the effective role and landing route
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		Email    string `json:"Email"`
		Password string `json:"Password"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	}, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
		Resolver:     roleResolver(),
	})
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, orchestrators.ErrAccountLocked) {
			status = http.StatusForbidden
		}
		if errors.Is(err, orchestrators.ErrRoleUnavailable) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, err.Error(), status)
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	recordAudit(r.Context(), audit.NewEvent(result.Email, string(result.Role), audit.CategorySecurity, audit.ActionLogin).
		WithResource("account", result.AccountID))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"Role":    string(result.Role),
		"Landing": result.Landing,
	})
}

// handleLogout handles POST /api/logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		recordAudit(r.Context(), audit.NewEvent(sess.Email, string(sess.Role), audit.CategorySecurity, audit.ActionLogout).
			WithResource("account", sess.AccountID))
	}
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleRegister handles POST /api/register. Every self-service registration
// creates a student account; programmer and admin access comes from role
// resolution at login.
func handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		Email    string `json:"Email"`
		Password string `json:"Password"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	acct, err := orchestrators.ExecuteRegister(r.Context(), orchestrators.RegisterInput{
		Email:    input.Email,
		Password: input.Password,
	}, orchestrators.RegisterDeps{
		AccountStore: stores.AccountStore,
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, orchestrators.ErrEmailTaken) {
			status = http.StatusConflict
		}
		if errors.Is(err, account.ErrPasswordTooShort) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}

	recordAudit(r.Context(), audit.NewEvent(acct.Email, string(acct.Role), audit.CategoryAccount, audit.ActionCreate).
		WithResource("account", acct.ID))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"ID": acct.ID, "Email": acct.Email})
}

// handlePasswordResetRequest handles POST /api/password-reset/request.
// Always answers 204: the response never reveals whether an email is
// registered.
func handlePasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		Email string `json:"Email"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteRequestPasswordReset(r.Context(), orchestrators.RequestPasswordResetInput{
		Email: input.Email,
	}, orchestrators.RequestPasswordResetDeps{
		AccountStore: stores.AccountStore,
		Notify:       notifyDeps(),
		JWTSecret:    jwtSecret,
		BaseURL:      baseURL,
		Now:          timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePasswordResetConfirm handles POST /api/password-reset/confirm.
func handlePasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		Token       string `json:"Token"`
		NewPassword string `json:"NewPassword"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteConfirmPasswordReset(r.Context(), orchestrators.ConfirmPasswordResetInput{
		Token:       input.Token,
		NewPassword: input.NewPassword,
	}, orchestrators.ConfirmPasswordResetDeps{
		AccountStore: stores.AccountStore,
		JWTSecret:    jwtSecret,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrInvalidResetToken) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
