package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"advisory/internal/adapters/http/middleware"
	"advisory/internal/application/orchestrators"
	"advisory/internal/domain/audit"
	"advisory/internal/domain/authz"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// requireSession checks for an authenticated session.
// Returns false if the request should not proceed.
func requireSession(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return middleware.Session{}, false
	}
	return sess, true
}

// requireAdmin checks the session for the admin role and returns the session.
// Returns false if the request should not proceed.
func requireAdmin(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		slog.Warn("auth_denied", "path", r.URL.Path, "reason", "no session")
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return middleware.Session{}, false
	}
	if sess.Role != authz.RoleAdmin {
		slog.Warn("auth_denied", "path", r.URL.Path, "account_id", sess.AccountID, "role", string(sess.Role), "required", "admin")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return middleware.Session{}, false
	}
	return sess, true
}

// requireProgrammerOrAdmin checks the session for the programmer or admin role.
// Returns false if the request should not proceed.
func requireProgrammerOrAdmin(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return middleware.Session{}, false
	}
	if sess.Role != authz.RoleProgrammer && sess.Role != authz.RoleAdmin {
		slog.Warn("auth_denied", "path", r.URL.Path, "account_id", sess.AccountID, "role", string(sess.Role), "required", "programmer")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return middleware.Session{}, false
	}
	return sess, true
}

// actingProgrammerID resolves which profile a request operates on.
// Programmers always act on their own profile, resolved from the session
// email so the client can never act on someone else's panel. Admins name the
// profile with the programmer_id query parameter.
func actingProgrammerID(w http.ResponseWriter, r *http.Request, sess middleware.Session) (string, bool) {
	if sess.Role == authz.RoleAdmin {
		id := r.URL.Query().Get("programmer_id")
		if id == "" {
			http.Error(w, "programmer_id is required", http.StatusBadRequest)
			return "", false
		}
		return id, true
	}
	p, err := stores.ProgrammerStore.GetByEmail(r.Context(), sess.Email)
	if err != nil {
		http.Error(w, "no programmer profile for this account", http.StatusForbidden)
		return "", false
	}
	return p.ID, true
}

// recordAudit persists an audit event. Audit writes never fail the request.
func recordAudit(ctx context.Context, event audit.Event) {
	if err := stores.AuditStore.Save(ctx, event); err != nil {
		slog.Error("audit_save_failed", "category", string(event.Category), "action", string(event.Action), "error", err.Error())
	}
}

// notifyDeps builds the shared notification dependencies for orchestrators.
func notifyDeps() orchestrators.NotifyDeps {
	return orchestrators.NotifyDeps{
		EmailSender: emailSender,
		OutboxStore: stores.OutboxStore,
		FromAddress: emailFromAddress,
		ReplyTo:     emailReplyTo,
		GenerateID:  generateID,
		Now:         timeNow,
	}
}

// registerRoutes attaches all page and API handlers to the mux.
func registerRoutes(mux *http.ServeMux) {
	// Pages: static shells guarded by the authorization policy. The frontend
	// fetches its data from the /api endpoints below.
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.Join(staticDir, "assets")))))
	mux.HandleFunc("/", guardedPage("index.html"))
	mux.HandleFunc(authz.RouteLogin, guardedPage("login.html"))
	mux.HandleFunc(authz.RouteHome, guardedPage("home.html"))
	mux.HandleFunc(authz.RoutePortfolio+"/", guardedPage("portfolio.html"))
	mux.HandleFunc(authz.RouteAdmin, guardedPage("admin.html"))
	mux.HandleFunc(authz.RouteProgrammer, guardedPage("programmer.html"))
	mux.HandleFunc("/reset-password", publicPage("reset_password.html"))

	// Auth
	mux.HandleFunc("/api/login", handleLogin)
	mux.HandleFunc("/api/logout", handleLogout)
	mux.HandleFunc("/api/register", handleRegister)
	mux.HandleFunc("/api/password-reset/request", handlePasswordResetRequest)
	mux.HandleFunc("/api/password-reset/confirm", handlePasswordResetConfirm)

	// Browsing and portfolios
	mux.HandleFunc("/api/programmers", handleProgrammerList)
	mux.HandleFunc("/api/portfolio", handlePortfolio)

	// Appointments
	mux.HandleFunc("/api/appointments", handleAppointments)
	mux.HandleFunc("/api/appointments/respond", handleRespondAppointment)
	mux.HandleFunc("/api/programmer/appointments", handleProgrammerAppointments)

	// Programmer panel
	mux.HandleFunc("/api/programmer/windows", handleWindows)
	mux.HandleFunc("/api/programmer/projects", handleProjects)

	// Admin
	mux.HandleFunc("/api/admin/programmers", handleAdminProgrammers)
	mux.HandleFunc("/api/admin/audit", handleAdminAudit)
	mux.HandleFunc("/api/admin/outbox", handleAdminOutbox)
	mux.HandleFunc("/api/admin/outbox/retry", handleAdminOutboxRetry)

	// Operational
	mux.HandleFunc("/healthz", handleHealthz)
	mux.Handle("/metrics", promhttp.Handler())
}

// guardedPage serves a static page behind the role/route policy. Denied
// requests redirect to the role's landing route instead of erroring, so a
// signed-in student hitting /admin just lands back on /home.
func guardedPage(file string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		role := middleware.RoleFromContext(r.Context())
		decision := authz.Decide(role, r.URL.Path)
		if !decision.Allow {
			http.Redirect(w, r, decision.Redirect, http.StatusSeeOther)
			return
		}
		http.ServeFile(w, r, filepath.Join(staticDir, file))
	}
}

// publicPage serves a static page with no policy check.
func publicPage(file string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		http.ServeFile(w, r, filepath.Join(staticDir, file))
	}
}

// handleHealthz handles GET /healthz.
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, err := stores.AccountStore.Count(r.Context()); err != nil {
		http.Error(w, "database unreachable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
