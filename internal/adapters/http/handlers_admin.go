package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"advisory/internal/application/orchestrators"
)

// handleAdminAudit handles GET /api/admin/audit: the newest audit events,
// append-only, for the admin activity view.
func handleAdminAudit(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	events, err := stores.AuditStore.List(r.Context(), limit)
	if err != nil {
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if events == nil {
		w.Write([]byte("[]"))
		return
	}
	json.NewEncoder(w).Encode(events)
}

// handleAdminOutbox handles GET /api/admin/outbox: the queued notification
// entries still eligible for retry.
func handleAdminOutbox(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := stores.OutboxStore.ListRetryable(r.Context(), limit)
	if err != nil {
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if entries == nil {
		w.Write([]byte("[]"))
		return
	}
	json.NewEncoder(w).Encode(entries)
}

// handleAdminOutboxRetry handles POST /api/admin/outbox/retry: runs one
// retry pass immediately instead of waiting for the scheduler tick.
func handleAdminOutboxRetry(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	deps := orchestrators.OutboxRetryDeps{
		OutboxStore: stores.OutboxStore,
		EmailSender: emailSender,
		FromAddress: emailFromAddress,
	}
	if err := orchestrators.ExecuteOutboxRetry(r.Context(), deps); err != nil {
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "retry pass complete"})
}
