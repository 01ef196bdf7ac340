package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"advisory/internal/application/orchestrators"
	"advisory/internal/application/projections"
	"advisory/internal/domain/appointment"
	"advisory/internal/domain/audit"
	"advisory/internal/domain/authz"
)

// handleAppointments handles GET/POST/DELETE for /api/appointments.
// GET lists the caller's booking history, POST books a new slot, DELETE
// removes a responded booking by id.
func handleAppointments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	if r.Method == "GET" {
		result, err := projections.QueryGetStudentAppointments(ctx, projections.GetStudentAppointmentsQuery{
			StudentEmail: sess.Email,
		}, projections.GetAppointmentsDeps{
			AppointmentStore: stores.AppointmentStore,
			ProgrammerStore:  stores.ProgrammerStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
		return
	}

	if r.Method == "POST" {
		var input struct {
			ProgrammerID string `json:"ProgrammerID"`
			StudentName  string `json:"StudentName"`
			Date         string `json:"Date"`
			Time         string `json:"Time"`
			Topic        string `json:"Topic"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		appt, err := orchestrators.ExecuteBookAppointment(ctx, orchestrators.BookAppointmentInput{
			ProgrammerID: input.ProgrammerID,
			StudentEmail: sess.Email,
			StudentName:  input.StudentName,
			Date:         input.Date,
			Time:         input.Time,
			Topic:        input.Topic,
		}, orchestrators.BookAppointmentDeps{
			ProgrammerStore:  stores.ProgrammerStore,
			AppointmentStore: stores.AppointmentStore,
			Notify:           notifyDeps(),
			GenerateID:       generateID,
			Now:              timeNow,
		})
		if err != nil {
			var rejected *orchestrators.SlotRejectedError
			switch {
			case errors.As(err, &rejected):
				// The reason is user-facing: the frontend shows it verbatim.
				http.Error(w, rejected.Reason, http.StatusUnprocessableEntity)
			case errors.Is(err, orchestrators.ErrProgrammerRef):
				http.Error(w, err.Error(), http.StatusNotFound)
			default:
				http.Error(w, err.Error(), http.StatusBadRequest)
			}
			return
		}

		recordAudit(ctx, audit.NewEvent(sess.Email, string(sess.Role), audit.CategoryAppointment, audit.ActionCreate).
			WithResource("appointment", appt.ID).
			WithDescription(appt.Date+" "+appt.Time))

		// Return the persisted entity, never a client-side placeholder.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(appt)
		return
	}

	if r.Method == "DELETE" {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}

		// Admins can clean up anyone's history; students only their own.
		studentEmail := sess.Email
		if sess.Role == authz.RoleAdmin {
			studentEmail = ""
		}
		err := orchestrators.ExecuteDeleteAppointment(ctx, orchestrators.DeleteAppointmentInput{
			AppointmentID: id,
			StudentEmail:  studentEmail,
		}, orchestrators.DeleteAppointmentDeps{
			AppointmentStore: stores.AppointmentStore,
		})
		if err != nil {
			switch {
			case errors.Is(err, orchestrators.ErrNotBookingOwner):
				http.Error(w, err.Error(), http.StatusForbidden)
			case errors.Is(err, appointment.ErrDeletePending):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "appointment not found", http.StatusNotFound)
			}
			return
		}

		recordAudit(ctx, audit.NewEvent(sess.Email, string(sess.Role), audit.CategoryAppointment, audit.ActionDelete).
			WithResource("appointment", id))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

// handleRespondAppointment handles POST /api/appointments/respond.
// PRE: Caller is the addressed programmer (or an admin); appointment is
// Pendiente
// POST: Status and message persisted exactly once; student notified
func handleRespondAppointment(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireProgrammerOrAdmin(w, r)
	if !ok {
		return
	}

	var input struct {
		AppointmentID string `json:"AppointmentID"`
		Status        string `json:"Status"`
		Message       string `json:"Message"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	// Admins respond on behalf of any programmer; programmers only to
	// appointments addressed to their own profile.
	programmerID := ""
	if sess.Role == authz.RoleProgrammer {
		p, err := stores.ProgrammerStore.GetByEmail(r.Context(), sess.Email)
		if err != nil {
			http.Error(w, "no programmer profile for this account", http.StatusForbidden)
			return
		}
		programmerID = p.ID
	}

	appt, err := orchestrators.ExecuteRespondAppointment(r.Context(), orchestrators.RespondAppointmentInput{
		AppointmentID: input.AppointmentID,
		ProgrammerID:  programmerID,
		Status:        input.Status,
		Message:       input.Message,
	}, orchestrators.RespondAppointmentDeps{
		AppointmentStore: stores.AppointmentStore,
		Notify:           notifyDeps(),
	})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrNotAppointmentOwner):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, appointment.ErrAlreadyResponded):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, appointment.ErrInvalidResponseStatus), errors.Is(err, appointment.ErrEmptyResponseMessage):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, "appointment not found", http.StatusNotFound)
		}
		return
	}

	recordAudit(r.Context(), audit.NewEvent(sess.Email, string(sess.Role), audit.CategoryAppointment, audit.ActionRespond).
		WithResource("appointment", appt.ID).
		WithDescription(appt.Status))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appt)
}

// handleProgrammerAppointments handles GET /api/programmer/appointments: the
// inbox of bookings addressed to the acting programmer.
func handleProgrammerAppointments(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireProgrammerOrAdmin(w, r)
	if !ok {
		return
	}
	programmerID, ok := actingProgrammerID(w, r, sess)
	if !ok {
		return
	}

	result, err := projections.QueryGetProgrammerAppointments(r.Context(), projections.GetProgrammerAppointmentsQuery{
		ProgrammerID: programmerID,
	}, projections.GetAppointmentsDeps{
		AppointmentStore: stores.AppointmentStore,
		ProgrammerStore:  stores.ProgrammerStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
