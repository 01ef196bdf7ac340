package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"advisory/internal/application/listutil"
	"advisory/internal/application/orchestrators"
	"advisory/internal/application/projections"
	"advisory/internal/domain/audit"
	"advisory/internal/domain/availability"
)

// handleProgrammerList handles GET /api/programmers.
// Query parameters: q (search), specialty, page, per_page.
func handleProgrammerList(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	result, err := projections.QueryGetProgrammerList(r.Context(), projections.GetProgrammerListQuery{
		Search:    r.URL.Query().Get("q"),
		Specialty: r.URL.Query().Get("specialty"),
		Page:      listutil.ParsePageParams(r.URL.Query()),
	}, projections.GetProgrammerListDeps{
		ProgrammerStore: stores.ProgrammerStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handlePortfolio handles GET /api/portfolio?id=<programmer-id>.
func handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	result, err := projections.QueryGetPortfolio(r.Context(), projections.GetPortfolioQuery{
		ProgrammerID: id,
	}, projections.GetPortfolioDeps{
		ProgrammerStore: stores.ProgrammerStore,
		ProjectStore:    stores.ProjectStore,
	})
	if err != nil {
		http.Error(w, "programmer not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleAdminProgrammers handles GET/POST/DELETE for /api/admin/programmers.
// GET lists the full roster, POST creates or updates a profile, DELETE
// removes one by id.
func handleAdminProgrammers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		programmers, err := stores.ProgrammerStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if programmers == nil {
			w.Write([]byte("[]"))
			return
		}
		json.NewEncoder(w).Encode(programmers)
		return
	}

	if r.Method == "POST" {
		sess, ok := requireAdmin(w, r)
		if !ok {
			return
		}
		var input struct {
			ID           string `json:"ID"`
			Name         string `json:"Name"`
			Specialty    string `json:"Specialty"`
			Description  string `json:"Description"`
			PhotoURL     string `json:"PhotoURL"`
			Role         string `json:"Role"`
			Email        string `json:"Email"`
			LinkedIn     string `json:"LinkedIn"`
			GitHub       string `json:"GitHub"`
			PortfolioURL string `json:"PortfolioURL"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		p, err := orchestrators.ExecuteSaveProgrammer(ctx, orchestrators.SaveProgrammerInput{
			ID:           input.ID,
			Name:         input.Name,
			Specialty:    input.Specialty,
			Description:  input.Description,
			PhotoURL:     input.PhotoURL,
			Role:         input.Role,
			Email:        input.Email,
			LinkedIn:     input.LinkedIn,
			GitHub:       input.GitHub,
			PortfolioURL: input.PortfolioURL,
		}, orchestrators.SaveProgrammerDeps{
			ProgrammerStore: stores.ProgrammerStore,
			GenerateID:      generateID,
		})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, orchestrators.ErrProgrammerEmailTaken) {
				status = http.StatusConflict
			}
			http.Error(w, err.Error(), status)
			return
		}

		action := audit.ActionUpdate
		if input.ID == "" {
			action = audit.ActionCreate
		}
		recordAudit(ctx, audit.NewEvent(sess.Email, string(sess.Role), audit.CategoryRoster, action).
			WithResource("programmer", p.ID).
			WithDescription(p.Name))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(p)
		return
	}

	if r.Method == "DELETE" {
		sess, ok := requireAdmin(w, r)
		if !ok {
			return
		}
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		err := orchestrators.ExecuteDeleteProgrammer(ctx, orchestrators.DeleteProgrammerInput{
			ProgrammerID: id,
		}, orchestrators.DeleteProgrammerDeps{
			ProgrammerStore: stores.ProgrammerStore,
		})
		if err != nil {
			http.Error(w, "programmer not found", http.StatusNotFound)
			return
		}
		recordAudit(ctx, audit.NewEvent(sess.Email, string(sess.Role), audit.CategoryRoster, audit.ActionDelete).
			WithResource("programmer", id).
			WithSeverity(audit.SeverityWarning))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

// handleWindows handles GET/POST/DELETE for /api/programmer/windows.
// Windows are the weekly availability slots bookings are validated against.
func handleWindows(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := requireProgrammerOrAdmin(w, r)
	if !ok {
		return
	}
	programmerID, ok := actingProgrammerID(w, r, sess)
	if !ok {
		return
	}

	if r.Method == "GET" {
		windows, err := stores.ProgrammerStore.ListWindows(ctx, programmerID)
		if err != nil {
			internalError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if windows == nil {
			w.Write([]byte("[]"))
			return
		}
		json.NewEncoder(w).Encode(windows)
		return
	}

	if r.Method == "POST" {
		var input struct {
			Day       string `json:"Day"`
			StartTime string `json:"StartTime"`
			EndTime   string `json:"EndTime"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		window, err := orchestrators.ExecuteAddWindow(ctx, orchestrators.AddWindowInput{
			ProgrammerID: programmerID,
			Day:          input.Day,
			StartTime:    input.StartTime,
			EndTime:      input.EndTime,
		}, orchestrators.AddWindowDeps{
			WindowStore: stores.ProgrammerStore,
			GenerateID:  generateID,
		})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, orchestrators.ErrDuplicateDay) {
				status = http.StatusConflict
			}
			if errors.Is(err, availability.ErrInvalidDay) {
				status = http.StatusUnprocessableEntity
			}
			http.Error(w, err.Error(), status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(window)
		return
	}

	if r.Method == "DELETE" {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		err := orchestrators.ExecuteDeleteWindow(ctx, orchestrators.DeleteWindowInput{
			WindowID:     id,
			ProgrammerID: programmerID,
		}, orchestrators.DeleteWindowDeps{
			WindowStore: stores.ProgrammerStore,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}
