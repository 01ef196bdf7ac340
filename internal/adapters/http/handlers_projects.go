package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"advisory/internal/application/orchestrators"
	"advisory/internal/domain/audit"
	"advisory/internal/domain/project"
)

// handleProjects handles GET/POST/DELETE for /api/programmer/projects.
// GET lists the acting programmer's portfolio entries, POST creates or
// updates one, DELETE removes one by id.
func handleProjects(w http.ResponseWriter, r *http.Request) {
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
		projects, err := stores.ProjectStore.ListByProgrammer(ctx, programmerID)
		if err != nil {
			internalError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if projects == nil {
			w.Write([]byte("[]"))
			return
		}
		json.NewEncoder(w).Encode(projects)
		return
	}

	if r.Method == "POST" {
		var input struct {
			ID            string   `json:"ID"`
			Title         string   `json:"Title"`
			Description   string   `json:"Description"`
			Category      string   `json:"Category"`
			Participation string   `json:"Participation"`
			Technologies  []string `json:"Technologies"`
			RepoURL       string   `json:"RepoURL"`
			DemoURL       string   `json:"DemoURL"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		p, err := orchestrators.ExecuteSaveProject(ctx, orchestrators.SaveProjectInput{
			ID:            input.ID,
			ProgrammerID:  programmerID,
			Title:         input.Title,
			Description:   input.Description,
			Category:      input.Category,
			Participation: input.Participation,
			Technologies:  input.Technologies,
			RepoURL:       input.RepoURL,
			DemoURL:       input.DemoURL,
		}, orchestrators.SaveProjectDeps{
			ProjectStore: stores.ProjectStore,
			GenerateID:   generateID,
		})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, orchestrators.ErrNotProjectOwner) {
				status = http.StatusForbidden
			}
			if errors.Is(err, project.ErrInvalidCategory) {
				status = http.StatusUnprocessableEntity
			}
			http.Error(w, err.Error(), status)
			return
		}

		action := audit.ActionUpdate
		if input.ID == "" {
			action = audit.ActionCreate
		}
		recordAudit(ctx, audit.NewEvent(sess.Email, string(sess.Role), audit.CategoryPortfolio, action).
			WithResource("project", p.ID).
			WithDescription(p.Title))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(p)
		return
	}

	if r.Method == "DELETE" {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		err := orchestrators.ExecuteDeleteProject(ctx, orchestrators.DeleteProjectInput{
			ProjectID:    id,
			ProgrammerID: programmerID,
		}, orchestrators.DeleteProjectDeps{
			ProjectStore: stores.ProjectStore,
		})
		if err != nil {
			if errors.Is(err, orchestrators.ErrNotProjectOwner) {
				http.Error(w, err.Error(), http.StatusForbidden)
				return
			}
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		recordAudit(ctx, audit.NewEvent(sess.Email, string(sess.Role), audit.CategoryPortfolio, audit.ActionDelete).
			WithResource("project", id))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}
