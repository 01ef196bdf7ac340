package orchestrators

import (
	"context"
	"errors"
	"testing"

	"advisory/internal/domain/programmer"
	"advisory/internal/domain/project"
)

// --- ExecuteSaveProgrammer tests ---

func TestExecuteSaveProgrammer_Create(t *testing.T) {
	progs := newMockProgrammerStore()

	p, err := ExecuteSaveProgrammer(context.Background(), SaveProgrammerInput{
		Name:      "Carlos Ruiz",
		Specialty: programmer.SpecialtyBackend,
		Email:     "Carlos@Example.com",
	}, SaveProgrammerDeps{ProgrammerStore: progs, GenerateID: fixedID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "test-id-001" {
		t.Errorf("expected generated ID, got %s", p.ID)
	}
	if p.Contact.Email != "carlos@example.com" {
		t.Errorf("expected lowercased email, got %s", p.Contact.Email)
	}
	if _, ok := progs.programmers[p.ID]; !ok {
		t.Error("expected profile persisted")
	}
}

func TestExecuteSaveProgrammer_Update(t *testing.T) {
	progs := newMockProgrammerStore()
	seedProgrammer(progs)

	p, err := ExecuteSaveProgrammer(context.Background(), SaveProgrammerInput{
		ID:        "prog-001",
		Name:      "Carlos Ruiz",
		Specialty: programmer.SpecialtyFullStack,
		Email:     "carlos@example.com",
	}, SaveProgrammerDeps{ProgrammerStore: progs, GenerateID: fixedID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Specialty != programmer.SpecialtyFullStack {
		t.Errorf("expected updated specialty, got %s", p.Specialty)
	}
}

func TestExecuteSaveProgrammer_DuplicateEmail(t *testing.T) {
	progs := newMockProgrammerStore()
	seedProgrammer(progs)

	_, err := ExecuteSaveProgrammer(context.Background(), SaveProgrammerInput{
		Name:      "Otra Persona",
		Specialty: programmer.SpecialtyFrontend,
		Email:     "carlos@example.com",
	}, SaveProgrammerDeps{ProgrammerStore: progs, GenerateID: func() string { return "prog-002" }})
	if !errors.Is(err, ErrProgrammerEmailTaken) {
		t.Fatalf("expected ErrProgrammerEmailTaken, got %v", err)
	}
}

func TestExecuteDeleteProgrammer(t *testing.T) {
	progs := newMockProgrammerStore()
	seedProgrammer(progs)

	err := ExecuteDeleteProgrammer(context.Background(), DeleteProgrammerInput{
		ProgrammerID: "prog-001",
	}, DeleteProgrammerDeps{ProgrammerStore: progs})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := progs.programmers["prog-001"]; ok {
		t.Error("expected profile removed")
	}
	if len(progs.windows["prog-001"]) != 0 {
		t.Error("expected windows removed with profile")
	}
}

// --- ExecuteSaveProject tests ---

// mockProjectStore implements ProjectStoreForPortfolio for testing.
type mockProjectStore struct {
	projects map[string]project.Project
}

func newMockProjectStore() *mockProjectStore {
	return &mockProjectStore{projects: make(map[string]project.Project)}
}

func (m *mockProjectStore) GetByID(_ context.Context, id string) (project.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return project.Project{}, errors.New("not found")
	}
	return p, nil
}

func (m *mockProjectStore) Save(_ context.Context, p project.Project) error {
	m.projects[p.ID] = p
	return nil
}

func (m *mockProjectStore) Delete(_ context.Context, id string) error {
	delete(m.projects, id)
	return nil
}

func TestExecuteSaveProject_Create(t *testing.T) {
	store := newMockProjectStore()

	p, err := ExecuteSaveProject(context.Background(), SaveProjectInput{
		ProgrammerID: "prog-001",
		Title:        "Sistema de inventario",
		Description:  "API de inventario para la facultad",
		Category:     project.CategoryAcademic,
		Technologies: []string{"Go", " PostgreSQL ", ""},
	}, SaveProjectDeps{ProjectStore: store, GenerateID: fixedID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Technologies != "Go, PostgreSQL" {
		t.Errorf("expected trimmed comma-joined technologies, got %q", p.Technologies)
	}
	if _, ok := store.projects[p.ID]; !ok {
		t.Error("expected project persisted")
	}
}

func TestExecuteSaveProject_InvalidCategory(t *testing.T) {
	store := newMockProjectStore()
	_, err := ExecuteSaveProject(context.Background(), SaveProjectInput{
		ProgrammerID: "prog-001",
		Title:        "Algo",
		Description:  "desc",
		Category:     "Personal",
	}, SaveProjectDeps{ProjectStore: store, GenerateID: fixedID})
	if !errors.Is(err, project.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestExecuteSaveProject_UpdateKeepsOwner(t *testing.T) {
	store := newMockProjectStore()
	store.projects["proj-001"] = project.Project{
		ID: "proj-001", ProgrammerID: "prog-001",
		Title: "Viejo", Description: "desc", Category: project.CategoryWork,
	}

	_, err := ExecuteSaveProject(context.Background(), SaveProjectInput{
		ID:           "proj-001",
		ProgrammerID: "prog-002", // not the owner
		Title:        "Nuevo",
		Description:  "desc",
		Category:     project.CategoryWork,
	}, SaveProjectDeps{ProjectStore: store, GenerateID: fixedID})
	if !errors.Is(err, ErrNotProjectOwner) {
		t.Fatalf("expected ErrNotProjectOwner, got %v", err)
	}
	if store.projects["proj-001"].Title != "Viejo" {
		t.Error("expected project unchanged")
	}
}

func TestExecuteDeleteProject_OwnerScoped(t *testing.T) {
	store := newMockProjectStore()
	store.projects["proj-001"] = project.Project{
		ID: "proj-001", ProgrammerID: "prog-001",
		Title: "t", Description: "d", Category: project.CategoryAcademic,
	}

	err := ExecuteDeleteProject(context.Background(), DeleteProjectInput{
		ProjectID:    "proj-001",
		ProgrammerID: "prog-002",
	}, DeleteProjectDeps{ProjectStore: store})
	if !errors.Is(err, ErrNotProjectOwner) {
		t.Fatalf("expected ErrNotProjectOwner, got %v", err)
	}

	err = ExecuteDeleteProject(context.Background(), DeleteProjectInput{
		ProjectID:    "proj-001",
		ProgrammerID: "prog-001",
	}, DeleteProjectDeps{ProjectStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.projects["proj-001"]; ok {
		t.Error("expected project removed")
	}
}
