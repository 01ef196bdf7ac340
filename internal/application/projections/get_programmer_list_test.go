package projections

import (
	"context"
	"errors"
	"testing"

	"advisory/internal/application/listutil"
	domainAppointment "advisory/internal/domain/appointment"
	"advisory/internal/domain/availability"
	domainProgrammer "advisory/internal/domain/programmer"
	domainProject "advisory/internal/domain/project"
)

// mockRoster implements ProgrammerStore for testing.
type mockRoster struct {
	programmers []domainProgrammer.Programmer
	windows     map[string][]availability.Window
}

func (m *mockRoster) GetByID(_ context.Context, id string) (domainProgrammer.Programmer, error) {
	for _, p := range m.programmers {
		if p.ID == id {
			return p, nil
		}
	}
	return domainProgrammer.Programmer{}, errors.New("not found")
}

func (m *mockRoster) List(_ context.Context) ([]domainProgrammer.Programmer, error) {
	return m.programmers, nil
}

func (m *mockRoster) ListWindows(_ context.Context, programmerID string) ([]availability.Window, error) {
	return m.windows[programmerID], nil
}

// mockProjects implements ProjectStore for testing.
type mockProjects struct {
	projects []domainProject.Project
}

func (m *mockProjects) ListByProgrammer(_ context.Context, programmerID string) ([]domainProject.Project, error) {
	var out []domainProject.Project
	for _, p := range m.projects {
		if p.ProgrammerID == programmerID {
			out = append(out, p)
		}
	}
	return out, nil
}

// mockAppointments implements AppointmentStore for testing.
type mockAppointments struct {
	appointments []domainAppointment.Appointment
}

func (m *mockAppointments) ListByStudent(_ context.Context, email string) ([]domainAppointment.Appointment, error) {
	var out []domainAppointment.Appointment
	for _, a := range m.appointments {
		if a.StudentEmail == email {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAppointments) ListByProgrammer(_ context.Context, id string) ([]domainAppointment.Appointment, error) {
	var out []domainAppointment.Appointment
	for _, a := range m.appointments {
		if a.ProgrammerID == id {
			out = append(out, a)
		}
	}
	return out, nil
}

func testRoster() *mockRoster {
	return &mockRoster{
		programmers: []domainProgrammer.Programmer{
			{ID: "p1", Name: "Ana García", Specialty: domainProgrammer.SpecialtyFrontend, Contact: domainProgrammer.Contact{Email: "ana.g@example.com"}},
			{ID: "p2", Name: "Carlos Ruiz", Specialty: domainProgrammer.SpecialtyBackend, Contact: domainProgrammer.Contact{Email: "carlos@example.com"}},
			{ID: "p3", Name: "Lucía Backend", Specialty: domainProgrammer.SpecialtyFrontend, Contact: domainProgrammer.Contact{Email: "lucia@example.com"}},
		},
		windows: make(map[string][]availability.Window),
	}
}

func TestQueryGetProgrammerList_Filters(t *testing.T) {
	tests := []struct {
		name      string
		search    string
		specialty string
		wantIDs   []string
	}{
		{"no filter", "", "", []string{"p1", "p2", "p3"}},
		{"all specialty", "", "All", []string{"p1", "p2", "p3"}},
		{"by specialty", "", domainProgrammer.SpecialtyBackend, []string{"p2"}},
		{"search by name", "carlos", "", []string{"p2"}},
		{"search matches specialty text", "backend", "", []string{"p2", "p3"}},
		{"search plus specialty", "backend", domainProgrammer.SpecialtyFrontend, []string{"p3"}},
		{"no matches", "zzz", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := QueryGetProgrammerList(context.Background(), GetProgrammerListQuery{
				Search:    tt.search,
				Specialty: tt.specialty,
			}, GetProgrammerListDeps{ProgrammerStore: testRoster()})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result.Programmers) != len(tt.wantIDs) {
				t.Fatalf("expected %d results, got %d", len(tt.wantIDs), len(result.Programmers))
			}
			for i, id := range tt.wantIDs {
				if result.Programmers[i].ID != id {
					t.Errorf("result[%d]: expected %s, got %s", i, id, result.Programmers[i].ID)
				}
			}
		})
	}
}

func TestQueryGetProgrammerList_Pagination(t *testing.T) {
	result, err := QueryGetProgrammerList(context.Background(), GetProgrammerListQuery{
		Page: listutil.PageParams{Page: 2, PerPage: 2},
	}, GetProgrammerListDeps{ProgrammerStore: testRoster()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PageInfo.TotalPages != 2 || result.PageInfo.Total != 3 {
		t.Errorf("unexpected page info: %+v", result.PageInfo)
	}
	if len(result.Programmers) != 1 || result.Programmers[0].ID != "p3" {
		t.Errorf("expected second page with p3, got %+v", result.Programmers)
	}
}

func TestQueryGetPortfolio(t *testing.T) {
	roster := testRoster()
	roster.programmers[1].Description = "Me gusta **Go**"
	roster.windows["p2"] = []availability.Window{
		{ID: "w2", ProgrammerID: "p2", Day: availability.Viernes, StartTime: "09:00", EndTime: "12:00"},
		{ID: "w1", ProgrammerID: "p2", Day: availability.Lunes, StartTime: "14:00", EndTime: "18:00"},
	}
	projects := &mockProjects{projects: []domainProject.Project{
		{ID: "pr1", ProgrammerID: "p2", Title: "Tesis", Description: "d", Category: domainProject.CategoryAcademic, Technologies: "Go, SQLite"},
		{ID: "pr2", ProgrammerID: "p2", Title: "Facturación", Description: "d", Category: domainProject.CategoryWork},
		{ID: "pr3", ProgrammerID: "p1", Title: "Ajeno", Description: "d", Category: domainProject.CategoryWork},
	}}

	result, err := QueryGetPortfolio(context.Background(), GetPortfolioQuery{ProgrammerID: "p2"}, GetPortfolioDeps{
		ProgrammerStore: roster,
		ProjectStore:    projects,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Name != "Carlos Ruiz" {
		t.Errorf("unexpected name %q", result.Name)
	}
	if result.DescriptionHTML != "<p>Me gusta <strong>Go</strong></p>\n" {
		t.Errorf("unexpected rendered description: %q", result.DescriptionHTML)
	}
	if len(result.Windows) != 2 || result.Windows[0].Day != availability.Lunes {
		t.Errorf("expected windows ordered by weekday, got %+v", result.Windows)
	}
	if len(result.AcademicProjects) != 1 || result.AcademicProjects[0].Title != "Tesis" {
		t.Errorf("unexpected academic projects: %+v", result.AcademicProjects)
	}
	if len(result.AcademicProjects[0].Technologies) != 2 {
		t.Errorf("expected parsed technology tags, got %v", result.AcademicProjects[0].Technologies)
	}
	if len(result.WorkProjects) != 1 || result.WorkProjects[0].Title != "Facturación" {
		t.Errorf("unexpected work projects: %+v", result.WorkProjects)
	}
}

func TestQueryGetPortfolio_UnknownProgrammer(t *testing.T) {
	_, err := QueryGetPortfolio(context.Background(), GetPortfolioQuery{ProgrammerID: "ghost"}, GetPortfolioDeps{
		ProgrammerStore: testRoster(),
		ProjectStore:    &mockProjects{},
	})
	if err == nil {
		t.Fatal("expected error for unknown programmer")
	}
}

func TestQueryGetStudentAppointments(t *testing.T) {
	appts := &mockAppointments{appointments: []domainAppointment.Appointment{
		{ID: "a1", ProgrammerID: "p2", ProgrammerName: "Carlos Ruiz", StudentEmail: "ana@example.com", Date: "2026-03-02", Time: "10:00", Status: domainAppointment.StatusPending},
		{ID: "a2", ProgrammerID: "p2", ProgrammerName: "Carlos Ruiz", StudentEmail: "ana@example.com", Date: "2026-02-16", Time: "11:00", Status: domainAppointment.StatusApproved},
		{ID: "a3", ProgrammerID: "p1", ProgrammerName: "Ana García", StudentEmail: "otro@example.com", Date: "2026-02-16", Time: "11:00", Status: domainAppointment.StatusPending},
	}}

	result, err := QueryGetStudentAppointments(context.Background(), GetStudentAppointmentsQuery{
		StudentEmail: "ana@example.com",
	}, GetAppointmentsDeps{AppointmentStore: appts, ProgrammerStore: testRoster()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Appointments) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Appointments))
	}
	if result.PendingCount != 1 {
		t.Errorf("expected 1 pending, got %d", result.PendingCount)
	}
	if result.Appointments[0].CanDelete {
		t.Error("pending row must not be deletable")
	}
	if !result.Appointments[1].CanDelete {
		t.Error("responded row must be deletable")
	}
	want := "mailto:carlos@example.com?subject=Asesor%C3%ADa+del+2026-03-02+a+las+10%3A00"
	if result.Appointments[0].ContactLink != want {
		t.Errorf("unexpected contact link:\n got %q\nwant %q", result.Appointments[0].ContactLink, want)
	}
	wantWA := "https://wa.me/?text=Asesor%C3%ADa+del+2026-03-02+a+las+10%3A00"
	if result.Appointments[0].WhatsAppLink != wantWA {
		t.Errorf("unexpected WhatsApp link:\n got %q\nwant %q", result.Appointments[0].WhatsAppLink, wantWA)
	}
}

func TestQueryGetStudentAppointments_DeletedProfileKeepsWhatsAppLink(t *testing.T) {
	appts := &mockAppointments{appointments: []domainAppointment.Appointment{
		{ID: "a1", ProgrammerID: "ghost", ProgrammerName: "Borrado", StudentEmail: "ana@example.com", Date: "2026-03-02", Time: "10:00", Status: domainAppointment.StatusApproved},
	}}

	result, err := QueryGetStudentAppointments(context.Background(), GetStudentAppointmentsQuery{
		StudentEmail: "ana@example.com",
	}, GetAppointmentsDeps{AppointmentStore: appts, ProgrammerStore: testRoster()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Appointments[0].ContactLink != "" {
		t.Error("expected no mailto link without a roster email")
	}
	if result.Appointments[0].WhatsAppLink == "" {
		t.Error("expected WhatsApp share link, it needs no address")
	}
}

func TestQueryGetProgrammerAppointments(t *testing.T) {
	appts := &mockAppointments{appointments: []domainAppointment.Appointment{
		{ID: "a1", ProgrammerID: "p2", StudentEmail: "ana@example.com", Date: "2026-03-02", Time: "10:00", Status: domainAppointment.StatusPending},
		{ID: "a2", ProgrammerID: "p2", StudentEmail: "luis@example.com", Date: "2026-02-16", Time: "11:00", Status: domainAppointment.StatusRejected},
	}}

	result, err := QueryGetProgrammerAppointments(context.Background(), GetProgrammerAppointmentsQuery{
		ProgrammerID: "p2",
	}, GetAppointmentsDeps{AppointmentStore: appts, ProgrammerStore: testRoster()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Appointments) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Appointments))
	}
	if result.PendingCount != 1 {
		t.Errorf("expected 1 pending, got %d", result.PendingCount)
	}
	if result.Appointments[0].ContactLink == "" {
		t.Error("expected student contact link")
	}
	if result.Appointments[0].WhatsAppLink != "https://wa.me/?text=Asesor%C3%ADa+del+2026-03-02+a+las+10%3A00" {
		t.Errorf("unexpected WhatsApp link %q", result.Appointments[0].WhatsAppLink)
	}
}
