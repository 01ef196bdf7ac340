package programmer_test

import (
	"testing"

	"advisory/internal/domain/programmer"
)

func validProfile() programmer.Programmer {
	return programmer.Programmer{
		ID:        "p-1",
		Name:      "Ana Calle",
		Specialty: programmer.SpecialtyBackend,
		Contact:   programmer.Contact{Email: "ana@example.com"},
	}
}

// TestProgrammer_Validate tests validation of Programmer.
func TestProgrammer_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*programmer.Programmer)
		wantErr bool
	}{
		{name: "valid profile", mutate: func(p *programmer.Programmer) {}, wantErr: false},
		{name: "empty name", mutate: func(p *programmer.Programmer) { p.Name = "  " }, wantErr: true},
		{name: "empty contact email", mutate: func(p *programmer.Programmer) { p.Contact.Email = "" }, wantErr: true},
		{name: "email without at sign", mutate: func(p *programmer.Programmer) { p.Contact.Email = "ana.example.com" }, wantErr: true},
		{name: "free-text specialty accepted", mutate: func(p *programmer.Programmer) { p.Specialty = "Embedded" }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Programmer.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestProgrammer_HasProgrammerRole tests role tag normalisation.
func TestProgrammer_HasProgrammerRole(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{role: "programmer", want: true},
		{role: "Programmer", want: true},
		{role: "PROGRAMADOR", want: true},
		{role: " programador ", want: true},
		{role: "student", want: false},
		{role: "", want: false},
	}

	for _, tt := range tests {
		t.Run("role_"+tt.role, func(t *testing.T) {
			p := validProfile()
			p.Role = tt.role
			if got := p.HasProgrammerRole(); got != tt.want {
				t.Errorf("HasProgrammerRole() with %q = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

// TestProgrammer_MatchesFilter tests the roster search and specialty filter.
func TestProgrammer_MatchesFilter(t *testing.T) {
	p := validProfile()

	tests := []struct {
		name      string
		term      string
		specialty string
		want      bool
	}{
		{name: "empty filters match", term: "", specialty: "All", want: true},
		{name: "name substring", term: "ana", specialty: "All", want: true},
		{name: "specialty substring", term: "backend", specialty: "All", want: true},
		{name: "term mismatch", term: "frontend", specialty: "All", want: false},
		{name: "exact specialty", term: "", specialty: programmer.SpecialtyBackend, want: true},
		{name: "wrong specialty", term: "", specialty: programmer.SpecialtyDevOps, want: false},
		{name: "term and specialty must both match", term: "ana", specialty: programmer.SpecialtyDevOps, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.MatchesFilter(tt.term, tt.specialty); got != tt.want {
				t.Errorf("MatchesFilter(%q, %q) = %v, want %v", tt.term, tt.specialty, got, tt.want)
			}
		})
	}
}
