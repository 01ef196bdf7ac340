package project_test

import (
	"reflect"
	"testing"

	"advisory/internal/domain/project"
)

// TestProject_Validate tests validation of Project.
func TestProject_Validate(t *testing.T) {
	tests := []struct {
		name    string
		proj    project.Project
		wantErr bool
	}{
		{
			name:    "valid academic project",
			proj:    project.Project{ID: "1", ProgrammerID: "p-1", Title: "Inventario", Description: "Sistema de inventario", Category: project.CategoryAcademic},
			wantErr: false,
		},
		{
			name:    "valid work project",
			proj:    project.Project{ID: "2", ProgrammerID: "p-1", Title: "API Pagos", Description: "Pasarela de pagos", Category: project.CategoryWork},
			wantErr: false,
		},
		{
			name:    "empty programmer ID",
			proj:    project.Project{ID: "3", Title: "X", Description: "Y", Category: project.CategoryWork},
			wantErr: true,
		},
		{
			name:    "empty title",
			proj:    project.Project{ID: "4", ProgrammerID: "p-1", Title: " ", Description: "Y", Category: project.CategoryWork},
			wantErr: true,
		},
		{
			name:    "empty description",
			proj:    project.Project{ID: "5", ProgrammerID: "p-1", Title: "X", Description: "", Category: project.CategoryWork},
			wantErr: true,
		},
		{
			name:    "invalid category",
			proj:    project.Project{ID: "6", ProgrammerID: "p-1", Title: "X", Description: "Y", Category: "Personal"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.proj.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Project.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestProject_TechList tests parsing of comma-joined technology tags.
func TestProject_TechList(t *testing.T) {
	tests := []struct {
		name string
		tech string
		want []string
	}{
		{name: "plain list", tech: "Go, Angular, Postgres", want: []string{"Go", "Angular", "Postgres"}},
		{name: "blank entries dropped", tech: "Go,, ,Angular", want: []string{"Go", "Angular"}},
		{name: "empty string", tech: "", want: nil},
		{name: "single tag", tech: "  Rust  ", want: []string{"Rust"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := project.Project{Technologies: tt.tech}
			if got := p.TechList(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TechList() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestProject_SetTechList tests the join side of the tag round trip.
func TestProject_SetTechList(t *testing.T) {
	var p project.Project
	p.SetTechList([]string{" Go ", "", "Angular"})
	if p.Technologies != "Go, Angular" {
		t.Errorf("SetTechList() stored %q, want %q", p.Technologies, "Go, Angular")
	}
	if got := p.TechList(); !reflect.DeepEqual(got, []string{"Go", "Angular"}) {
		t.Errorf("round trip = %v", got)
	}
}
