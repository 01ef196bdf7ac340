package orchestrators

import (
	"context"
	"errors"
	"testing"

	"advisory/internal/domain/availability"
)

// --- ExecuteAddWindow tests ---

func TestExecuteAddWindow_Valid(t *testing.T) {
	progs := newMockProgrammerStore()

	w, err := ExecuteAddWindow(context.Background(), AddWindowInput{
		ProgrammerID: "prog-001",
		Day:          "lunes",
		StartTime:    "09:00",
		EndTime:      "17:00",
	}, AddWindowDeps{WindowStore: progs, GenerateID: fixedID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Day != availability.Lunes {
		t.Errorf("expected canonical day Lunes, got %q", w.Day)
	}
	if len(progs.windows["prog-001"]) != 1 {
		t.Error("expected window persisted")
	}
}

func TestExecuteAddWindow_DuplicateDay(t *testing.T) {
	progs := newMockProgrammerStore()
	progs.windows["prog-001"] = []availability.Window{
		{ID: "win-001", ProgrammerID: "prog-001", Day: availability.Lunes, StartTime: "09:00", EndTime: "12:00"},
	}

	_, err := ExecuteAddWindow(context.Background(), AddWindowInput{
		ProgrammerID: "prog-001",
		Day:          "LUNES",
		StartTime:    "14:00",
		EndTime:      "18:00",
	}, AddWindowDeps{WindowStore: progs, GenerateID: fixedID})
	if !errors.Is(err, ErrDuplicateDay) {
		t.Fatalf("expected ErrDuplicateDay, got %v", err)
	}
}

func TestExecuteAddWindow_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   AddWindowInput
		wantErr error
	}{
		{"unknown day", AddWindowInput{ProgrammerID: "p", Day: "Funday", StartTime: "09:00", EndTime: "10:00"}, availability.ErrInvalidDay},
		{"start equals end", AddWindowInput{ProgrammerID: "p", Day: "Martes", StartTime: "10:00", EndTime: "10:00"}, availability.ErrStartNotBeforeEnd},
		{"start after end", AddWindowInput{ProgrammerID: "p", Day: "Martes", StartTime: "15:00", EndTime: "10:00"}, availability.ErrStartNotBeforeEnd},
		{"bad clock", AddWindowInput{ProgrammerID: "p", Day: "Martes", StartTime: "9:00", EndTime: "10:00"}, availability.ErrInvalidTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progs := newMockProgrammerStore()
			_, err := ExecuteAddWindow(context.Background(), tt.input, AddWindowDeps{WindowStore: progs, GenerateID: fixedID})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// --- ExecuteDeleteWindow tests ---

func TestExecuteDeleteWindow(t *testing.T) {
	progs := newMockProgrammerStore()
	progs.windows["prog-001"] = []availability.Window{
		{ID: "win-001", ProgrammerID: "prog-001", Day: availability.Lunes, StartTime: "09:00", EndTime: "12:00"},
	}

	err := ExecuteDeleteWindow(context.Background(), DeleteWindowInput{
		WindowID:     "win-001",
		ProgrammerID: "prog-001",
	}, DeleteWindowDeps{WindowStore: progs})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(progs.windows["prog-001"]) != 0 {
		t.Error("expected window removed")
	}
}

func TestExecuteDeleteWindow_MissingIDs(t *testing.T) {
	progs := newMockProgrammerStore()
	err := ExecuteDeleteWindow(context.Background(), DeleteWindowInput{}, DeleteWindowDeps{WindowStore: progs})
	if err == nil {
		t.Fatal("expected error for missing IDs")
	}
}
