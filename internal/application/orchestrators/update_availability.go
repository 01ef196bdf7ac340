package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"advisory/internal/domain/availability"
)

// WindowStoreForAvailability defines the store interface needed by the
// availability orchestrators.
type WindowStoreForAvailability interface {
	ListWindows(ctx context.Context, programmerID string) ([]availability.Window, error)
	SaveWindow(ctx context.Context, w availability.Window) error
	DeleteWindow(ctx context.Context, id, programmerID string) error
}

// AddWindowInput carries input for adding one weekly window.
type AddWindowInput struct {
	ProgrammerID string
	Day          string
	StartTime    string // HH:MM
	EndTime      string // HH:MM
}

// AddWindowDeps holds dependencies for AddWindow.
type AddWindowDeps struct {
	WindowStore WindowStoreForAvailability
	GenerateID  func() string
}

// ErrDuplicateDay is returned when a window already exists for the weekday.
var ErrDuplicateDay = errors.New("ya existe un horario para ese día")

// ExecuteAddWindow adds one weekly availability window for a programmer.
// The day is stored in its canonical spelling so the per-weekday uniqueness
// constraint holds regardless of input casing.
// PRE: Day is a valid weekday; times are HH:MM with start before end
// POST: Window persisted, or error with no write
// INVARIANT: At most one window per weekday per programmer
func ExecuteAddWindow(ctx context.Context, input AddWindowInput, deps AddWindowDeps) (availability.Window, error) {
	day, ok := availability.CanonicalDay(input.Day)
	if !ok {
		return availability.Window{}, availability.ErrInvalidDay
	}

	w := availability.Window{
		ID:           deps.GenerateID(),
		ProgrammerID: input.ProgrammerID,
		Day:          day,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
	}
	if err := w.Validate(); err != nil {
		return availability.Window{}, err
	}

	existing, err := deps.WindowStore.ListWindows(ctx, input.ProgrammerID)
	if err != nil {
		return availability.Window{}, err
	}
	if availability.HasDuplicateDay(existing, day) {
		return availability.Window{}, ErrDuplicateDay
	}

	if err := deps.WindowStore.SaveWindow(ctx, w); err != nil {
		return availability.Window{}, err
	}

	slog.Info("availability_event", "event", "window_added", "programmer_id", input.ProgrammerID, "day", day, "start", w.StartTime, "end", w.EndTime)
	return w, nil
}

// DeleteWindowInput carries input for removing one weekly window.
type DeleteWindowInput struct {
	WindowID     string
	ProgrammerID string
}

// DeleteWindowDeps holds dependencies for DeleteWindow.
type DeleteWindowDeps struct {
	WindowStore WindowStoreForAvailability
}

// ExecuteDeleteWindow removes one weekly window, scoped to its owner.
// PRE: WindowID and ProgrammerID are non-empty
// POST: Window removed if it belonged to the programmer
func ExecuteDeleteWindow(ctx context.Context, input DeleteWindowInput, deps DeleteWindowDeps) error {
	if input.WindowID == "" || input.ProgrammerID == "" {
		return errors.New("window ID and programmer ID are required")
	}
	if err := deps.WindowStore.DeleteWindow(ctx, input.WindowID, input.ProgrammerID); err != nil {
		return err
	}
	slog.Info("availability_event", "event", "window_deleted", "programmer_id", input.ProgrammerID, "window_id", input.WindowID)
	return nil
}
