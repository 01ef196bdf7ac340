package orchestrators

import (
	"context"
	"log/slog"

	"advisory/internal/domain/availability"
	"advisory/internal/domain/programmer"
)

// RosterSeedStore defines the store interface needed by the roster seeder.
type RosterSeedStore interface {
	List(ctx context.Context) ([]programmer.Programmer, error)
	Save(ctx context.Context, p programmer.Programmer) error
	SaveWindow(ctx context.Context, w availability.Window) error
}

// SeedRosterDeps holds dependencies for SeedSampleRoster.
type SeedRosterDeps struct {
	ProgrammerStore RosterSeedStore
	GenerateID      func() string
}

// ExecuteSeedSampleRoster populates an empty roster with sample profiles and
// availability windows for development. A non-empty roster is left untouched.
// PRE: Store is connected
// POST: Roster has browsable profiles, or was already non-empty
func ExecuteSeedSampleRoster(ctx context.Context, deps SeedRosterDeps) error {
	existing, err := deps.ProgrammerStore.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	samples := []struct {
		profile programmer.Programmer
		windows []availability.Window
	}{
		{
			profile: programmer.Programmer{
				Name:        "Ana García",
				Specialty:   programmer.SpecialtyFrontend,
				Description: "Interfaces accesibles con **Angular** y **React**. Pregúntame por arquitectura de componentes.",
				Contact:     programmer.Contact{Email: "ana.garcia@advisoria.local", GitHub: "https://github.com/anagarcia"},
			},
			windows: []availability.Window{
				{Day: availability.Lunes, StartTime: "09:00", EndTime: "13:00"},
				{Day: availability.Miercoles, StartTime: "14:00", EndTime: "18:00"},
			},
		},
		{
			profile: programmer.Programmer{
				Name:        "Carlos Ruiz",
				Specialty:   programmer.SpecialtyBackend,
				Description: "APIs en **Go** y bases de datos relacionales.",
				Contact:     programmer.Contact{Email: "carlos.ruiz@advisoria.local", LinkedIn: "https://linkedin.com/in/carlosruiz"},
			},
			windows: []availability.Window{
				{Day: availability.Martes, StartTime: "10:00", EndTime: "16:00"},
				{Day: availability.Jueves, StartTime: "10:00", EndTime: "16:00"},
			},
		},
		{
			profile: programmer.Programmer{
				Name:        "Lucía Torres",
				Specialty:   programmer.SpecialtyFullStack,
				Description: "De la idea al despliegue: **Node**, **Go** y un poco de DevOps.",
				Contact:     programmer.Contact{Email: "lucia.torres@advisoria.local"},
			},
			windows: []availability.Window{
				{Day: availability.Viernes, StartTime: "09:00", EndTime: "12:00"},
			},
		},
	}

	for _, s := range samples {
		p := s.profile
		p.ID = deps.GenerateID()
		if err := deps.ProgrammerStore.Save(ctx, p); err != nil {
			return err
		}
		for _, w := range s.windows {
			w.ID = deps.GenerateID()
			w.ProgrammerID = p.ID
			if err := deps.ProgrammerStore.SaveWindow(ctx, w); err != nil {
				return err
			}
		}
	}

	slog.Info("roster_event", "event", "sample_roster_seeded", "count", len(samples))
	return nil
}
