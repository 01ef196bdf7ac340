package orchestrators

import (
	"context"
	"fmt"
	"testing"
)

func sequentialID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("seed-id-%03d", n)
	}
}

func TestExecuteSeedSampleRoster_PopulatesEmptyRoster(t *testing.T) {
	progs := newMockProgrammerStore()

	err := ExecuteSeedSampleRoster(context.Background(), SeedRosterDeps{
		ProgrammerStore: progs,
		GenerateID:      sequentialID(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(progs.programmers) == 0 {
		t.Fatal("expected sample profiles persisted")
	}
	for id, p := range progs.programmers {
		if err := p.Validate(); err != nil {
			t.Errorf("sample profile %s invalid: %v", p.Name, err)
		}
		if len(progs.windows[id]) == 0 {
			t.Errorf("expected windows for %s", p.Name)
		}
		for _, w := range progs.windows[id] {
			if w.ProgrammerID != id {
				t.Errorf("window %s points at %s, want %s", w.ID, w.ProgrammerID, id)
			}
		}
	}
}

func TestExecuteSeedSampleRoster_SkipsNonEmptyRoster(t *testing.T) {
	progs := newMockProgrammerStore()
	seedProgrammer(progs)

	err := ExecuteSeedSampleRoster(context.Background(), SeedRosterDeps{
		ProgrammerStore: progs,
		GenerateID:      sequentialID(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(progs.programmers) != 1 {
		t.Errorf("expected roster untouched, got %d profiles", len(progs.programmers))
	}
}
