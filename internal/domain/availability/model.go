package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Spanish weekday names, indexed by time.Weekday (0=Sunday..6=Saturday).
const (
	Domingo   = "Domingo"
	Lunes     = "Lunes"
	Martes    = "Martes"
	Miercoles = "Miércoles"
	Jueves    = "Jueves"
	Viernes   = "Viernes"
	Sabado    = "Sábado"
)

// DayNames maps time.Weekday ordinals to the fixed Spanish day names.
var DayNames = [7]string{Domingo, Lunes, Martes, Miercoles, Jueves, Viernes, Sabado}

// Domain errors
var (
	ErrInvalidDay        = errors.New("day must be a valid day of the week")
	ErrEmptyStartTime    = errors.New("start time cannot be empty")
	ErrEmptyEndTime      = errors.New("end time cannot be empty")
	ErrInvalidTime       = errors.New("time must be in HH:MM format")
	ErrStartNotBeforeEnd = errors.New("start time must be before end time")
	ErrInvalidDate       = errors.New("date must be in YYYY-MM-DD format")
)

// Window represents one weekly availability slot for a programmer.
type Window struct {
	ID           string
	ProgrammerID string
	Day          string // one of DayNames
	StartTime    string // HH:MM format
	EndTime      string // HH:MM format
}

// Decision is the outcome of a bookability check, with a human-readable
// reason when the slot is rejected.
type Decision struct {
	OK     bool
	Reason string
}

// Validate checks if the Window has valid data.
// PRE: Window struct is populated
// POST: Returns nil if valid, error otherwise
func (w *Window) Validate() error {
	if !IsValidDay(w.Day) {
		return ErrInvalidDay
	}
	if strings.TrimSpace(w.StartTime) == "" {
		return ErrEmptyStartTime
	}
	if strings.TrimSpace(w.EndTime) == "" {
		return ErrEmptyEndTime
	}
	if !isValidClock(w.StartTime) || !isValidClock(w.EndTime) {
		return ErrInvalidTime
	}
	if w.StartTime >= w.EndTime {
		return ErrStartNotBeforeEnd
	}
	return nil
}

// WeekdayName derives the Spanish weekday name for an ISO calendar date.
// The date is interpreted as plain year/month/day components so the weekday
// never shifts with the host timezone.
// PRE: dateISO is in YYYY-MM-DD format
// POST: Returns one of DayNames, or an error for a malformed date
func WeekdayName(dateISO string) (string, error) {
	var y, m, d int
	if _, err := fmt.Sscanf(dateISO, "%4d-%2d-%2d", &y, &m, &d); err != nil {
		return "", ErrInvalidDate
	}
	// Sscanf ignores trailing input; the round trip rejects partial matches
	// and unpadded components.
	if fmt.Sprintf("%04d-%02d-%02d", y, m, d) != dateISO {
		return "", ErrInvalidDate
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return "", ErrInvalidDate
	}
	date := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if date.Day() != d || date.Month() != time.Month(m) {
		return "", ErrInvalidDate
	}
	return DayNames[int(date.Weekday())], nil
}

// FindWindowForDay returns the window matching the given day name,
// compared case-insensitively.
// POST: Returns the matching window and true, or false if none matches
func FindWindowForDay(windows []Window, day string) (Window, bool) {
	for _, w := range windows {
		if strings.EqualFold(w.Day, day) {
			return w, true
		}
	}
	return Window{}, false
}

// CheckBookable decides whether a (date, time) slot falls inside one of the
// programmer's weekly windows. Both boundary instants are accepted: HH:MM
// strings are zero-padded, so lexical order equals chronological order.
// PRE: clock is in HH:MM format
// POST: Returns an accepting Decision, or a rejection with a specific reason
func CheckBookable(dateISO, clock string, windows []Window) Decision {
	if len(windows) == 0 {
		return Decision{Reason: "el programador aún no ha configurado sus horarios"}
	}

	dayName, err := WeekdayName(dateISO)
	if err != nil {
		return Decision{Reason: "fecha inválida"}
	}

	window, ok := FindWindowForDay(windows, dayName)
	if !ok {
		return Decision{Reason: fmt.Sprintf("el programador no trabaja los días %s", dayName)}
	}

	if clock < window.StartTime || clock > window.EndTime {
		return Decision{Reason: fmt.Sprintf("la hora está fuera de rango: el horario para %s es de %s a %s", dayName, window.StartTime, window.EndTime)}
	}

	return Decision{OK: true}
}

// HasDuplicateDay reports whether adding a window for the given day would
// leave more than one window on that weekday. At most one window per weekday
// per programmer is the editing invariant.
// POST: Returns true if windows already contains the day (case-insensitive)
func HasDuplicateDay(windows []Window, day string) bool {
	_, exists := FindWindowForDay(windows, day)
	return exists
}

// IsValidDay reports whether day is one of the seven fixed day names,
// compared case-insensitively.
func IsValidDay(day string) bool {
	_, ok := CanonicalDay(day)
	return ok
}

// CanonicalDay maps any casing of a day name onto its canonical spelling.
// Stored windows always use the canonical form so the per-weekday uniqueness
// constraint holds regardless of input casing.
// POST: Returns the canonical name and true, or false for an unknown day
func CanonicalDay(day string) (string, bool) {
	day = strings.TrimSpace(day)
	for _, d := range DayNames {
		if strings.EqualFold(d, day) {
			return d, true
		}
	}
	return "", false
}

// isValidClock checks the zero-padded HH:MM shape required for lexical
// time comparison.
func isValidClock(clock string) bool {
	if len(clock) != 5 || clock[2] != ':' {
		return false
	}
	hh := clock[0:2]
	mm := clock[3:5]
	for _, c := range hh + mm {
		if c < '0' || c > '9' {
			return false
		}
	}
	return hh <= "23" && mm <= "59"
}
