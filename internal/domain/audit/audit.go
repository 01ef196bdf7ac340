package audit

import (
	"time"

	"github.com/google/uuid"
)

// Category represents the type of audit event.
type Category string

const (
	CategoryAccount     Category = "account"
	CategoryRoster      Category = "roster"
	CategoryAppointment Category = "appointment"
	CategoryPortfolio   Category = "portfolio"
	CategorySecurity    Category = "security"
)

// Action represents the action that occurred.
type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionLogin   Action = "login"
	ActionLogout  Action = "logout"
	ActionRespond Action = "respond"
)

// Severity represents the severity level of an audit event.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Event represents a single audit log entry.
type Event struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Category     Category  `json:"category"`
	Action       Action    `json:"action"`
	Severity     Severity  `json:"severity"`
	ActorEmail   string    `json:"actor_email"`
	ActorRole    string    `json:"actor_role"`
	ResourceID   string    `json:"resource_id"`
	ResourceType string    `json:"resource_type"`
	Description  string    `json:"description"`
}

// NewEvent creates a new audit event with the current timestamp.
// PRE: actorEmail and action are non-empty
// POST: Returns an Event with the current timestamp and provided fields
func NewEvent(actorEmail, actorRole string, category Category, action Action) Event {
	return Event{
		ID:         uuid.New().String(),
		Timestamp:  time.Now(),
		Category:   category,
		Action:     action,
		Severity:   SeverityInfo,
		ActorEmail: actorEmail,
		ActorRole:  actorRole,
	}
}

// WithSeverity sets the severity level.
// POST: Event severity is updated
func (e Event) WithSeverity(s Severity) Event {
	e.Severity = s
	return e
}

// WithResource sets resource information.
// POST: Event resource fields are populated
func (e Event) WithResource(resourceType, resourceID string) Event {
	e.ResourceType = resourceType
	e.ResourceID = resourceID
	return e
}

// WithDescription sets the event description.
// POST: Event description is set
func (e Event) WithDescription(desc string) Event {
	e.Description = desc
	return e
}
