package service

import (
	"time"

	"backoffice/internal/model"

	"github.com/google/uuid"
)

const (
	EventProjectStatusChanged = "project.status_changed"
	EventProjectCompleted     = "project.completed"
	EventProjectAssigned      = "project.assigned"
)

// Event is a fact published to connected dashboards after a commit.
type Event struct {
	Type        string      `json:"type"`
	ProjectCode string      `json:"project_code"`
	Payload     interface{} `json:"payload,omitempty"`
	OccurredAt  time.Time   `json:"occurred_at"`
}

// Notifier receives events; implementations must not block the caller.
type Notifier interface {
	Publish(event Event)
}

type nopNotifier struct{}

func (nopNotifier) Publish(Event) {}

func orNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

// StatusChange reports the outcome of a project status derivation.
type StatusChange struct {
	ProjectCode string `json:"project_code"`
	From        string `json:"from"`
	To          string `json:"to"`
	Changed     bool   `json:"changed"`
}

// Completed reports whether this derivation moved the project to completed.
func (c StatusChange) Completed() bool {
	return c.Changed && c.To == model.ProjectStatusCompleted
}

func publishStatusChange(n Notifier, change StatusChange) {
	if !change.Changed {
		return
	}
	now := time.Now()
	n.Publish(Event{Type: EventProjectStatusChanged, ProjectCode: change.ProjectCode, Payload: change, OccurredAt: now})
	if change.Completed() {
		n.Publish(Event{Type: EventProjectCompleted, ProjectCode: change.ProjectCode, Payload: change, OccurredAt: now})
	}
}

type assignment struct {
	ManagerID uuid.UUID `json:"manager_id"`
}

func publishAssignment(n Notifier, projectCode string, managerID *uuid.UUID) {
	if managerID == nil {
		return
	}
	n.Publish(Event{
		Type:        EventProjectAssigned,
		ProjectCode: projectCode,
		Payload:     assignment{ManagerID: *managerID},
		OccurredAt:  time.Now(),
	})
}
