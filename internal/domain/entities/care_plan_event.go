package entities

import (
	"time"

	"github.com/google/uuid"
)

// CarePlanEventType represents the type of care plan event
type CarePlanEventType string

const (
	// CarePlanEventSeeded is published after a plan's records were (re)written
	CarePlanEventSeeded CarePlanEventType = "plan_seeded"
)

// CarePlanEvent announces that stored records of a care plan changed, so
// derived views cached elsewhere are stale
type CarePlanEvent struct {
	ID         string            `json:"id"`
	CarePlanID string            `json:"carePlanId"`
	StepIDs    []string          `json:"stepIds"`
	EventType  CarePlanEventType `json:"eventType"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewCarePlanEvent creates a new care plan event
func NewCarePlanEvent(carePlanID string, stepIDs []string, eventType CarePlanEventType) *CarePlanEvent {
	return &CarePlanEvent{
		ID:         uuid.NewString(),
		CarePlanID: carePlanID,
		StepIDs:    stepIDs,
		EventType:  eventType,
		Timestamp:  time.Now().UTC(),
	}
}
