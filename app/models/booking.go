package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Booking wizard steps, in the order the client walks through them.
const (
	StepEventType = "event_type"
	StepSchedule  = "schedule"
	StepServices  = "services"
	StepMatching  = "matching"
)

const (
	EventTypeWedding    = "wedding"
	EventTypeEngagement = "engagement"
	EventTypeReception  = "reception"
	EventTypeShower     = "shower"
)

const (
	BookingStatusDraft     = "draft"
	BookingStatusMatched   = "matched"
	BookingStatusConfirmed = "confirmed"
)

var stepOrder = map[string]int{
	StepEventType: 0,
	StepSchedule:  1,
	StepServices:  2,
	StepMatching:  3,
}

// StepRank returns the position of a wizard step, or -1 for unknown steps.
func StepRank(step string) int {
	rank, ok := stepOrder[step]
	if !ok {
		return -1
	}
	return rank
}

// StepAllowed reports whether target may be submitted when the draft has
// completed all steps before current. A step may be resubmitted (going back
// is fine), but steps cannot be skipped forward.
func StepAllowed(completed, target string) bool {
	t := StepRank(target)
	if t < 0 {
		return false
	}
	return t <= StepRank(completed)+1
}

func IsValidEventType(eventType string) bool {
	switch eventType {
	case EventTypeWedding, EventTypeEngagement, EventTypeReception, EventTypeShower:
		return true
	default:
		return false
	}
}

// BookingDraft is the in-progress wizard state, held in Redis until the
// services step completes. CompletedStep is the furthest step submitted.
type BookingDraft struct {
	DraftID       string     `json:"draft_id"`
	CoupleUUID    string     `json:"couple_uuid"`
	CompletedStep string     `json:"completed_step"`
	EventType     string     `json:"event_type,omitempty"`
	EventDate     *time.Time `json:"event_date,omitempty"`
	EventTime     string     `json:"event_time,omitempty"`
	GuestCount    int        `json:"guest_count,omitempty"`
	Location      string     `json:"location,omitempty"`
	Services      []string   `json:"services,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Booking is the persisted outcome of a completed wizard run.
type Booking struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UUID         string         `gorm:"type:varchar(36);not null;uniqueIndex" json:"uuid"`
	CoupleID     uint           `gorm:"not null;index" json:"couple_id"`
	EventType    string         `gorm:"type:varchar(50);not null" json:"event_type"`
	EventDate    time.Time      `gorm:"type:date;not null" json:"event_date"`
	EventTime    string         `gorm:"type:varchar(10)" json:"event_time"`
	GuestCount   int            `gorm:"default:0" json:"guest_count"`
	Location     string         `gorm:"type:varchar(150)" json:"location"`
	ServicesJSON string         `gorm:"type:text;not null" json:"-"`
	Status       string         `gorm:"type:varchar(32);not null;default:'draft'" json:"status"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Services decodes the selected service categories.
func (b *Booking) Services() []string {
	var services []string
	if err := json.Unmarshal([]byte(b.ServicesJSON), &services); err != nil {
		return nil
	}
	return services
}

// SetServices encodes the selected service categories.
func (b *Booking) SetServices(services []string) error {
	raw, err := json.Marshal(services)
	if err != nil {
		return err
	}
	b.ServicesJSON = string(raw)
	return nil
}
