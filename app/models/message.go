package models

import "time"

const (
	SenderCouple = "couple"
	SenderVendor = "vendor"
)

// Conversation links one couple with one vendor. A pair has at most one
// conversation; messages append to it.
type Conversation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UUID      string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"uuid"`
	CoupleID  uint      `gorm:"not null;index:ux_conversations_pair,unique,priority:1" json:"couple_id"`
	VendorID  uint      `gorm:"not null;index:ux_conversations_pair,unique,priority:2" json:"vendor_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index" json:"conversation_id"`
	SenderRole     string    `gorm:"type:varchar(10);not null" json:"sender_role"`
	Body           string    `gorm:"type:text;not null" json:"body"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
