package models

import "time"

// CoupleSubscription is the local mirror of a couple's Stripe subscription.
// Keyed by couple ID: at most one row per couple, upserted in place.
//
// PaymentStatus is what the confirmation flow decided ("active" on a
// confirmed payment), ProcessorStatus is the status Stripe last reported for
// the subscription. The two can disagree; webhook intake keeps
// ProcessorStatus current so the gap is at least visible.
type CoupleSubscription struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CoupleID        string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"couple_id"`
	PlanID          string    `gorm:"type:varchar(100);not null;index" json:"plan_id"`
	PaymentStatus   string    `gorm:"type:varchar(32);not null;default:'active'" json:"payment_status"`
	ProcessorStatus string    `gorm:"type:varchar(32);not null;default:''" json:"processor_status"`
	SubscriptionID  string    `gorm:"type:varchar(191);not null;index" json:"subscription_id"`
	CustomerID      string    `gorm:"type:varchar(191);not null;index" json:"customer_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
