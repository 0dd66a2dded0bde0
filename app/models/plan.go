package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	BillingIntervalMonth   = "month"
	BillingIntervalYear    = "year"
	BillingIntervalUnknown = "unknown"
)

const (
	PaymentStatusActive     = "active"
	PaymentStatusTrialing   = "trialing"
	PaymentStatusPastDue    = "past_due"
	PaymentStatusCanceled   = "canceled"
	PaymentStatusIncomplete = "incomplete"
)

// Plan maps an internal subscription plan to the Stripe price used when
// creating subscriptions. Rows are read-only once a subscription references
// them; deactivation happens via IsActive, never deletion.
type Plan struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PlanID          string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"plan_id" validate:"required,min=2,max=100"`
	Name            string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	StripePriceID   string    `gorm:"type:varchar(191);not null" json:"stripe_price_id" validate:"required,startswith=price_"`
	BillingInterval string    `gorm:"type:varchar(16);not null;default:'month'" json:"billing_interval" validate:"oneof=month year unknown"`
	AmountCents     int64     `gorm:"not null;default:0" json:"amount_cents" validate:"min=0"`
	Currency        string    `gorm:"type:varchar(3);not null;default:'usd'" json:"currency" validate:"required,len=3"`
	IsActive        bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Plan) Validate() error {
	v := validator.New()

	return v.Struct(p)
}
