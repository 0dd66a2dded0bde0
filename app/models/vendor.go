package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vendor service categories offered on the marketplace.
const (
	CategoryVenue       = "venue"
	CategoryPhotography = "photography"
	CategoryCatering    = "catering"
	CategoryFlorist     = "florist"
	CategoryMusic       = "music"
	CategoryPlanning    = "planning"
)

// Vendor is a seller account offering one service category.
// ViewCount is maintained by the counter package (Redis flush) and feeds
// search ordering and matching tiebreaks.
type Vendor struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UUID        string         `gorm:"type:varchar(36);not null;uniqueIndex" json:"uuid"`
	Name        string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Email       string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	Password    string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	Category    string         `gorm:"type:varchar(50);not null;index" json:"category" validate:"oneof=venue photography catering florist music planning"`
	Location    string         `gorm:"type:varchar(150);index" json:"location" validate:"max=150"`
	Description string         `gorm:"type:text" json:"description" validate:"max=2000"`
	PriceCents  int64          `gorm:"default:0" json:"price_cents"`
	ViewCount   int64          `gorm:"default:0;index" json:"view_count"`
	Status      string         `gorm:"type:varchar(50);default:'active'" json:"status" validate:"oneof=active inactive disabled"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (v *Vendor) Validate() error {
	val := validator.New()

	return val.Struct(v)
}

func CreateVendor(name, email, password, category, location string) (*Vendor, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	v := &Vendor{
		UUID:     uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: pw,
		Category: category,
		Location: location,
		Status:   STATUS_ACTIVE,
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}

	return v, nil
}

// VendorBlackoutDate marks a calendar day on which the vendor cannot take
// bookings. Matching excludes vendors with a blackout on the event date.
type VendorBlackoutDate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VendorID  uint      `gorm:"not null;index:ux_vendor_blackout,unique,priority:1" json:"vendor_id"`
	Date      time.Time `gorm:"type:date;not null;index:ux_vendor_blackout,unique,priority:2" json:"date"`
	Reason    string    `gorm:"type:varchar(200)" json:"reason"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
