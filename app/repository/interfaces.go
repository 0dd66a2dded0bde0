package repository

import (
	"github.com/NoraWeller/VowNest/app/models"
	"gorm.io/gorm"
)

// CoupleRepository defines the interface for couple-related database operations
type CoupleRepository interface {
	Create(couple *models.Couple) error
	GetByID(id uint) (*models.Couple, error)
	GetByUUID(uuid string) (*models.Couple, error)
	GetByEmail(email string) (*models.Couple, error)
	Update(couple *models.Couple) error
	Delete(id uint) error
}

// VendorRepository defines the interface for vendor-related database operations
type VendorRepository interface {
	Create(vendor *models.Vendor) error
	GetByID(id uint) (*models.Vendor, error)
	GetByUUID(uuid string) (*models.Vendor, error)
	GetByEmail(email string) (*models.Vendor, error)
	Update(vendor *models.Vendor) error
	Delete(id uint) error
	Search(query, category, location string, limit int) ([]models.Vendor, error)
	AddBlackoutDate(blackout *models.VendorBlackoutDate) error
}

// BookingRepository defines the interface for booking-related database operations
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByUUID(uuid string) (*models.Booking, error)
	GetByCoupleID(coupleID uint) ([]models.Booking, error)
	Update(booking *models.Booking) error
}

// ConversationRepository defines the interface for messaging persistence
type ConversationRepository interface {
	GetOrCreate(coupleID, vendorID uint) (*models.Conversation, error)
	GetByUUID(uuid string) (*models.Conversation, error)
	ListByCoupleID(coupleID uint) ([]models.Conversation, error)
	ListByVendorID(vendorID uint) ([]models.Conversation, error)
	AppendMessage(message *models.Message) error
	ListMessages(conversationID uint, limit int) ([]models.Message, error)
}

// Repositories holds all repository instances
type Repositories struct {
	Couple       CoupleRepository
	Vendor       VendorRepository
	Booking      BookingRepository
	Conversation ConversationRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Couple:       NewCoupleRepository(db),
		Vendor:       NewVendorRepository(db),
		Booking:      NewBookingRepository(db),
		Conversation: NewConversationRepository(db),
	}
}
