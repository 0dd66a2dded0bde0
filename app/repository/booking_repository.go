package repository

import (
	"github.com/NoraWeller/VowNest/app/models"
	"gorm.io/gorm"
)

// bookingRepository implements the BookingRepository interface
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository instance
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create creates a new booking in the database
func (r *bookingRepository) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

// GetByUUID retrieves a booking by its public UUID
func (r *bookingRepository) GetByUUID(uuid string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Where("uuid = ?", uuid).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetByCoupleID retrieves all bookings for a couple, newest first
func (r *bookingRepository) GetByCoupleID(coupleID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("couple_id = ?", coupleID).Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}

// Update updates an existing booking in the database
func (r *bookingRepository) Update(booking *models.Booking) error {
	return r.db.Save(booking).Error
}
