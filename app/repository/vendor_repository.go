package repository

import (
	"strings"

	"github.com/NoraWeller/VowNest/app/models"
	"gorm.io/gorm"
)

// vendorRepository implements the VendorRepository interface
type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository instance
func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

// Create creates a new vendor in the database
func (r *vendorRepository) Create(vendor *models.Vendor) error {
	return r.db.Create(vendor).Error
}

// GetByID retrieves a vendor by their ID
func (r *vendorRepository) GetByID(id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.First(&vendor, id).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// GetByUUID retrieves a vendor by their public UUID
func (r *vendorRepository) GetByUUID(uuid string) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.Where("uuid = ?", uuid).First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// GetByEmail retrieves a vendor by their email address
func (r *vendorRepository) GetByEmail(email string) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.Where("email = ?", email).First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// Update updates an existing vendor in the database
func (r *vendorRepository) Update(vendor *models.Vendor) error {
	return r.db.Save(vendor).Error
}

// Delete soft deletes a vendor by their ID
func (r *vendorRepository) Delete(id uint) error {
	return r.db.Delete(&models.Vendor{}, id).Error
}

// Search finds active vendors matching a free-text query and optional
// category/location filters, most viewed first.
func (r *vendorRepository) Search(query, category, location string, limit int) ([]models.Vendor, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	tx := r.db.Where("status = ?", models.STATUS_ACTIVE)
	if clause, args, ok := freeTextClause(query); ok {
		tx = tx.Where(clause, args...)
	}
	if category != "" {
		tx = tx.Where("category = ?", category)
	}
	if location != "" {
		tx = tx.Where("location = ?", location)
	}

	var vendors []models.Vendor
	err := tx.Order("view_count DESC, name ASC").Limit(limit).Find(&vendors).Error
	return vendors, err
}

// freeTextClause builds the LIKE filter for a free-text vendor search over
// name, category, location and description.
func freeTextClause(query string) (string, []interface{}, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", nil, false
	}
	like := "%" + q + "%"
	return "name LIKE ? OR category LIKE ? OR location LIKE ? OR description LIKE ?",
		[]interface{}{like, like, like, like}, true
}

// AddBlackoutDate records a day the vendor cannot take bookings
func (r *vendorRepository) AddBlackoutDate(blackout *models.VendorBlackoutDate) error {
	return r.db.Create(blackout).Error
}
