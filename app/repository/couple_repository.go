package repository

import (
	"github.com/NoraWeller/VowNest/app/models"
	"gorm.io/gorm"
)

// coupleRepository implements the CoupleRepository interface
type coupleRepository struct {
	db *gorm.DB
}

// NewCoupleRepository creates a new couple repository instance
func NewCoupleRepository(db *gorm.DB) CoupleRepository {
	return &coupleRepository{db: db}
}

// Create creates a new couple in the database
func (r *coupleRepository) Create(couple *models.Couple) error {
	return r.db.Create(couple).Error
}

// GetByID retrieves a couple by their ID
func (r *coupleRepository) GetByID(id uint) (*models.Couple, error) {
	var couple models.Couple
	err := r.db.First(&couple, id).Error
	if err != nil {
		return nil, err
	}
	return &couple, nil
}

// GetByUUID retrieves a couple by their public UUID
func (r *coupleRepository) GetByUUID(uuid string) (*models.Couple, error) {
	var couple models.Couple
	err := r.db.Where("uuid = ?", uuid).First(&couple).Error
	if err != nil {
		return nil, err
	}
	return &couple, nil
}

// GetByEmail retrieves a couple by their email address
func (r *coupleRepository) GetByEmail(email string) (*models.Couple, error) {
	var couple models.Couple
	err := r.db.Where("email = ?", email).First(&couple).Error
	if err != nil {
		return nil, err
	}
	return &couple, nil
}

// Update updates an existing couple in the database
func (r *coupleRepository) Update(couple *models.Couple) error {
	return r.db.Save(couple).Error
}

// Delete soft deletes a couple by their ID
func (r *coupleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Couple{}, id).Error
}
