package billing

import (
	"time"

	"github.com/NoraWeller/VowNest/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides DB operations used by the billing service.
type Repository interface {
	FindActivePlan(planID string) (*models.Plan, error)
	UpsertCoupleSubscription(sub *models.CoupleSubscription) error
	GetCoupleSubscription(coupleID string) (*models.CoupleSubscription, error)
	UpdateStatusBySubscriptionID(subscriptionID, processorStatus, paymentStatus string) error
	CreateWebhookEventIfNotExists(event *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error)
	MarkWebhookProcessed(id uint, processingError string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindActivePlan(planID string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.
		Where("plan_id = ? AND is_active = ?", planID, true).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *gormRepository) UpsertCoupleSubscription(sub *models.CoupleSubscription) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "couple_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"plan_id",
			"payment_status",
			"processor_status",
			"subscription_id",
			"customer_id",
			"updated_at",
		}),
	}).Create(sub).Error; err != nil {
		return err
	}

	// Ensure ID is populated after upsert.
	return r.db.Where("couple_id = ?", sub.CoupleID).First(sub).Error
}

func (r *gormRepository) GetCoupleSubscription(coupleID string) (*models.CoupleSubscription, error) {
	var sub models.CoupleSubscription
	err := r.db.Where("couple_id = ?", coupleID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) UpdateStatusBySubscriptionID(subscriptionID, processorStatus, paymentStatus string) error {
	updates := map[string]interface{}{
		"processor_status": processorStatus,
	}
	if paymentStatus != "" {
		updates["payment_status"] = paymentStatus
	}
	return r.db.Model(&models.CoupleSubscription{}).
		Where("subscription_id = ?", subscriptionID).
		Updates(updates).Error
}

func (r *gormRepository) CreateWebhookEventIfNotExists(event *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_event_id"},
		},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.BillingWebhookEvent
	if err := r.db.Where("provider = ? AND provider_event_id = ?", event.Provider, event.ProviderEventID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *gormRepository) MarkWebhookProcessed(id uint, processingError string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"processed_at":     &now,
		"processing_error": processingError,
	}
	return r.db.Model(&models.BillingWebhookEvent{}).Where("id = ?", id).Updates(updates).Error
}
