package repository

import (
	"errors"

	"github.com/NoraWeller/VowNest/app/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// conversationRepository implements the ConversationRepository interface
type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new conversation repository instance
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// GetOrCreate returns the conversation between a couple and a vendor,
// creating it on first contact.
func (r *conversationRepository) GetOrCreate(coupleID, vendorID uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.Where("couple_id = ? AND vendor_id = ?", coupleID, vendorID).First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = models.Conversation{
		UUID:     uuid.New().String(),
		CoupleID: coupleID,
		VendorID: vendorID,
	}
	if err := r.db.Create(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

// GetByUUID retrieves a conversation by its public UUID
func (r *conversationRepository) GetByUUID(uuid string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.Where("uuid = ?", uuid).First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListByCoupleID retrieves all conversations for a couple, most recent first
func (r *conversationRepository) ListByCoupleID(coupleID uint) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := r.db.Where("couple_id = ?", coupleID).Order("updated_at DESC").Find(&convs).Error
	return convs, err
}

// ListByVendorID retrieves all conversations for a vendor, most recent first
func (r *conversationRepository) ListByVendorID(vendorID uint) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := r.db.Where("vendor_id = ?", vendorID).Order("updated_at DESC").Find(&convs).Error
	return convs, err
}

// AppendMessage stores a message and touches the conversation timestamp
func (r *conversationRepository) AppendMessage(message *models.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return err
	}
	return r.db.Model(&models.Conversation{}).
		Where("id = ?", message.ConversationID).
		Update("updated_at", message.CreatedAt).Error
}

// ListMessages retrieves messages for a conversation, oldest first
func (r *conversationRepository) ListMessages(conversationID uint, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var messages []models.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").Limit(limit).Find(&messages).Error
	return messages, err
}
