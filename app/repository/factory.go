package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetCoupleRepository returns the couple repository instance
func (f *Factory) GetCoupleRepository() CoupleRepository {
	return f.GetRepositories().Couple
}

// GetVendorRepository returns the vendor repository instance
func (f *Factory) GetVendorRepository() VendorRepository {
	return f.GetRepositories().Vendor
}

// GetBookingRepository returns the booking repository instance
func (f *Factory) GetBookingRepository() BookingRepository {
	return f.GetRepositories().Booking
}

// GetConversationRepository returns the conversation repository instance
func (f *Factory) GetConversationRepository() ConversationRepository {
	return f.GetRepositories().Conversation
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}
