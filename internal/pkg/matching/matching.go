package matching

import (
	"sort"
	"strings"
	"time"

	"github.com/NoraWeller/VowNest/app/models"
	"gorm.io/gorm"
)

const (
	categoryScore = 10
	locationScore = 5
)

// VendorSource provides the vendor data matching needs.
type VendorSource interface {
	ListActiveByCategories(categories []string) ([]models.Vendor, error)
	HasBlackout(vendorID uint, date time.Time) (bool, error)
}

// Match pairs a vendor with its score for one booking.
type Match struct {
	Vendor models.Vendor `json:"vendor"`
	Score  int           `json:"score"`
}

// Service ranks vendors for a completed booking wizard run.
type Service struct {
	source VendorSource
}

func NewService(source VendorSource) *Service {
	return &Service{source: source}
}

// NewServiceFromDB creates a matching service backed by GORM.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(&gormVendorSource{db: db})
}

// MatchVendors returns vendors offering one of the booking's selected
// services, available on the event date, best match first.
func (s *Service) MatchVendors(booking *models.Booking) ([]Match, error) {
	wanted := booking.Services()
	if len(wanted) == 0 {
		return nil, nil
	}

	vendors, err := s.source.ListActiveByCategories(wanted)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(vendors))
	for _, vendor := range vendors {
		blackout, err := s.source.HasBlackout(vendor.ID, booking.EventDate)
		if err != nil {
			return nil, err
		}
		if blackout {
			continue
		}
		matches = append(matches, Match{Vendor: vendor, Score: Score(vendor, booking)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].Vendor.ViewCount != matches[j].Vendor.ViewCount {
			return matches[i].Vendor.ViewCount > matches[j].Vendor.ViewCount
		}
		return matches[i].Vendor.Name < matches[j].Vendor.Name
	})

	return matches, nil
}

// Score rates a vendor against a booking. Category overlap is a
// precondition (the source already filtered on it); location adds a bonus.
// View count never enters the score: popularity only breaks ties between
// equally scored vendors, in the sort.
func Score(vendor models.Vendor, booking *models.Booking) int {
	score := categoryScore
	if booking.Location != "" && strings.EqualFold(vendor.Location, booking.Location) {
		score += locationScore
	}
	return score
}

type gormVendorSource struct {
	db *gorm.DB
}

func (s *gormVendorSource) ListActiveByCategories(categories []string) ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := s.db.
		Where("category IN ? AND status = ?", categories, models.STATUS_ACTIVE).
		Find(&vendors).Error
	return vendors, err
}

func (s *gormVendorSource) HasBlackout(vendorID uint, date time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&models.VendorBlackoutDate{}).
		Where("vendor_id = ? AND date = ?", vendorID, date.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}
