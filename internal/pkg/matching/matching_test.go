package matching

import (
	"testing"
	"time"

	"github.com/NoraWeller/VowNest/app/models"
)

type fakeVendorSource struct {
	vendors   []models.Vendor
	blackouts map[uint]bool
}

func (f *fakeVendorSource) ListActiveByCategories(categories []string) ([]models.Vendor, error) {
	wanted := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		wanted[c] = struct{}{}
	}
	var out []models.Vendor
	for _, v := range f.vendors {
		if _, ok := wanted[v.Category]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVendorSource) HasBlackout(vendorID uint, date time.Time) (bool, error) {
	return f.blackouts[vendorID], nil
}

func testBooking(t *testing.T, location string, services []string) *models.Booking {
	t.Helper()
	b := &models.Booking{
		EventType: models.EventTypeWedding,
		EventDate: time.Date(2027, 6, 12, 0, 0, 0, 0, time.UTC),
		Location:  location,
	}
	if err := b.SetServices(services); err != nil {
		t.Fatalf("SetServices failed: %v", err)
	}
	return b
}

func TestMatchVendors_FiltersCategoryAndBlackouts(t *testing.T) {
	source := &fakeVendorSource{
		vendors: []models.Vendor{
			{ID: 1, Name: "Petal & Stem", Category: models.CategoryFlorist, Location: "Portland"},
			{ID: 2, Name: "Brass Nights", Category: models.CategoryMusic, Location: "Portland"},
			{ID: 3, Name: "Booked Florist", Category: models.CategoryFlorist, Location: "Portland"},
		},
		blackouts: map[uint]bool{3: true},
	}
	svc := NewService(source)

	matches, err := svc.MatchVendors(testBooking(t, "Portland", []string{models.CategoryFlorist}))
	if err != nil {
		t.Fatalf("MatchVendors failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Vendor.ID != 1 {
		t.Fatalf("expected vendor 1, got %d", matches[0].Vendor.ID)
	}
}

func TestMatchVendors_LocationOutranksPopularity(t *testing.T) {
	source := &fakeVendorSource{
		vendors: []models.Vendor{
			{ID: 1, Name: "Far Famous", Category: models.CategoryVenue, Location: "Seattle", ViewCount: 50_000},
			{ID: 2, Name: "Local Gem", Category: models.CategoryVenue, Location: "Portland", ViewCount: 0},
		},
		blackouts: map[uint]bool{},
	}
	svc := NewService(source)

	matches, err := svc.MatchVendors(testBooking(t, "Portland", []string{models.CategoryVenue}))
	if err != nil {
		t.Fatalf("MatchVendors failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Vendor.ID != 2 {
		t.Fatalf("location match must outrank popularity, got vendor %d first", matches[0].Vendor.ID)
	}
}

func TestMatchVendors_PopularityBreaksTies(t *testing.T) {
	source := &fakeVendorSource{
		vendors: []models.Vendor{
			{ID: 1, Name: "Quiet Strings", Category: models.CategoryMusic, Location: "Portland", ViewCount: 100},
			{ID: 2, Name: "Loud Strings", Category: models.CategoryMusic, Location: "Portland", ViewCount: 300},
		},
		blackouts: map[uint]bool{},
	}
	svc := NewService(source)

	matches, err := svc.MatchVendors(testBooking(t, "Portland", []string{models.CategoryMusic}))
	if err != nil {
		t.Fatalf("MatchVendors failed: %v", err)
	}
	if matches[0].Vendor.ID != 2 {
		t.Fatalf("higher view count must win ties, got vendor %d first", matches[0].Vendor.ID)
	}
}

func TestMatchVendors_NoServicesSelected(t *testing.T) {
	svc := NewService(&fakeVendorSource{})
	matches, err := svc.MatchVendors(testBooking(t, "Portland", nil))
	if err != nil {
		t.Fatalf("MatchVendors failed: %v", err)
	}
	if matches != nil {
		t.Fatalf("expected no matches without selected services, got %v", matches)
	}
}

func TestScoreIgnoresViewCount(t *testing.T) {
	booking := testBooking(t, "Portland", []string{models.CategoryVenue})

	unknown := models.Vendor{Category: models.CategoryVenue, Location: "Portland", ViewCount: 0}
	famous := models.Vendor{Category: models.CategoryVenue, Location: "Portland", ViewCount: 50_000}
	if Score(unknown, booking) != Score(famous, booking) {
		t.Fatalf("view count must not affect the score: %d vs %d",
			Score(unknown, booking), Score(famous, booking))
	}

	remote := models.Vendor{Category: models.CategoryVenue, Location: "Seattle", ViewCount: 50_000}
	if Score(remote, booking) >= Score(unknown, booking) {
		t.Fatalf("a location match must outscore any view count: remote %d, local %d",
			Score(remote, booking), Score(unknown, booking))
	}
}
