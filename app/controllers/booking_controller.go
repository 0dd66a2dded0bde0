package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/NoraWeller/VowNest/app/models"
	"github.com/NoraWeller/VowNest/app/repository"
	"github.com/NoraWeller/VowNest/internal/pkg/cache"
	"github.com/NoraWeller/VowNest/internal/pkg/database"
	"github.com/NoraWeller/VowNest/internal/pkg/matching"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	bookingDraftKeyPrefix = "booking:draft:"
	bookingDraftTTL       = 24 * time.Hour
)

var matchingService *matching.Service

// InitializeBookingController injects the matching service. Called once at
// router install; handlers only read the package variable afterwards.
func InitializeBookingController(svc *matching.Service) {
	matchingService = svc
}

// InitializeBookingControllerFromDB wires matching over the global DB handle.
func InitializeBookingControllerFromDB() {
	InitializeBookingController(matching.NewServiceFromDB(database.GetDB()))
}

func getMatchingService() *matching.Service {
	return matchingService
}

// HandleCreateBookingDraft starts a wizard run for a couple. The draft lives
// in Redis until the services step completes.
func HandleCreateBookingDraft(c *fiber.Ctx) error {
	var req struct {
		CoupleID string `json:"coupleId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.CoupleID == "" {
		return jsonError(c, fiber.StatusBadRequest, "coupleId is required")
	}

	draft := &models.BookingDraft{
		DraftID:    uuid.New().String(),
		CoupleUUID: req.CoupleID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := saveBookingDraft(draft); err != nil {
		log.Printf("booking draft: save failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not store booking draft")
	}

	return c.Status(fiber.StatusCreated).JSON(draft)
}

// HandleUpdateBookingStep applies one wizard step to a draft. Steps must be
// submitted in order; going back and resubmitting an earlier step is fine.
func HandleUpdateBookingStep(c *fiber.Ctx) error {
	draft, err := loadBookingDraft(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "booking draft not found")
	}

	step := c.Params("step")
	if !models.StepAllowed(draft.CompletedStep, step) {
		return jsonError(c, fiber.StatusBadRequest, "step not allowed yet")
	}

	switch step {
	case models.StepEventType:
		var req struct {
			EventType string `json:"eventType"`
		}
		if err := c.BodyParser(&req); err != nil {
			return jsonError(c, fiber.StatusBadRequest, err.Error())
		}
		if !models.IsValidEventType(req.EventType) {
			return jsonError(c, fiber.StatusBadRequest, "unknown event type")
		}
		draft.EventType = req.EventType

	case models.StepSchedule:
		var req struct {
			EventDate  string `json:"eventDate"`
			EventTime  string `json:"eventTime"`
			GuestCount int    `json:"guestCount"`
			Location   string `json:"location"`
		}
		if err := c.BodyParser(&req); err != nil {
			return jsonError(c, fiber.StatusBadRequest, err.Error())
		}
		date, err := time.Parse("2006-01-02", req.EventDate)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "eventDate must be YYYY-MM-DD")
		}
		draft.EventDate = &date
		draft.EventTime = req.EventTime
		draft.GuestCount = req.GuestCount
		draft.Location = req.Location

	case models.StepServices:
		var req struct {
			Services []string `json:"services"`
		}
		if err := c.BodyParser(&req); err != nil {
			return jsonError(c, fiber.StatusBadRequest, err.Error())
		}
		if len(req.Services) == 0 {
			return jsonError(c, fiber.StatusBadRequest, "at least one service is required")
		}
		draft.Services = req.Services

	default:
		return jsonError(c, fiber.StatusBadRequest, "unknown step")
	}

	if models.StepRank(step) > models.StepRank(draft.CompletedStep) {
		draft.CompletedStep = step
	}
	if err := saveBookingDraft(draft); err != nil {
		log.Printf("booking draft: save failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not store booking draft")
	}

	return c.Status(fiber.StatusOK).JSON(draft)
}

// HandleCompleteBooking persists a finished draft and reveals the matched
// vendors.
func HandleCompleteBooking(c *fiber.Ctx) error {
	draft, err := loadBookingDraft(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "booking draft not found")
	}
	if models.StepRank(draft.CompletedStep) < models.StepRank(models.StepServices) {
		return jsonError(c, fiber.StatusBadRequest, "wizard is not finished")
	}
	if draft.EventDate == nil {
		return jsonError(c, fiber.StatusBadRequest, "event date missing")
	}

	couple, err := repository.GetGlobalFactory().GetCoupleRepository().GetByUUID(draft.CoupleUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "couple not found")
		}
		log.Printf("booking complete: couple lookup failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not load couple")
	}

	booking := &models.Booking{
		UUID:       uuid.New().String(),
		CoupleID:   couple.ID,
		EventType:  draft.EventType,
		EventDate:  *draft.EventDate,
		EventTime:  draft.EventTime,
		GuestCount: draft.GuestCount,
		Location:   draft.Location,
		Status:     models.BookingStatusMatched,
	}
	if err := booking.SetServices(draft.Services); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := repository.GetGlobalFactory().GetBookingRepository().Create(booking); err != nil {
		log.Printf("booking complete: create failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not store booking")
	}

	matches, err := getMatchingService().MatchVendors(booking)
	if err != nil {
		log.Printf("booking complete: matching failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not match vendors")
	}

	// Draft is consumed; expiry handles stragglers if the delete fails.
	if err := cache.Delete(bookingDraftKeyPrefix + draft.DraftID); err != nil {
		log.Printf("booking complete: draft cleanup failed: %v", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"booking": booking,
		"matches": matches,
	})
}

// HandleListBookings returns a couple's bookings.
func HandleListBookings(c *fiber.Ctx) error {
	couple, err := repository.GetGlobalFactory().GetCoupleRepository().GetByUUID(c.Params("coupleId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "couple not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "could not load couple")
	}

	bookings, err := repository.GetGlobalFactory().GetBookingRepository().GetByCoupleID(couple.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load bookings")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"bookings": bookings})
}

func saveBookingDraft(draft *models.BookingDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return cache.Set(bookingDraftKeyPrefix+draft.DraftID, raw, bookingDraftTTL)
}

func loadBookingDraft(draftID string) (*models.BookingDraft, error) {
	raw, err := cache.Get(bookingDraftKeyPrefix + draftID)
	if err != nil {
		return nil, err
	}
	var draft models.BookingDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}
