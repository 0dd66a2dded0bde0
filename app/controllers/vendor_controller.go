package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/NoraWeller/VowNest/app/models"
	"github.com/NoraWeller/VowNest/app/repository"
	"github.com/NoraWeller/VowNest/internal/pkg/metrics/counter"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type vendorResponse struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	ViewCount   int64  `json:"viewCount"`
}

func toVendorResponse(v *models.Vendor) vendorResponse {
	return vendorResponse{
		UUID:        v.UUID,
		Name:        v.Name,
		Category:    v.Category,
		Location:    v.Location,
		Description: v.Description,
		PriceCents:  v.PriceCents,
		ViewCount:   v.ViewCount,
	}
}

// HandleRegisterVendor creates a vendor account.
func HandleRegisterVendor(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		Category    string `json:"category"`
		Location    string `json:"location"`
		Description string `json:"description"`
		PriceCents  int64  `json:"priceCents"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	vendor, err := models.CreateVendor(req.Name, req.Email, req.Password, req.Category, req.Location)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	vendor.Description = req.Description
	vendor.PriceCents = req.PriceCents

	repo := repository.GetGlobalFactory().GetVendorRepository()
	if existing, err := repo.GetByEmail(vendor.Email); err == nil && existing != nil {
		return jsonError(c, fiber.StatusConflict, "email is already registered")
	}
	if err := repo.Create(vendor); err != nil {
		log.Printf("vendor register: create failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not create vendor")
	}

	return c.Status(fiber.StatusCreated).JSON(toVendorResponse(vendor))
}

// HandleSearchVendors searches active vendors. Results are ordered by view
// count so popular vendors surface first.
func HandleSearchVendors(c *fiber.Ctx) error {
	vendors, err := repository.GetGlobalFactory().GetVendorRepository().Search(
		c.Query("q"),
		c.Query("category"),
		c.Query("location"),
		c.QueryInt("limit"),
	)
	if err != nil {
		log.Printf("vendor search: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "search failed")
	}

	results := make([]vendorResponse, 0, len(vendors))
	for i := range vendors {
		results = append(results, toVendorResponse(&vendors[i]))
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"vendors": results})
}

// HandleGetVendor returns a vendor profile and counts the view.
func HandleGetVendor(c *fiber.Ctx) error {
	vendor, err := repository.GetGlobalFactory().GetVendorRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "vendor not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "could not load vendor")
	}

	// View counting is best effort, a profile load never fails on it.
	if err := counter.AddVendorView(vendor.ID); err != nil {
		log.Printf("vendor view counter: %v", err)
	}

	return c.Status(fiber.StatusOK).JSON(toVendorResponse(vendor))
}

// HandleAddVendorBlackout records a date the vendor cannot serve.
func HandleAddVendorBlackout(c *fiber.Ctx) error {
	vendor, err := repository.GetGlobalFactory().GetVendorRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "vendor not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "could not load vendor")
	}

	var req struct {
		Date   string `json:"date"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	blackout := &models.VendorBlackoutDate{
		VendorID: vendor.ID,
		Date:     date,
		Reason:   req.Reason,
	}
	if err := repository.GetGlobalFactory().GetVendorRepository().AddBlackoutDate(blackout); err != nil {
		log.Printf("vendor blackout: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not store blackout date")
	}

	return c.Status(fiber.StatusCreated).JSON(blackout)
}
