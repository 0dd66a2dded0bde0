package controllers

import (
	"errors"
	"log"

	"github.com/NoraWeller/VowNest/app/models"
	"github.com/NoraWeller/VowNest/app/repository"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type coupleResponse struct {
	UUID        string `json:"uuid"`
	PartnerOne  string `json:"partnerOne"`
	PartnerTwo  string `json:"partnerTwo"`
	Email       string `json:"email"`
	WeddingDate string `json:"weddingDate,omitempty"`
	Location    string `json:"location,omitempty"`
}

func toCoupleResponse(cpl *models.Couple) coupleResponse {
	return coupleResponse{
		UUID:        cpl.UUID,
		PartnerOne:  cpl.PartnerOne,
		PartnerTwo:  cpl.PartnerTwo,
		Email:       cpl.Email,
		WeddingDate: formatTimePtr(cpl.WeddingDate),
		Location:    cpl.Location,
	}
}

// HandleRegisterCouple creates a couple account.
func HandleRegisterCouple(c *fiber.Ctx) error {
	var req struct {
		PartnerOne string `json:"partnerOne"`
		PartnerTwo string `json:"partnerTwo"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		Location   string `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	couple, err := models.CreateCouple(req.PartnerOne, req.PartnerTwo, req.Email, req.Password)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	couple.Location = req.Location

	repo := repository.GetGlobalFactory().GetCoupleRepository()
	if existing, err := repo.GetByEmail(couple.Email); err == nil && existing != nil {
		return jsonError(c, fiber.StatusConflict, "email is already registered")
	}
	if err := repo.Create(couple); err != nil {
		log.Printf("couple register: create failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not create couple")
	}

	return c.Status(fiber.StatusCreated).JSON(toCoupleResponse(couple))
}

// HandleGetCouple returns a couple profile.
func HandleGetCouple(c *fiber.Ctx) error {
	couple, err := repository.GetGlobalFactory().GetCoupleRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "couple not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "could not load couple")
	}
	return c.Status(fiber.StatusOK).JSON(toCoupleResponse(couple))
}
