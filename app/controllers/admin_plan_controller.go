package controllers

import (
	"errors"
	"log"

	"github.com/NoraWeller/VowNest/app/models"
	"github.com/NoraWeller/VowNest/internal/pkg/database"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type planRequest struct {
	PlanID          string `json:"planId"`
	Name            string `json:"name"`
	StripePriceID   string `json:"stripePriceId"`
	BillingInterval string `json:"billingInterval"`
	AmountCents     int64  `json:"amountCents"`
	Currency        string `json:"currency"`
	IsActive        *bool  `json:"isActive"`
}

// HandleAdminListPlans returns all plans, active or not.
func HandleAdminListPlans(c *fiber.Ctx) error {
	var plans []models.Plan
	if err := database.GetDB().Order("plan_id ASC").Find(&plans).Error; err != nil {
		log.Printf("admin plans: list failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not load plans")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"plans": plans})
}

// HandleAdminCreatePlan registers a plan and its Stripe price mapping.
func HandleAdminCreatePlan(c *fiber.Ctx) error {
	var req planRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	plan := &models.Plan{
		PlanID:          req.PlanID,
		Name:            req.Name,
		StripePriceID:   req.StripePriceID,
		BillingInterval: req.BillingInterval,
		AmountCents:     req.AmountCents,
		Currency:        req.Currency,
		IsActive:        true,
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if err := plan.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := database.GetDB().Create(plan).Error; err != nil {
		log.Printf("admin plans: create failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not create plan")
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// HandleAdminUpdatePlan updates an existing plan by its public plan id.
func HandleAdminUpdatePlan(c *fiber.Ctx) error {
	var plan models.Plan
	if err := database.GetDB().Where("plan_id = ?", c.Params("planId")).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "plan not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "could not load plan")
	}

	var req planRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.Name != "" {
		plan.Name = req.Name
	}
	if req.StripePriceID != "" {
		plan.StripePriceID = req.StripePriceID
	}
	if req.BillingInterval != "" {
		plan.BillingInterval = req.BillingInterval
	}
	if req.AmountCents != 0 {
		plan.AmountCents = req.AmountCents
	}
	if req.Currency != "" {
		plan.Currency = req.Currency
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if err := plan.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := database.GetDB().Save(&plan).Error; err != nil {
		log.Printf("admin plans: update failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not update plan")
	}
	return c.Status(fiber.StatusOK).JSON(plan)
}

// HandleAdminDeactivatePlan retires a plan without deleting its history.
func HandleAdminDeactivatePlan(c *fiber.Ctx) error {
	result := database.GetDB().Model(&models.Plan{}).
		Where("plan_id = ?", c.Params("planId")).
		Update("is_active", false)
	if result.Error != nil {
		log.Printf("admin plans: deactivate failed: %v", result.Error)
		return jsonError(c, fiber.StatusInternalServerError, "could not deactivate plan")
	}
	if result.RowsAffected == 0 {
		return jsonError(c, fiber.StatusNotFound, "plan not found")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"deactivated": true})
}
