package controllers

import (
	"errors"
	"log"

	"github.com/NoraWeller/VowNest/app/models"
	"github.com/NoraWeller/VowNest/app/repository"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HandleStartConversation opens (or returns) the conversation between a
// couple and a vendor and optionally sends a first message.
func HandleStartConversation(c *fiber.Ctx) error {
	var req struct {
		CoupleID string `json:"coupleId"`
		VendorID string `json:"vendorId"`
		Body     string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	factory := repository.GetGlobalFactory()
	couple, err := factory.GetCoupleRepository().GetByUUID(req.CoupleID)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "couple not found")
	}
	vendor, err := factory.GetVendorRepository().GetByUUID(req.VendorID)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "vendor not found")
	}

	conversation, err := factory.GetConversationRepository().GetOrCreate(couple.ID, vendor.ID)
	if err != nil {
		log.Printf("conversation start: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not open conversation")
	}

	if req.Body != "" {
		message := &models.Message{
			ConversationID: conversation.ID,
			SenderRole:     models.SenderCouple,
			Body:           req.Body,
		}
		if err := factory.GetConversationRepository().AppendMessage(message); err != nil {
			log.Printf("conversation start: first message: %v", err)
			return jsonError(c, fiber.StatusInternalServerError, "could not send message")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(conversation)
}

// HandleListCoupleConversations returns all conversations a couple is part of.
func HandleListCoupleConversations(c *fiber.Ctx) error {
	couple, err := repository.GetGlobalFactory().GetCoupleRepository().GetByUUID(c.Params("coupleId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "couple not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "could not load couple")
	}

	conversations, err := repository.GetGlobalFactory().GetConversationRepository().ListByCoupleID(couple.ID)
	if err != nil {
		log.Printf("conversation list: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not load conversations")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"conversations": conversations})
}

// HandleListVendorConversations returns all conversations a vendor is part of.
func HandleListVendorConversations(c *fiber.Ctx) error {
	vendor, err := repository.GetGlobalFactory().GetVendorRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "vendor not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "could not load vendor")
	}

	conversations, err := repository.GetGlobalFactory().GetConversationRepository().ListByVendorID(vendor.ID)
	if err != nil {
		log.Printf("conversation list: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not load conversations")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"conversations": conversations})
}

// HandleSendMessage appends a message to an existing conversation.
func HandleSendMessage(c *fiber.Ctx) error {
	conversation, err := repository.GetGlobalFactory().GetConversationRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "conversation not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "could not load conversation")
	}

	var req struct {
		SenderRole string `json:"senderRole"`
		Body       string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.SenderRole != models.SenderCouple && req.SenderRole != models.SenderVendor {
		return jsonError(c, fiber.StatusBadRequest, "senderRole must be couple or vendor")
	}
	if req.Body == "" {
		return jsonError(c, fiber.StatusBadRequest, "body is required")
	}

	message := &models.Message{
		ConversationID: conversation.ID,
		SenderRole:     req.SenderRole,
		Body:           req.Body,
	}
	if err := repository.GetGlobalFactory().GetConversationRepository().AppendMessage(message); err != nil {
		log.Printf("message send: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not send message")
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// HandleListMessages returns messages for a conversation, oldest first.
func HandleListMessages(c *fiber.Ctx) error {
	conversation, err := repository.GetGlobalFactory().GetConversationRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "conversation not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "could not load conversation")
	}

	messages, err := repository.GetGlobalFactory().GetConversationRepository().ListMessages(conversation.ID, c.QueryInt("limit"))
	if err != nil {
		log.Printf("message list: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not load messages")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"messages": messages})
}
