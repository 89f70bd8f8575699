package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"drivn/internal/adapter/api/middleware"
	"drivn/internal/usecase"
	"drivn/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type resolveConversationRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required"`
	SellerID  string `json:"seller_id" validate:"required"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// ResolveConversation finds or creates the conversation for the
// (vehicle, viewer, seller) triple.
func (h *ChatHandler) ResolveConversation(c echo.Context) error {
	var req resolveConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session := middleware.SessionFromContext(c)

	conversation, err := h.chatUseCase.ResolveConversation(c.Request().Context(), session, req.VehicleID, req.SellerID)
	if err != nil {
		return response.Error(c, err)
	}

	vehicle, err := h.chatUseCase.VehicleSummary(c.Request().Context(), req.VehicleID)
	if err != nil {
		// Header display only; the conversation itself is usable.
		vehicle = nil
	}

	return response.Created(c, usecase.ConversationResponse{
		Conversation: conversation,
		Vehicle:      vehicle,
	})
}

func (h *ChatHandler) ListConversations(c echo.Context) error {
	session := middleware.SessionFromContext(c)

	limit := 20
	offset := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	conversations, total, err := h.chatUseCase.ListConversations(c.Request().Context(), session, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, conversations, total, limit, offset)
}

// GetConversation serves the deep-link entry: a known conversation ID is
// fetched directly, with an optional vehicle_id query to validate the triple.
func (h *ChatHandler) GetConversation(c echo.Context) error {
	session := middleware.SessionFromContext(c)
	conversationID := c.Param("id")
	vehicleID := c.QueryParam("vehicle_id")

	conversation, err := h.chatUseCase.GetConversationForViewer(c.Request().Context(), session, conversationID, vehicleID)
	if err != nil {
		return response.Error(c, err)
	}

	summary, err := h.chatUseCase.VehicleSummary(c.Request().Context(), conversation.VehicleID)
	if err != nil {
		summary = nil
	}

	return response.Success(c, usecase.ConversationResponse{
		Conversation: conversation,
		Vehicle:      summary,
	})
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	session := middleware.SessionFromContext(c)
	conversationID := c.Param("id")

	messages, err := h.chatUseCase.ListMessages(c.Request().Context(), session, conversationID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	session := middleware.SessionFromContext(c)
	conversationID := c.Param("id")

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), session, conversationID, req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) MarkRead(c echo.Context) error {
	session := middleware.SessionFromContext(c)
	conversationID := c.Param("id")

	if _, err := h.chatUseCase.GetConversationForViewer(c.Request().Context(), session, conversationID, ""); err != nil {
		return response.Error(c, err)
	}

	h.chatUseCase.MarkConversationRead(c.Request().Context(), session, conversationID)

	return c.NoContent(http.StatusOK)
}
