package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"drivn/internal/domain/entity"
	"drivn/internal/infrastructure/firebase"
	ws "drivn/internal/infrastructure/websocket"
	"drivn/internal/usecase"
	"drivn/pkg/errors"
	"drivn/pkg/logger"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Restrict in production.
	},
}

// WebSocketHandler is the realtime bridge for chat views. Each connected
// client can hold one open chat session at a time; the session owns the
// message synchronizer (initial fetch, realtime subscription, poll fallback)
// and a composer with draft semantics, and is torn down when the view closes
// or the socket drops.
type WebSocketHandler struct {
	wsManager    *ws.Manager
	authClient   *firebase.AuthClient
	chatUseCase  *usecase.ChatUseCase
	feed         usecase.MessageFeed
	pollInterval time.Duration
}

func NewWebSocketHandler(
	wsManager *ws.Manager,
	authClient *firebase.AuthClient,
	chatUseCase *usecase.ChatUseCase,
	feed usecase.MessageFeed,
	pollInterval time.Duration,
) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:    wsManager,
		authClient:   authClient,
		chatUseCase:  chatUseCase,
		feed:         feed,
		pollInterval: pollInterval,
	}
}

type wsInbound struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversation_id,omitempty"`
	VehicleID      string `json:"vehicle_id,omitempty"`
	SellerID       string `json:"seller_id,omitempty"`
	Content        string `json:"content,omitempty"`
}

type wsOutbound struct {
	Type           string                 `json:"type"`
	ConversationID string                 `json:"conversation_id,omitempty"`
	Messages       []*entity.Message      `json:"messages,omitempty"`
	Message        *entity.Message        `json:"message,omitempty"`
	Conversation   *entity.Conversation   `json:"conversation,omitempty"`
	Vehicle        *entity.VehicleSummary `json:"vehicle,omitempty"`
	Draft          string                 `json:"draft,omitempty"`
	Error          string                 `json:"error,omitempty"`
}

func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return errors.Unauthorized("Authentication required", nil)
	}
	session, err := h.authClient.SessionFromToken(c.Request().Context(), token)
	if err != nil {
		return errors.Unauthorized("Invalid or expired token", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := ws.NewClient(session.UID, conn)
	h.wsManager.Register <- client
	go client.WritePump()

	go h.readLoop(client, session)

	return nil
}

func (h *WebSocketHandler) readLoop(client *ws.Client, session *entity.Session) {
	ctx, cancel := context.WithCancel(context.Background())

	var chatSession *usecase.ChatSession
	var composer *usecase.Composer
	var openConversationID string

	closeChat := func() {
		if chatSession != nil {
			chatSession.Close()
			chatSession = nil
		}
		composer = nil
		openConversationID = ""
	}

	defer func() {
		closeChat()
		cancel()
		h.wsManager.Unregister <- client
		client.Conn.Close()
	}()

	for {
		_, payload, err := client.Conn.ReadMessage()
		if err != nil {
			if gorillaws.IsUnexpectedCloseError(err, gorillaws.CloseGoingAway, gorillaws.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error for %s: %v", client.UserID, err)
			}
			return
		}

		var inbound wsInbound
		if err := json.Unmarshal(payload, &inbound); err != nil {
			h.send(client, wsOutbound{Type: "error", Error: "invalid payload"})
			continue
		}

		switch inbound.Type {
		case "open_chat":
			closeChat()

			conversation, vehicle, err := h.openConversation(ctx, session, inbound)
			if err != nil {
				logger.Error("open_chat failed for %s: %v", client.UserID, err)
				h.send(client, wsOutbound{Type: "chat_unavailable", Error: "chat unavailable"})
				continue
			}

			openConversationID = conversation.ID
			conversationID := conversation.ID
			chatSession = usecase.NewChatSession(
				conversationID,
				session,
				h.chatUseCase.MessageRepo(),
				h.feed,
				h.pollInterval,
				func(messages []*entity.Message) {
					h.send(client, wsOutbound{
						Type:           "messages",
						ConversationID: conversationID,
						Messages:       messages,
					})
				},
			)
			composer = usecase.NewComposer(conversationID, session, h.chatUseCase)

			h.send(client, wsOutbound{
				Type:           "chat_opened",
				ConversationID: conversationID,
				Conversation:   conversation,
				Vehicle:        vehicle,
			})
			chatSession.Start(ctx)

		case "send_message":
			if composer == nil || inbound.ConversationID != openConversationID {
				h.send(client, wsOutbound{Type: "error", Error: "no open chat"})
				continue
			}
			composer.SetDraft(inbound.Content)
			message, err := composer.Send(ctx)
			if err != nil {
				// The draft survives the failure; hand it back so the
				// client can re-populate the input.
				h.send(client, wsOutbound{
					Type:           "send_failed",
					ConversationID: openConversationID,
					Draft:          composer.Draft(),
				})
				continue
			}
			if message != nil {
				h.send(client, wsOutbound{
					Type:           "message_sent",
					ConversationID: openConversationID,
					Message:        message,
				})
			}

		case "close_chat":
			closeChat()

		default:
			h.send(client, wsOutbound{Type: "error", Error: "unknown message type"})
		}
	}
}

func (h *WebSocketHandler) openConversation(ctx context.Context, session *entity.Session, inbound wsInbound) (*entity.Conversation, *entity.VehicleSummary, error) {
	var conversation *entity.Conversation
	var err error

	if inbound.ConversationID != "" {
		conversation, err = h.chatUseCase.GetConversationForViewer(ctx, session, inbound.ConversationID, inbound.VehicleID)
	} else {
		conversation, err = h.chatUseCase.ResolveConversation(ctx, session, inbound.VehicleID, inbound.SellerID)
	}
	if err != nil {
		return nil, nil, err
	}

	vehicle, err := h.chatUseCase.VehicleSummary(ctx, conversation.VehicleID)
	if err != nil {
		vehicle = nil
	}

	return conversation, vehicle, nil
}

func (h *WebSocketHandler) send(client *ws.Client, outbound wsOutbound) {
	payload, err := json.Marshal(outbound)
	if err != nil {
		return
	}
	client.Enqueue(payload)
}
