package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"taller-go/internal/middleware"
	"taller-go/internal/service"
	"taller-go/pkg/log"
	"taller-go/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ChatHandler serves the assistant over REST and WebSocket.
type ChatHandler struct {
	chatService service.ChatService
	jwtManager  *token.JWTManager
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(chatService service.ChatService, jwtManager *token.JWTManager) *ChatHandler {
	return &ChatHandler{chatService: chatService, jwtManager: jwtManager}
}

// PostMessageRequest is one user turn. ConversationID 0 starts a new thread.
type PostMessageRequest struct {
	ConversationID uint   `json:"conversationId"`
	Model          string `json:"model"`
	Text           string `json:"text" binding:"required"`
}

// PostMessage runs one assistant turn synchronously.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "text is required"})
		return
	}

	reply, err := h.chatService.PostMessage(
		c.Request.Context(),
		middleware.UserID(c),
		middleware.CompanyID(c),
		req.ConversationID,
		req.Model,
		req.Text,
	)
	if err != nil {
		log.Errorf("assistant turn failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "the assistant could not answer, try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": reply})
}

// wsInbound is one client frame on the chat socket.
type wsInbound struct {
	ConversationID uint   `json:"conversationId"`
	Model          string `json:"model"`
	Text           string `json:"text"`
}

// wsOutbound is one server frame on the chat socket.
type wsOutbound struct {
	Type           string `json:"type"` // reply | error
	ConversationID uint   `json:"conversationId,omitempty"`
	Content        string `json:"content,omitempty"`
	Message        string `json:"message,omitempty"`
	Timestamp      int64  `json:"timestamp"`
}

// Handle upgrades the connection and answers each frame with one assistant
// turn. The token travels in the path because browsers cannot set headers
// on WebSocket upgrades.
func (h *ChatHandler) Handle(c *gin.Context) {
	claims, err := h.jwtManager.VerifyToken(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "message": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", err)
		return
	}
	defer conn.Close()

	log.Infof("websocket session opened for user %s", claims.Username)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			log.Warnf("websocket read ended: %v", err)
			break
		}

		var in wsInbound
		if err := json.Unmarshal(raw, &in); err != nil || strings.TrimSpace(in.Text) == "" {
			h.writeFrame(conn, wsOutbound{Type: "error", Message: "text is required"})
			continue
		}

		reply, err := h.chatService.PostMessage(
			c.Request.Context(),
			claims.UserID,
			claims.CompanyID,
			in.ConversationID,
			in.Model,
			in.Text,
		)
		if err != nil {
			log.Errorf("websocket assistant turn failed: %v", err)
			h.writeFrame(conn, wsOutbound{Type: "error", Message: "the assistant could not answer, try again"})
			continue
		}

		h.writeFrame(conn, wsOutbound{
			Type:           "reply",
			ConversationID: reply.ConversationID,
			Content:        reply.Content,
		})
	}
}

func (h *ChatHandler) writeFrame(conn *websocket.Conn, frame wsOutbound) {
	frame.Timestamp = time.Now().UnixMilli()
	b, err := json.Marshal(frame)
	if err != nil {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		log.Warnf("websocket write failed: %v", err)
	}
}
