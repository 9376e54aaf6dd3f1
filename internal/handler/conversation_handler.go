package handler

import (
	"net/http"
	"strconv"

	"taller-go/internal/middleware"
	"taller-go/internal/service"

	"github.com/gin-gonic/gin"
)

// ConversationHandler serves the conversation list and history endpoints.
type ConversationHandler struct {
	conversationService service.ConversationService
}

// NewConversationHandler creates a ConversationHandler.
func NewConversationHandler(conversationService service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

func (h *ConversationHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	conversations, total, err := h.conversationService.List(c.Request.Context(), middleware.UserID(c), offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "listing conversations failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    gin.H{"items": conversations, "total": total},
	})
}

func (h *ConversationHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid conversation id"})
		return
	}
	conversation, messages, err := h.conversationService.Get(c.Request.Context(), middleware.UserID(c), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "conversation not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    gin.H{"conversation": conversation, "messages": messages},
	})
}

// RenameRequest is the title change payload.
type RenameRequest struct {
	Title string `json:"title" binding:"required,max=128"`
}

func (h *ConversationHandler) Rename(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid conversation id"})
		return
	}
	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "title is required"})
		return
	}
	if err := h.conversationService.Rename(c.Request.Context(), middleware.UserID(c), uint(id), req.Title); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "conversation not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "renamed"})
}

func (h *ConversationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid conversation id"})
		return
	}
	if err := h.conversationService.Delete(c.Request.Context(), middleware.UserID(c), uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "conversation not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "deleted"})
}
