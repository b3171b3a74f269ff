package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"messagely/internal/middleware"
	"messagely/internal/model"
	"messagely/internal/service"

	"github.com/gin-gonic/gin"
)

// MessageHandler handles message requests
type MessageHandler struct {
	service service.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(s service.MessageService) *MessageHandler {
	return &MessageHandler{service: s}
}

// Helper to get the authenticated username from context
func getAuthUsername(c *gin.Context) (string, error) {
	userVal, exists := c.Get(middleware.AuthUserKey)
	if !exists {
		return "", errors.New("username not found in context")
	}
	username, ok := userVal.(string)
	if !ok {
		return "", errors.New("invalid username type in context")
	}
	return username, nil
}

// GetMessage returns one message; only its sender or recipient may view it
func (h *MessageHandler) GetMessage(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	messageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	message, err := h.service.GetMessage(c.Request.Context(), messageID, username)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else {
			log.Printf("Error getting message by ID: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve message"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// CreateMessage sends a message from the authenticated user
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	message, err := h.service.CreateMessage(c.Request.Context(), username, req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error creating message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create message"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// MarkRead marks a message read; only the recipient may do so
func (h *MessageHandler) MarkRead(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	messageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	message, err := h.service.MarkMessageRead(c.Request.Context(), messageID, username)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else {
			log.Printf("Error marking message read: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark message read"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// RegisterMessageRoutes registers message routes; all require authentication
func (h *MessageHandler) RegisterMessageRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	messageRoutes := rg.Group("/messages")
	messageRoutes.Use(authMW)
	{
		messageRoutes.GET("/:id", h.GetMessage)
		messageRoutes.POST("", h.CreateMessage)
		messageRoutes.POST("/:id/read", h.MarkRead)
	}
}
