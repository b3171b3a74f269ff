package handler

import (
	"errors"
	"log"
	"net/http"

	"messagely/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles user profile and message-thread requests
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// ListUsers returns basic info on all users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListProfiles(c.Request.Context())
	if err != nil {
		log.Printf("Error listing users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUser returns the full profile for one user
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.service.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error getting user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetMessagesFrom returns messages sent by the user
func (h *UserHandler) GetMessagesFrom(c *gin.Context) {
	messages, err := h.service.MessagesSentBy(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error getting sent messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// GetMessagesTo returns messages received by the user
func (h *UserHandler) GetMessagesTo(c *gin.Context) {
	messages, err := h.service.MessagesReceivedBy(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error getting received messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// RegisterUserRoutes registers user routes. Listing requires any logged-in
// user; profile and thread reads are restricted to the named user.
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, correctUserMW gin.HandlerFunc) {
	userRoutes := rg.Group("/users")
	userRoutes.Use(authMW)
	{
		userRoutes.GET("", h.ListUsers)

		ownRoutes := userRoutes.Group("/:username")
		ownRoutes.Use(correctUserMW)
		{
			ownRoutes.GET("", h.GetUser)
			ownRoutes.GET("/from", h.GetMessagesFrom)
			ownRoutes.GET("/to", h.GetMessagesTo)
		}
	}
}
