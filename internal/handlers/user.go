package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/drop/internal/database"
	"github.com/thereayou/drop/internal/handlers/dto"
	"github.com/thereayou/drop/internal/middleware"
	"github.com/thereayou/drop/internal/services"
)

type UserHandler struct {
	users services.UserStore
}

func NewUserHandler(users services.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// GetMe возвращает информацию о текущем пользователе
func (h *UserHandler) GetMe(c *gin.Context) {
	viewer, ok := middleware.ViewerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.users.FindUserByID(c.Request.Context(), viewer.ID)
	if err != nil {
		if database.KindOf(err) == database.KindNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		respondError(c, err, "could not load user")
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		CreatedAt:  user.CreatedAt,
		LastSeenAt: user.LastSeenAt,
	})
}
