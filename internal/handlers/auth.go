package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/thereayou/drop/internal/database"
	"github.com/thereayou/drop/internal/handlers/dto"
	"github.com/thereayou/drop/internal/middleware"
	"github.com/thereayou/drop/internal/models"
	"github.com/thereayou/drop/internal/services"
	"github.com/thereayou/drop/pkg/auth"
)

type AuthHandler struct {
	users      services.UserStore
	jwtManager *auth.JWTManager
	blacklist  auth.TokenBlacklist
}

func NewAuthHandler(users services.UserStore, jwtMgr *auth.JWTManager, blacklist auth.TokenBlacklist) *AuthHandler {
	return &AuthHandler{users: users, jwtManager: jwtMgr, blacklist: blacklist}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot hash password"})
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := h.users.SaveUser(c.Request.Context(), user); err != nil {
		_ = c.Error(err)
		if database.KindOf(err) == database.KindNotReady {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database is not available"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create user"})
		return
	}

	h.issueToken(c, http.StatusCreated, user)
}

// Login выдаёт JWT и обновляет last_seen
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if database.KindOf(err) == database.KindNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		respondError(c, err, "could not find user")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if err := h.users.UpdateLastSeen(ctx, user.ID); err != nil {
		if database.KindOf(err) == database.KindNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		respondError(c, err, "could not update last seen")
		return
	}

	h.issueToken(c, http.StatusOK, user)
}

// Logout ставит токен в черный список до истечения
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken := c.GetString(middleware.TokenKey)
	if rawToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	claims, err := h.jwtManager.Verify(rawToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	if err := h.blacklist.Revoke(c.Request.Context(), rawToken, time.Until(claims.ExpiresAt.Time)); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not revoke token"})
		return
	}

	c.Status(http.StatusOK)
}

func (h *AuthHandler) issueToken(c *gin.Context, status int, user *models.User) {
	token, expiresAt, err := h.jwtManager.Generate(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(status, dto.AuthResponse{
		Uid:            user.ID,
		Username:       user.Username,
		Token:          token,
		TokenExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}
