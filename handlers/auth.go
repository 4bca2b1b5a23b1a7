package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	catalogRepo "locart/database/repository/catalog"
	"locart/utils"
)

// tokenTTL is the lifetime of issued access tokens.
const tokenTTL = 24 * time.Hour

// AuthHandler issues and revokes access tokens.
type AuthHandler struct {
	catalog catalogRepo.CatalogRepository
}

func NewAuthHandler(catalog catalogRepo.CatalogRepository) *AuthHandler {
	return &AuthHandler{catalog: catalog}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" || in.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "email and password are required", "")
		return
	}

	user, err := h.catalog.FindUserByEmailOrPhone(in.Email, "")
	if err != nil {
		utils.GetLogger().Error("login lookup failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "login failed", "")
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	role, err := h.catalog.GetUserRole(user.ID)
	if err != nil {
		utils.GetLogger().Error("role lookup failed", zap.String("userID", user.ID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "login failed", "")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.EmailAddress, role, tokenTTL)
	if err != nil {
		utils.GetLogger().Error("token generation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "login failed", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"role":    role,
		"user":    gin.H{"id": user.ID, "name": user.Name, "email": user.EmailAddress},
	})
}

// Logout handles POST /auth/logout: the presented token goes on the
// revocation blacklist until its natural expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" || tokenString == authHeader {
		utils.JSONError(c, http.StatusBadRequest, "missing bearer token", "")
		return
	}

	if err := utils.RevokeToken(utils.GetAuthCacheClient(), tokenString); err != nil {
		utils.GetLogger().Error("token revocation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "logout failed", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out"})
}
