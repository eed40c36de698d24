package handlers

import (
	"net/http"
	"strings"

	"github.com/blinko-space/blinko-server/internal/config"
	"github.com/blinko-space/blinko-server/internal/models"
	"github.com/blinko-space/blinko-server/internal/security"
	"github.com/blinko-space/blinko-server/internal/settings"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	db     *gorm.DB
	svc    *settings.Service
	jwtCfg config.JWTConfig
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, svc *settings.Service, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{db: db, svc: svc, jwtCfg: jwtCfg}
}

// registerRequest defines the request body for registration.
type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// Register creates an account. The first account becomes superadmin; later
// registrations honor the isAllowRegister config.
func (h *AuthHandler) Register(c *gin.Context) {
	var body registerRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	username := strings.TrimSpace(body.Username)
	password := strings.TrimSpace(body.Password)
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing username or password"})
		return
	}

	var count int64
	if errCount := h.db.WithContext(c.Request.Context()).Model(&models.User{}).Count(&count).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	role := models.RoleUser
	if count == 0 {
		// Fresh install: the first account bootstraps the instance.
		role = models.RoleSuperAdmin
	} else {
		cfg, errResolve := h.svc.ResolveAsSystem(c.Request.Context())
		if errResolve != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "resolve config failed"})
			return
		}
		if allowed, ok := cfg[settings.KeyAllowRegister].(bool); ok && !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "registration is disabled"})
			return
		}
	}

	var existing models.User
	if errFind := h.db.WithContext(c.Request.Context()).Where("username = ?", username).First(&existing).Error; errFind == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
		return
	}

	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hash password failed"})
		return
	}

	user := models.User{
		Username: username,
		Password: hash,
		Nickname: strings.TrimSpace(body.Nickname),
		Role:     role,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&user).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create user failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

// loginRequest defines the request body for login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	var user models.User
	errFind := h.db.WithContext(c.Request.Context()).
		Where("username = ?", strings.TrimSpace(body.Username)).
		First(&user).Error
	if errFind != nil || !security.CheckPassword(user.Password, body.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	token, errToken := security.GenerateToken(h.jwtCfg.Secret, user.ID, user.Username, user.Role, h.jwtCfg.Expiry())
	if errToken != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign token failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"nickname": user.Nickname,
			"role":     user.Role,
		},
	})
}
