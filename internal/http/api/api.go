package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/blinko-space/blinko-server/internal/config"
	"github.com/blinko-space/blinko-server/internal/http/api/handlers"
	"github.com/blinko-space/blinko-server/internal/models"
	"github.com/blinko-space/blinko-server/internal/oauth"
	"github.com/blinko-space/blinko-server/internal/security"
	"github.com/blinko-space/blinko-server/internal/settings"
	"github.com/blinko-space/blinko-server/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RegisterRoutes registers all API routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, jwtCfg config.JWTConfig, svc *settings.Service, oauthMgr *oauth.Manager) {
	if r == nil || db == nil || svc == nil {
		return
	}

	r.Use(requestIDMiddleware(), requestLogMiddleware())

	v1 := r.Group("/v1")

	authHandler := handlers.NewAuthHandler(db, svc, jwtCfg)
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	if oauthMgr != nil {
		v1.GET("/auth/oauth/providers", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"providers": oauthMgr.Providers()})
		})
	}

	configHandler := handlers.NewConfigHandler(svc)
	cfgGroup := v1.Group("/config")
	cfgGroup.GET("/list", optionalAuthMiddleware(jwtCfg), configHandler.List)
	cfgGroup.GET("/ai", optionalAuthMiddleware(jwtCfg), configHandler.AIModel)

	cfgAuthed := cfgGroup.Group("")
	cfgAuthed.Use(authMiddleware(jwtCfg))
	cfgAuthed.POST("/update", configHandler.Update)
	cfgAuthed.POST("/setPluginConfig", configHandler.SetPluginConfig)
	cfgAuthed.GET("/getPluginConfig", configHandler.GetPluginConfig)

	aiAdminHandler := handlers.NewAIAdminHandler(db)
	aiAdmin := v1.Group("/ai")
	aiAdmin.Use(authMiddleware(jwtCfg), superAdminMiddleware())
	aiAdmin.POST("/providers", aiAdminHandler.CreateProvider)
	aiAdmin.GET("/providers", aiAdminHandler.ListProviders)
	aiAdmin.POST("/models", aiAdminHandler.CreateModel)
	aiAdmin.GET("/models", aiAdminHandler.ListModels)
}

// requestIDMiddleware assigns each request an id surfaced in the response.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("requestID", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// requestLogMiddleware logs each request with masked query parameters.
func requestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"request_id": c.GetString("requestID"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"query":      util.MaskSensitiveQuery(c.Request.URL.RawQuery),
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("request failed")
			return
		}
		entry.Debug("request handled")
	}
}

// authMiddleware validates the session token and loads the caller into context.
func authMiddleware(jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearerClaims(c, jwtCfg)
		if !ok {
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// optionalAuthMiddleware loads the caller when a token is present; requests
// without a token proceed anonymously. A malformed token is still rejected.
func optionalAuthMiddleware(jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.GetHeader("Authorization")) == "" {
			c.Next()
			return
		}
		claims, ok := parseBearerClaims(c, jwtCfg)
		if !ok {
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// superAdminMiddleware rejects callers without the superadmin role.
func superAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		if role != models.RoleSuperAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "superadmin required"})
			return
		}
		c.Next()
	}
}

// parseBearerClaims extracts and validates the bearer token; failures write
// the error response and abort the request.
func parseBearerClaims(c *gin.Context, jwtCfg config.JWTConfig) (*security.UserClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
		return nil, false
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
		return nil, false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "empty token"})
		return nil, false
	}

	claims, errJWT := security.ParseToken(jwtCfg.Secret, token)
	if errJWT != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return nil, false
	}
	return claims, true
}
