package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/blinko-space/blinko-server/internal/models"
	"github.com/blinko-space/blinko-server/internal/settings"
	"github.com/gin-gonic/gin"
)

// ConfigHandler serves the config endpoints.
type ConfigHandler struct {
	svc *settings.Service
}

// NewConfigHandler constructs a ConfigHandler.
func NewConfigHandler(svc *settings.Service) *ConfigHandler {
	return &ConfigHandler{svc: svc}
}

// List returns the effective configuration for the caller. Anonymous
// callers receive the public bootstrap subset.
func (h *ConfigHandler) List(c *gin.Context) {
	cfg, errResolve := h.svc.Resolve(c.Request.Context(), callerFromContext(c))
	if errResolve != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resolve config failed"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// updateRequest defines the request body for config updates.
type updateRequest struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Update writes a config value for the caller.
func (h *ConfigHandler) Update(c *gin.Context) {
	var body updateRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	key := strings.TrimSpace(body.Key)
	if !settings.IsKnownKey(key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown config key"})
		return
	}

	entry, errApply := h.svc.Apply(c.Request.Context(), callerFromContext(c), key, body.Value)
	if errApply != nil {
		if errors.Is(errApply, settings.ErrGlobalWriteForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "only superadmin may update global config"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update config failed"})
		return
	}
	c.JSON(http.StatusOK, entryResponse(entry))
}

// setPluginConfigRequest defines the request body for plugin config writes.
type setPluginConfigRequest struct {
	PluginName string `json:"pluginName"`
	Key        string `json:"key"`
	Value      any    `json:"value"`
}

// SetPluginConfig writes a plugin-scoped value for the caller.
func (h *ConfigHandler) SetPluginConfig(c *gin.Context) {
	var body setPluginConfigRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	pluginName := strings.TrimSpace(body.PluginName)
	key := strings.TrimSpace(body.Key)
	if pluginName == "" || key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing pluginName or key"})
		return
	}

	entry, errSet := h.svc.SetPluginValue(c.Request.Context(), callerFromContext(c), pluginName, key, body.Value)
	if errSet != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "set plugin config failed"})
		return
	}
	c.JSON(http.StatusOK, entryResponse(entry))
}

// GetPluginConfig returns the caller's values for a plugin.
func (h *ConfigHandler) GetPluginConfig(c *gin.Context) {
	pluginName := strings.TrimSpace(c.Query("pluginName"))
	if pluginName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing pluginName"})
		return
	}

	values, errGet := h.svc.PluginValues(c.Request.Context(), callerFromContext(c), pluginName)
	if errGet != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get plugin config failed"})
		return
	}
	c.JSON(http.StatusOK, values)
}

// AIModel resolves the configured model descriptor of the requested kind.
// Responds with a JSON null when nothing is configured.
func (h *ConfigHandler) AIModel(c *gin.Context) {
	kind := settings.ModelKind(strings.TrimSpace(c.Query("type")))

	descriptor, errResolve := h.svc.ResolveAIModel(c.Request.Context(), callerFromContext(c), kind)
	if errResolve != nil {
		if errors.Is(errResolve, settings.ErrUnknownModelKind) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown model type"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resolve model failed"})
		return
	}
	if descriptor == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, descriptor)
}

// entryResponse projects a config row into the API shape.
func entryResponse(entry *models.ConfigEntry) gin.H {
	return gin.H{
		"id":     entry.ID,
		"key":    entry.Key,
		"userId": entry.UserID,
		"config": json.RawMessage(entry.Config),
	}
}
