package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/blinko-space/blinko-server/internal/models"
	"github.com/blinko-space/blinko-server/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AIAdminHandler manages the AI provider and model catalog.
type AIAdminHandler struct {
	db *gorm.DB
}

// NewAIAdminHandler constructs an AIAdminHandler.
func NewAIAdminHandler(db *gorm.DB) *AIAdminHandler {
	return &AIAdminHandler{db: db}
}

// createProviderRequest defines the request body for provider creation.
type createProviderRequest struct {
	Title    string  `json:"title"`
	Provider string  `json:"provider"`
	BaseURL  *string `json:"baseURL"`
	APIKey   *string `json:"apiKey"`
}

// CreateProvider registers a provider endpoint.
func (h *AIAdminHandler) CreateProvider(c *gin.Context) {
	var body createProviderRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(body.Title) == "" || strings.TrimSpace(body.Provider) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing title or provider"})
		return
	}

	provider := models.AIProvider{
		Title:    strings.TrimSpace(body.Title),
		Provider: strings.TrimSpace(body.Provider),
		BaseURL:  body.BaseURL,
		APIKey:   body.APIKey,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&provider).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create provider failed"})
		return
	}
	c.JSON(http.StatusOK, providerResponse(&provider))
}

// ListProviders returns all registered providers with masked credentials.
func (h *AIAdminHandler) ListProviders(c *gin.Context) {
	var providers []models.AIProvider
	if errFind := h.db.WithContext(c.Request.Context()).Order("id ASC").Find(&providers).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	out := make([]gin.H, 0, len(providers))
	for i := range providers {
		out = append(out, providerResponse(&providers[i]))
	}
	c.JSON(http.StatusOK, gin.H{"providers": out})
}

// createModelRequest defines the request body for model creation.
type createModelRequest struct {
	Title        string          `json:"title"`
	ModelKey     string          `json:"modelKey"`
	Capabilities json.RawMessage `json:"capabilities"`
	ProviderID   uint64          `json:"providerId"`
}

// CreateModel registers a model under an existing provider.
func (h *AIAdminHandler) CreateModel(c *gin.Context) {
	var body createModelRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(body.Title) == "" || strings.TrimSpace(body.ModelKey) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing title or modelKey"})
		return
	}

	var provider models.AIProvider
	if errFind := h.db.WithContext(c.Request.Context()).First(&provider, body.ProviderID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "provider not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	model := models.AIModel{
		Title:        strings.TrimSpace(body.Title),
		ModelKey:     strings.TrimSpace(body.ModelKey),
		Capabilities: datatypes.JSON(body.Capabilities),
		ProviderID:   provider.ID,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&model).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create model failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         model.ID,
		"title":      model.Title,
		"modelKey":   model.ModelKey,
		"providerId": model.ProviderID,
	})
}

// ListModels returns all models joined with their providers.
func (h *AIAdminHandler) ListModels(c *gin.Context) {
	var modelRows []models.AIModel
	if errFind := h.db.WithContext(c.Request.Context()).Preload("Provider").Order("id ASC").Find(&modelRows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	out := make([]gin.H, 0, len(modelRows))
	for i := range modelRows {
		m := &modelRows[i]
		out = append(out, gin.H{
			"id":           m.ID,
			"title":        m.Title,
			"modelKey":     m.ModelKey,
			"capabilities": json.RawMessage(m.Capabilities),
			"provider":     providerResponse(&m.Provider),
		})
	}
	c.JSON(http.StatusOK, gin.H{"models": out})
}

// providerResponse projects a provider row, masking the credential.
func providerResponse(provider *models.AIProvider) gin.H {
	var maskedKey *string
	if provider.APIKey != nil {
		masked := util.HideAPIKey(*provider.APIKey)
		maskedKey = &masked
	}
	return gin.H{
		"id":       provider.ID,
		"title":    provider.Title,
		"provider": provider.Provider,
		"baseURL":  provider.BaseURL,
		"apiKey":   maskedKey,
	}
}
