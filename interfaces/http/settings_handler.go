package http

import (
	"net/http"

	"github.com/safak4545x/swifttube/domain/model"
	"github.com/safak4545x/swifttube/infrastructure/cache"
	"github.com/safak4545x/swifttube/usecase"

	"github.com/gin-gonic/gin"
)

// ISettingsHandler exposes the persisted preferences and cache maintenance.
type ISettingsHandler interface {
	GetSettings(ctx *gin.Context)
	SaveSettings(ctx *gin.Context)
	ClearCache(ctx *gin.Context)
}

// SettingsHandler implements the settings HTTP handlers.
type SettingsHandler struct {
	settingsUseCase usecase.ISettingsUseCase
	store           *cache.Store
}

// NewSettingsHandler creates a new settings handler instance.
func NewSettingsHandler(settingsUseCase usecase.ISettingsUseCase, store *cache.Store) ISettingsHandler {
	return &SettingsHandler{settingsUseCase: settingsUseCase, store: store}
}

// GetSettings handles GET /api/settings
func (h *SettingsHandler) GetSettings(ctx *gin.Context) {
	settings, err := h.settingsUseCase.Get(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": settings})
}

// SaveSettings handles PUT /api/settings
func (h *SettingsHandler) SaveSettings(ctx *gin.Context) {
	var settings model.Settings
	if err := ctx.ShouldBindJSON(&settings); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings", "message": err.Error()})
		return
	}
	if err := h.settingsUseCase.Save(ctx.Request.Context(), &settings); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": settings})
}

// ClearCache handles POST /api/cache/clear
// Clearing the store also wipes persisted settings; the frontend warns
// before calling this.
func (h *SettingsHandler) ClearCache(ctx *gin.Context) {
	if err := h.store.Clear(); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cache", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
