package http

import (
	"net/http"

	"github.com/safak4545x/swifttube/usecase"

	"github.com/gin-gonic/gin"
)

// IAssetHandler serves proxied thumbnail/avatar bytes.
type IAssetHandler interface {
	Asset(ctx *gin.Context)
}

// AssetHandler implements the asset HTTP handler.
type AssetHandler struct {
	assetUseCase usecase.IAssetUseCase
}

// NewAssetHandler creates a new asset handler instance.
func NewAssetHandler(assetUseCase usecase.IAssetUseCase) IAssetHandler {
	return &AssetHandler{assetUseCase: assetUseCase}
}

// Asset handles GET /api/assets?url=...
func (h *AssetHandler) Asset(ctx *gin.Context) {
	rawURL := ctx.Query("url")
	if rawURL == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Asset url is required"})
		return
	}
	asset, err := h.assetUseCase.Fetch(ctx.Request.Context(), rawURL)
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch asset", "message": err.Error()})
		return
	}
	ctx.Header("Cache-Control", "public, max-age=86400")
	ctx.Data(http.StatusOK, asset.ContentType, asset.Data)
}
