package http

import (
	"net/http"

	"github.com/safak4545x/swifttube/domain/dto"
	"github.com/safak4545x/swifttube/infrastructure/configuration"
	"github.com/safak4545x/swifttube/usecase"

	"github.com/gin-gonic/gin"
)

// IBrowseHandler defines the browse HTTP handlers.
type IBrowseHandler interface {
	Search(ctx *gin.Context)
	Related(ctx *gin.Context)
	ChannelVideos(ctx *gin.Context)
	ChannelInfo(ctx *gin.Context)
	Home(ctx *gin.Context)
}

// BrowseHandler maps query parameters onto the browse use case; all
// behavior lives below it.
type BrowseHandler struct {
	browseUseCase usecase.IBrowseUseCase
}

// NewBrowseHandler creates a new browse handler instance.
func NewBrowseHandler(browseUseCase usecase.IBrowseUseCase) IBrowseHandler {
	return &BrowseHandler{browseUseCase: browseUseCase}
}

// localeParams resolves hl/gl from the query with config defaults.
func localeParams(ctx *gin.Context) (string, string) {
	hl := ctx.Query("hl")
	if hl == "" {
		hl = configuration.C.Locale.Language
	}
	gl := ctx.Query("gl")
	if gl == "" {
		gl = configuration.C.Locale.Region
	}
	return hl, gl
}

// Search handles GET /api/search?q=...
func (h *BrowseHandler) Search(ctx *gin.Context) {
	q := ctx.Query("q")
	if q == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}
	hl, gl := localeParams(ctx)
	response, err := h.browseUseCase.Search(ctx.Request.Context(), &dto.SearchRequest{Q: q, Language: hl, Region: gl})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": response})
}

// Related handles GET /api/videos/:videoId/related
func (h *BrowseHandler) Related(ctx *gin.Context) {
	videoID := ctx.Param("videoId")
	if videoID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Video ID is required"})
		return
	}
	hl, gl := localeParams(ctx)
	response, err := h.browseUseCase.Related(ctx.Request.Context(), videoID, hl, gl)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get related videos", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": response})
}

// ChannelVideos handles GET /api/channels/:channelId/videos
func (h *BrowseHandler) ChannelVideos(ctx *gin.Context) {
	channelID := ctx.Param("channelId")
	if channelID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Channel ID is required"})
		return
	}
	hl, gl := localeParams(ctx)
	response, err := h.browseUseCase.ChannelVideos(ctx.Request.Context(), channelID, hl, gl)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get channel videos", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": response})
}

// ChannelInfo handles GET /api/channels/:channelId
func (h *BrowseHandler) ChannelInfo(ctx *gin.Context) {
	channelID := ctx.Param("channelId")
	if channelID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Channel ID is required"})
		return
	}
	hl, gl := localeParams(ctx)
	channel, err := h.browseUseCase.ChannelInfo(ctx.Request.Context(), channelID, hl, gl)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get channel info", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": channel})
}

// Home handles GET /api/home
func (h *BrowseHandler) Home(ctx *gin.Context) {
	hl, gl := localeParams(ctx)
	response, err := h.browseUseCase.Home(ctx.Request.Context(), hl, gl)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build home feed", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": response})
}
