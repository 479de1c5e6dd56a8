package http

import (
	"net/http"
	"strconv"

	"github.com/safak4545x/swifttube/domain/dto"
	"github.com/safak4545x/swifttube/usecase"

	"github.com/gin-gonic/gin"
)

// IPlaylistHandler defines the playlist HTTP handlers.
type IPlaylistHandler interface {
	PlaylistItems(ctx *gin.Context)
}

// PlaylistHandler implements the playlist HTTP handlers.
type PlaylistHandler struct {
	playlistUseCase usecase.IPlaylistUseCase
}

// NewPlaylistHandler creates a new playlist handler instance.
func NewPlaylistHandler(playlistUseCase usecase.IPlaylistUseCase) IPlaylistHandler {
	return &PlaylistHandler{playlistUseCase: playlistUseCase}
}

// PlaylistItems handles GET /api/playlists/:playlistId/items
func (h *PlaylistHandler) PlaylistItems(ctx *gin.Context) {
	playlistID := ctx.Param("playlistId")
	if playlistID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Playlist ID is required"})
		return
	}
	req := &dto.PlaylistItemsRequest{PlaylistID: playlistID}
	minCountRaw := ctx.Query("min_count")
	if minCountRaw == "" {
		minCountRaw = ctx.Query("minCount")
	}
	if minCountRaw != "" {
		if val, err := strconv.Atoi(minCountRaw); err == nil {
			req.MinCount = val
		}
	}
	req.Language, req.Region = localeParams(ctx)

	response, err := h.playlistUseCase.PlaylistItems(ctx.Request.Context(), req)
	if err != nil {
		// Empty is ambiguous with failure here, so the error surfaces.
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to get playlist items", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": response})
}
