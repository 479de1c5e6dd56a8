package http

import (
	"net/http"

	"github.com/safak4545x/swifttube/domain/dto"
	"github.com/safak4545x/swifttube/domain/model"
	"github.com/safak4545x/swifttube/infrastructure/coalescer"

	"github.com/gin-gonic/gin"
)

// IEnrichHandler exposes the batch coalescer to the frontend: it requests
// enrichment for displayed entities and polls the resulting events.
type IEnrichHandler interface {
	RequestChannels(ctx *gin.Context)
	RequestPlaylists(ctx *gin.Context)
	Events(ctx *gin.Context)
}

// enrichEvent is one delivered (kind, id, stats) update. The frontend owns
// the mutable displayed state and applies these in order.
type enrichEvent struct {
	Kind     string               `json:"kind"`
	Channel  *model.ChannelStats  `json:"channel,omitempty"`
	Playlist *model.PlaylistStats `json:"playlist,omitempty"`
}

// EnrichHandler implements the enrichment HTTP handlers.
type EnrichHandler struct {
	channels  *coalescer.Coalescer[model.ChannelStats]
	playlists *coalescer.Coalescer[model.PlaylistStats]
}

// NewEnrichHandler creates a new enrichment handler instance.
func NewEnrichHandler(
	channels *coalescer.Coalescer[model.ChannelStats],
	playlists *coalescer.Coalescer[model.PlaylistStats],
) IEnrichHandler {
	return &EnrichHandler{channels: channels, playlists: playlists}
}

// RequestChannels handles POST /api/enrich/channels
func (h *EnrichHandler) RequestChannels(ctx *gin.Context) {
	var req dto.EnrichRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}
	h.channels.Request(req.IDs...)
	ctx.JSON(http.StatusAccepted, gin.H{"success": true})
}

// RequestPlaylists handles POST /api/enrich/playlists
func (h *EnrichHandler) RequestPlaylists(ctx *gin.Context) {
	var req dto.EnrichRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}
	h.playlists.Request(req.IDs...)
	ctx.JSON(http.StatusAccepted, gin.H{"success": true})
}

// Events handles GET /api/enrich/events: it drains everything currently
// queued without blocking, keeping delivery order within each kind.
func (h *EnrichHandler) Events(ctx *gin.Context) {
	events := []enrichEvent{}
channels:
	for {
		select {
		case stats, ok := <-h.channels.Updates():
			if !ok {
				break channels
			}
			s := stats
			events = append(events, enrichEvent{Kind: "channel", Channel: &s})
		default:
			break channels
		}
	}
playlists:
	for {
		select {
		case stats, ok := <-h.playlists.Updates():
			if !ok {
				break playlists
			}
			s := stats
			events = append(events, enrichEvent{Kind: "playlist", Playlist: &s})
		default:
			break playlists
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": events})
}
