package server

import (
	"net/http"
	"time"

	httpHandler "github.com/safak4545x/swifttube/interfaces/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// InitiateRouter wires the local API consumed by the desktop frontend.
func InitiateRouter(
	browseHandler httpHandler.IBrowseHandler,
	playlistHandler httpHandler.IPlaylistHandler,
	commentHandler httpHandler.ICommentHandler,
	enrichHandler httpHandler.IEnrichHandler,
	settingsHandler httpHandler.ISettingsHandler,
	assetHandler httpHandler.IAssetHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "http://localhost:5173", "app://swifttube"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("api")
	{
		api.GET("/search", browseHandler.Search)
		api.GET("/home", browseHandler.Home)
		api.GET("/videos/:videoId/related", browseHandler.Related)
		api.GET("/videos/:videoId/comments", commentHandler.VideoComments)
		api.GET("/channels/:channelId", browseHandler.ChannelInfo)
		api.GET("/channels/:channelId/videos", browseHandler.ChannelVideos)
		api.GET("/playlists/:playlistId/items", playlistHandler.PlaylistItems)
		api.GET("/assets", assetHandler.Asset)

		api.POST("/enrich/channels", enrichHandler.RequestChannels)
		api.POST("/enrich/playlists", enrichHandler.RequestPlaylists)
		api.GET("/enrich/events", enrichHandler.Events)

		api.GET("/settings", settingsHandler.GetSettings)
		api.PUT("/settings", settingsHandler.SaveSettings)
		api.POST("/cache/clear", settingsHandler.ClearCache)
	}

	return router
}
