package http

import (
	"net/http"
	"strconv"

	"github.com/safak4545x/swifttube/domain/dto"
	"github.com/safak4545x/swifttube/usecase"

	"github.com/gin-gonic/gin"
)

// ICommentHandler defines the comment HTTP handlers.
type ICommentHandler interface {
	VideoComments(ctx *gin.Context)
}

// CommentHandler implements the comment HTTP handlers.
type CommentHandler struct {
	commentUseCase usecase.ICommentUseCase
}

// NewCommentHandler creates a new comment handler instance.
func NewCommentHandler(commentUseCase usecase.ICommentUseCase) ICommentHandler {
	return &CommentHandler{commentUseCase: commentUseCase}
}

// VideoComments handles GET /api/videos/:videoId/comments
func (h *CommentHandler) VideoComments(ctx *gin.Context) {
	videoID := ctx.Param("videoId")
	if videoID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Video ID is required"})
		return
	}
	req := &dto.CommentListRequest{VideoID: videoID}
	maxResultsRaw := ctx.Query("max_results")
	if maxResultsRaw == "" {
		maxResultsRaw = ctx.Query("maxResults")
	}
	if maxResultsRaw != "" {
		if val, err := strconv.ParseInt(maxResultsRaw, 10, 64); err == nil {
			req.MaxResults = val
		}
	}
	pageToken := ctx.Query("page_token")
	if pageToken == "" {
		pageToken = ctx.Query("pageToken")
	}
	req.PageToken = pageToken
	req.Order = ctx.Query("order")

	response, err := h.commentUseCase.VideoComments(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get comments", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": response})
}
