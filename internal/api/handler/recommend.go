package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timmy/movierec/internal/api/middleware"
	"github.com/timmy/movierec/internal/logger"
	"github.com/timmy/movierec/internal/service"
)

const suggestionLimit = 5

// RecommendHandler handles recommendation endpoints.
type RecommendHandler struct {
	recommendService *service.RecommendService
}

// NewRecommendHandler creates a new recommend handler.
// Parameters:
//   - recommendService: recommend service instance.
// Returns:
//   - *RecommendHandler: initialized handler.
func NewRecommendHandler(recommendService *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{
		recommendService: recommendService,
	}
}

// recommendResponse adds title suggestions to a lookup miss.
type recommendResponse struct {
	*service.RecommendResponse
	Suggestions []string `json:"suggestions,omitempty"`
}

// Recommend handles POST /api/v1/recommend.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req service.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}
	h.respond(c, &req)
}

// RecommendGet handles GET /api/v1/recommend?title=&top_n=&posters=.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *RecommendHandler) RecommendGet(c *gin.Context) {
	title, ok := c.GetQuery("title")
	if !ok || title == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'title' is required",
		})
		return
	}

	req := service.RecommendRequest{Title: title}
	if raw := c.Query("top_n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Query parameter 'top_n' must be an integer",
			})
			return
		}
		req.TopN = n
	}
	if raw := c.Query("posters"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Query parameter 'posters' must be a boolean",
			})
			return
		}
		req.IncludePosters = &b
	}
	h.respond(c, &req)
}

func (h *RecommendHandler) respond(c *gin.Context, req *service.RecommendRequest) {
	result, err := h.recommendService.Recommend(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		middleware.GetLogger(c).WithError(err).Error("Recommendation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Recommendation failed: " + err.Error(),
		})
		return
	}

	resp := recommendResponse{RecommendResponse: result}
	if !result.Found {
		resp.Suggestions = h.recommendService.SuggestTitles(req.Title, suggestionLimit)
		middleware.GetLogger(c).WithFields(logger.Fields{
			logger.FieldTitle: req.Title,
			"suggestions":     len(resp.Suggestions),
		}).Info("Title not in catalog")
	}
	c.JSON(http.StatusOK, resp)
}

// GetStats handles GET /api/v1/stats.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *RecommendHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.recommendService.GetStats())
}
