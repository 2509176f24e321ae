package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timmy/movierec/internal/api/middleware"
	"github.com/timmy/movierec/internal/service"
)

// MovieHandler handles catalog browsing endpoints.
type MovieHandler struct {
	recommendService *service.RecommendService
}

// NewMovieHandler creates a new movie handler.
func NewMovieHandler(recommendService *service.RecommendService) *MovieHandler {
	return &MovieHandler{
		recommendService: recommendService,
	}
}

// ListMovies handles GET /api/v1/movies?q=&limit=&offset=.
func (h *MovieHandler) ListMovies(c *gin.Context) {
	limit, ok := nonNegativeQuery(c, "limit", 20)
	if !ok {
		return
	}
	offset, ok := nonNegativeQuery(c, "offset", 0)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.recommendService.ListMovies(c.Query("q"), limit, offset))
}

// GetMovie handles GET /api/v1/movies/:id.
func (h *MovieHandler) GetMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Movie ID must be an integer",
		})
		return
	}
	withPoster, err := strconv.ParseBool(c.DefaultQuery("posters", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'posters' must be a boolean",
		})
		return
	}

	movie, err := h.recommendService.GetMovie(c.Request.Context(), id, withPoster)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Movie not found",
			})
			return
		}
		middleware.GetLogger(c).WithError(err).WithField("movie_id", id).Error("Failed to get movie")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get movie: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, movie)
}

// nonNegativeQuery reads an optional integer query parameter. It writes a 400
// response and reports false when the value is malformed or negative.
func nonNegativeQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter '" + name + "' must be a non-negative integer",
		})
		return 0, false
	}
	return n, true
}
