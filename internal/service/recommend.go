package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/timmy/movierec/internal/domain"
	"github.com/timmy/movierec/internal/logger"
	"github.com/timmy/movierec/internal/metrics"
	"github.com/timmy/movierec/internal/poster"
	"github.com/timmy/movierec/internal/recommend"
	"github.com/timmy/movierec/internal/textvec"
)

var (
	// ErrInvalidRequest is wrapped by every request validation failure.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrMovieNotFound is returned by GetMovie for an unknown id.
	ErrMovieNotFound = errors.New("movie not found")
)

const (
	defaultListLimit = 20
	maxListLimit     = 200
	detailTopTerms   = 10
)

// RecommendConfig holds configuration for the recommend service.
type RecommendConfig struct {
	DefaultTopN       int
	MaxTopN           int
	ResolvePosters    bool
	PosterConcurrency int
	Placeholder       string
}

// RecommendService combines the recommender engine with poster lookups.
type RecommendService struct {
	engine      *recommend.Engine
	resolver    poster.Resolver
	logger      *logger.Logger
	defaultTopN int
	maxTopN     int
	posters     bool
	concurrency int
	placeholder string
}

// NewRecommendService creates a new recommend service.
// Parameters:
//   - engine: initialized recommender engine.
//   - resolver: poster resolver; nil disables poster lookups.
//   - log: logger instance.
//   - cfg: service configuration settings.
//
// Returns:
//   - *RecommendService: initialized service.
func NewRecommendService(
	engine *recommend.Engine,
	resolver poster.Resolver,
	log *logger.Logger,
	cfg *RecommendConfig,
) *RecommendService {
	if cfg == nil {
		cfg = &RecommendConfig{}
	}
	if resolver == nil {
		resolver = poster.NopResolver{}
	}
	if log == nil {
		log = logger.GetDefault()
	}
	s := &RecommendService{
		engine:      engine,
		resolver:    resolver,
		logger:      log.WithField(logger.FieldComponent, "recommend_service"),
		defaultTopN: cfg.DefaultTopN,
		maxTopN:     cfg.MaxTopN,
		posters:     cfg.ResolvePosters,
		concurrency: cfg.PosterConcurrency,
		placeholder: cfg.Placeholder,
	}
	if s.defaultTopN <= 0 {
		s.defaultTopN = recommend.DefaultTopN
	}
	if s.maxTopN < s.defaultTopN {
		s.maxTopN = s.defaultTopN
	}
	if s.placeholder == "" {
		s.placeholder = poster.DefaultPlaceholder
	}
	return s
}

// RecommendRequest represents a recommendation request.
type RecommendRequest struct {
	Title          string `json:"title"`
	TopN           int    `json:"top_n"`
	IncludePosters *bool  `json:"include_posters,omitempty"`
}

// RecommendationItem is one ranked movie in a response.
type RecommendationItem struct {
	ID           int                 `json:"id"`
	Title        string              `json:"title"`
	Overview     string              `json:"overview"`
	Rating       *float64            `json:"rating"`
	Score        float64             `json:"score"`
	PosterURL    string              `json:"poster_url,omitempty"`
	PosterStatus domain.PosterStatus `json:"poster_status,omitempty"`
}

// RecommendResponse represents a recommendation response.
// Found is false when the title is not in the catalog; it is true with an
// empty result list when the title exists but nothing else is in the catalog.
type RecommendResponse struct {
	Query   string               `json:"query"`
	Found   bool                 `json:"found"`
	Results []RecommendationItem `json:"results"`
	Total   int                  `json:"total"`
}

// Recommend validates req, ranks similar movies and attaches posters.
// Only validation failures produce an error; poster lookup failures degrade
// to the placeholder image.
func (s *RecommendService) Recommend(ctx context.Context, req *RecommendRequest) (*RecommendResponse, error) {
	if req == nil || strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidRequest)
	}
	topN := req.TopN
	switch {
	case topN == 0:
		topN = s.defaultTopN
	case topN < 0:
		return nil, fmt.Errorf("%w: top_n must be positive", ErrInvalidRequest)
	case topN > s.maxTopN:
		return nil, fmt.Errorf("%w: top_n must be at most %d", ErrInvalidRequest, s.maxTopN)
	}

	ctx = logger.WithField(ctx, logger.FieldTitle, req.Title)

	start := time.Now()
	_, found := s.engine.Catalog().Lookup(req.Title)
	recs := s.engine.Recommend(req.Title, topN)
	metrics.RecordRecommendation(found, len(recs), time.Since(start))

	items := make([]RecommendationItem, len(recs))
	for i, r := range recs {
		items[i] = RecommendationItem{
			ID:       r.Movie.ID,
			Title:    r.Movie.Title,
			Overview: r.Movie.Overview,
			Rating:   r.Movie.Rating,
			Score:    r.Score,
		}
	}

	withPosters := s.posters
	if req.IncludePosters != nil {
		withPosters = *req.IncludePosters
	}
	if withPosters && len(items) > 0 {
		s.attachPosters(ctx, items)
	}

	if !found {
		logger.CtxInfo(ctx, "Title not in catalog")
	}
	logger.With(logger.Fields{
		logger.FieldCount:      len(items),
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Debug(ctx, "Recommendation completed")

	return &RecommendResponse{
		Query:   req.Title,
		Found:   found,
		Results: items,
		Total:   len(items),
	}, nil
}

func (s *RecommendService) attachPosters(ctx context.Context, items []RecommendationItem) {
	titles := make([]string, len(items))
	for i, it := range items {
		titles[i] = it.Title
	}
	results := poster.ResolveAll(ctx, s.resolver, titles, s.concurrency)
	missing := 0
	for i, res := range results {
		items[i].PosterURL = res.ImageURL(s.placeholder)
		items[i].PosterStatus = res.Outcome
		if !res.Found() {
			missing++
		}
	}
	if missing > 0 {
		s.logger.WithFields(logger.Fields{
			logger.FieldRequestID: logger.GetRequestID(ctx),
			logger.FieldCount:     missing,
		}).Debug("Some posters fell back to the placeholder")
	}
}

// MovieSummary is a catalog entry in a list response.
type MovieSummary struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Rating *float64 `json:"rating"`
}

// MovieListResponse is a page of catalog titles.
type MovieListResponse struct {
	Movies []MovieSummary `json:"movies"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ListMovies returns catalog movies whose title contains query (case-insensitive),
// in catalog order. Total counts every match before paging.
func (s *RecommendService) ListMovies(query string, limit, offset int) *MovieListResponse {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	needle := strings.ToLower(strings.TrimSpace(query))

	var matches []MovieSummary
	for _, m := range s.engine.Catalog().Records() {
		if needle != "" && !strings.Contains(strings.ToLower(m.Title), needle) {
			continue
		}
		matches = append(matches, MovieSummary{ID: m.ID, Title: m.Title, Rating: m.Rating})
	}

	page := []MovieSummary{}
	if offset < len(matches) {
		end := offset + limit
		if end > len(matches) {
			end = len(matches)
		}
		page = matches[offset:end]
	}
	return &MovieListResponse{Movies: page, Total: len(matches), Limit: limit, Offset: offset}
}

// MovieDetail is a single catalog movie with its strongest TF-IDF terms.
type MovieDetail struct {
	domain.MovieRecord
	TopTerms     []textvec.WeightedTerm `json:"top_terms"`
	PosterURL    string                 `json:"poster_url,omitempty"`
	PosterStatus domain.PosterStatus    `json:"poster_status,omitempty"`
}

// GetMovie returns the movie with id.
func (s *RecommendService) GetMovie(ctx context.Context, id int, withPoster bool) (*MovieDetail, error) {
	rec, ok := s.engine.Catalog().Record(id)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrMovieNotFound, id)
	}
	vec, _ := s.engine.Vector(id)
	detail := &MovieDetail{
		MovieRecord: rec,
		TopTerms:    s.engine.Vocabulary().TopTerms(vec, detailTopTerms),
	}
	if withPoster {
		res := s.resolver.Resolve(ctx, rec.Title)
		detail.PosterURL = res.ImageURL(s.placeholder)
		detail.PosterStatus = res.Outcome
	}
	return detail, nil
}

// TopTerms returns the k highest weighted terms of the movie titled title.
func (s *RecommendService) TopTerms(title string, k int) ([]textvec.WeightedTerm, bool) {
	id, ok := s.engine.Catalog().Lookup(title)
	if !ok {
		return nil, false
	}
	vec, _ := s.engine.Vector(id)
	return s.engine.Vocabulary().TopTerms(vec, k), true
}

// SuggestTitles returns up to limit catalog titles closest to title by
// case-insensitive prefix, then substring match. It backs "did you mean"
// hints after a lookup miss; Recommend itself stays exact-match.
func (s *RecommendService) SuggestTitles(title string, limit int) []string {
	needle := strings.ToLower(strings.TrimSpace(title))
	if needle == "" || limit <= 0 {
		return []string{}
	}
	type hit struct {
		title  string
		prefix bool
		id     int
	}
	var hits []hit
	for i, t := range s.engine.Catalog().Titles() {
		lower := strings.ToLower(t)
		if !strings.Contains(lower, needle) {
			continue
		}
		hits = append(hits, hit{title: t, prefix: strings.HasPrefix(lower, needle), id: i})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].prefix != hits[j].prefix {
			return hits[i].prefix
		}
		return hits[i].id < hits[j].id
	})
	out := make([]string, 0, limit)
	for _, h := range hits {
		if len(out) == limit {
			break
		}
		out = append(out, h.title)
	}
	return out
}

// StatsResponse describes the loaded engine.
type StatsResponse struct {
	recommend.Stats
	PostersEnabled bool `json:"posters_enabled"`
	DefaultTopN    int  `json:"default_top_n"`
	MaxTopN        int  `json:"max_top_n"`
}

// GetStats returns engine statistics.
func (s *RecommendService) GetStats() *StatsResponse {
	_, disabled := s.resolver.(poster.NopResolver)
	return &StatsResponse{
		Stats:          s.engine.Stats(),
		PostersEnabled: !disabled && s.posters,
		DefaultTopN:    s.defaultTopN,
		MaxTopN:        s.maxTopN,
	}
}
