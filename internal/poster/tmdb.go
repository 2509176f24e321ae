package poster

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/timmy/movierec/internal/logger"
	"github.com/timmy/movierec/internal/metrics"
	"golang.org/x/time/rate"
)

var (
	errNoPoster = errors.New("no poster for title")

	// errCallerDone marks a lookup cut short by the caller's own context.
	// It says nothing about the health of the metadata service.
	errCallerDone = errors.New("caller context done")
)

// upstreamError is a non-2xx answer from the metadata service.
type upstreamError struct {
	status int
	body   string
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("tmdb returned status %d: %s", e.status, e.body)
}

// TMDBConfig holds configuration for the TMDB resolver.
type TMDBConfig struct {
	APIKey            string
	BaseURL           string
	ImageBaseURL      string
	PosterSize        string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	BreakerFailures   uint32
	BreakerCooldown   time.Duration
}

// TMDBResolver resolves posters through The Movie Database search API.
type TMDBResolver struct {
	client    *resty.Client
	baseURL   string
	imageBase string
	size      string
	apiKey    string
	timeout   time.Duration
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker[string]
}

// NewResolver returns a TMDBResolver, or a NopResolver when no API key is set.
func NewResolver(cfg *TMDBConfig) Resolver {
	if cfg == nil || cfg.APIKey == "" {
		logger.GetDefault().WithField(logger.FieldComponent, "poster").
			Warn("TMDB API key not configured, poster lookups disabled")
		return NopResolver{}
	}
	return NewTMDBResolver(cfg)
}

// NewTMDBResolver creates a TMDB resolver from cfg, filling defaults.
func NewTMDBResolver(cfg *TMDBConfig) *TMDBResolver {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.themoviedb.org/3"
	}
	imageBase := strings.TrimRight(cfg.ImageBaseURL, "/")
	if imageBase == "" {
		imageBase = "https://image.tmdb.org/t/p"
	}
	size := cfg.PosterSize
	if size == "" {
		size = "w500"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	cooldown := cfg.BreakerCooldown
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}

	client := resty.New()
	client.SetHeader("Accept", "application/json")

	log := logger.GetDefault().WithField(logger.FieldComponent, "poster")
	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "tmdb",
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// Titles without a poster and lookups abandoned by their caller are
		// not service failures.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errNoPoster) || errors.Is(err, errCallerDone)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logger.Fields{"from": from.String(), "to": to.String()}).
				Warn("Poster circuit breaker state changed")
			metrics.SetBreakerState(breakerStateValue(to))
		},
	})

	return &TMDBResolver{
		client:    client,
		baseURL:   baseURL,
		imageBase: imageBase,
		size:      size,
		apiKey:    cfg.APIKey,
		timeout:   timeout,
		limiter:   rate.NewLimiter(limit, burst),
		breaker:   breaker,
	}
}

func breakerStateValue(s gobreaker.State) int {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	}
	return 0
}

type searchResponse struct {
	Results []struct {
		ID         int64  `json:"id"`
		Title      string `json:"title"`
		PosterPath string `json:"poster_path"`
	} `json:"results"`
}

type movieDetails struct {
	ID         int64  `json:"id"`
	PosterPath string `json:"poster_path"`
}

// Resolve looks up title with a bounded timeout. It never panics and never
// returns an error; the cause of a miss is carried in the Result.
func (r *TMDBResolver) Resolve(ctx context.Context, title string) Result {
	start := time.Now()
	res := r.resolve(ctx, title)
	elapsed := time.Since(start)

	metrics.RecordPosterLookup(string(res.Outcome), elapsed)
	entry := logger.With(logger.Fields{
		logger.FieldComponent:  "poster",
		logger.FieldTitle:      title,
		logger.FieldOutcome:    string(res.Outcome),
		logger.FieldDurationMs: elapsed.Milliseconds(),
	})
	switch res.Outcome {
	case OutcomeFound:
		entry.Debug(ctx, "Poster resolved")
	case OutcomeNotFound:
		entry.Info(ctx, "No poster found")
	case OutcomeCanceled:
		entry.Debug(ctx, "Poster lookup abandoned by caller")
	default:
		entry.Warn(ctx, "Poster lookup failed: %v", res.Err)
	}
	return res
}

func (r *TMDBResolver) resolve(ctx context.Context, title string) Result {
	res := Result{Title: title}
	if strings.TrimSpace(title) == "" {
		res.Outcome = OutcomeNotFound
		res.Err = errNoPoster
		return res
	}

	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.limiter.Wait(ctx); err != nil {
		res.Err = fmt.Errorf("rate limiter: %w", err)
		switch {
		case errors.Is(err, context.Canceled):
			res.Outcome = OutcomeCanceled
		case errors.Is(err, context.DeadlineExceeded):
			res.Outcome = OutcomeTimeout
		default:
			res.Outcome = OutcomeRateLimited
		}
		return res
	}

	url, err := r.breaker.Execute(func() (string, error) {
		url, err := r.lookup(ctx, title)
		if err != nil && parent.Err() != nil {
			return "", fmt.Errorf("%w: %w", errCallerDone, err)
		}
		return url, err
	})
	if err != nil {
		res.Err = err
		res.Outcome = classify(err)
		return res
	}
	res.URL = url
	res.Outcome = OutcomeFound
	return res
}

// lookup searches by title and, when the best match carries no poster path,
// asks for the movie details by id.
func (r *TMDBResolver) lookup(ctx context.Context, title string) (string, error) {
	var search searchResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key": r.apiKey,
			"query":   title,
		}).
		SetResult(&search).
		Get(r.baseURL + "/search/movie")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", &upstreamError{status: resp.StatusCode(), body: truncate(resp.String(), 200)}
	}
	if len(search.Results) == 0 {
		return "", errNoPoster
	}

	first := search.Results[0]
	if first.PosterPath != "" {
		return r.imageURL(first.PosterPath), nil
	}
	if first.ID == 0 {
		return "", errNoPoster
	}

	var details movieDetails
	resp, err = r.client.R().
		SetContext(ctx).
		SetQueryParam("api_key", r.apiKey).
		SetResult(&details).
		Get(r.baseURL + "/movie/" + strconv.FormatInt(first.ID, 10))
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		if resp.StatusCode() == http.StatusNotFound {
			return "", errNoPoster
		}
		return "", &upstreamError{status: resp.StatusCode(), body: truncate(resp.String(), 200)}
	}
	if details.PosterPath == "" {
		return "", errNoPoster
	}
	return r.imageURL(details.PosterPath), nil
}

func (r *TMDBResolver) imageURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return r.imageBase + "/" + r.size + path
}

// classify maps a lookup error to its outcome tag.
func classify(err error) Outcome {
	var upstream *upstreamError
	var netErr net.Error
	switch {
	case errors.Is(err, errNoPoster):
		return OutcomeNotFound
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return OutcomeCircuitOpen
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case errors.As(err, &upstream):
		if upstream.status == http.StatusTooManyRequests {
			return OutcomeRateLimited
		}
		return OutcomeUpstreamError
	case errors.As(err, &netErr) && netErr.Timeout():
		return OutcomeTimeout
	}
	return OutcomeTransportError
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
