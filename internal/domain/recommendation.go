package domain

// Recommendation pairs a catalog record with its similarity to the query title.
type Recommendation struct {
	Movie MovieRecord `json:"movie"`
	Score float64     `json:"score"`
}

// PosterStatus is the string form of a poster lookup outcome as exposed to clients.
type PosterStatus string

const (
	PosterFound          PosterStatus = "found"
	PosterNotFound       PosterStatus = "not_found"
	PosterTimeout        PosterStatus = "timeout"
	PosterTransportError PosterStatus = "transport_error"
	PosterUpstreamError  PosterStatus = "upstream_error"
	PosterRateLimited    PosterStatus = "rate_limited"
	PosterCircuitOpen    PosterStatus = "circuit_open"
	PosterCanceled       PosterStatus = "canceled"
	PosterDisabled       PosterStatus = "disabled"
	PosterSkipped        PosterStatus = "skipped"
)
