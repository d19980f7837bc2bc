package fabrication

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rshade/greenroi/internal/greenops"
)

// HTTP source defaults.
const (
	DefaultBaseURL = "https://api.boavizta.org"
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 1 << 20
)

// HTTP source errors.
var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrMissingValue     = errors.New("response has no embedded GWP value")
	ErrInvalidValue     = errors.New("embedded GWP value must be positive")
)

// DefaultArchetypes maps categories to Boavizta API paths. Categories not
// listed have no remote data.
func DefaultArchetypes() map[greenops.DeviceCategory]string {
	return map[greenops.DeviceCategory]string{
		greenops.CategoryLaptop:        "/v1/terminal/laptop",
		greenops.CategorySmartphone:    "/v1/terminal/smartphone",
		greenops.CategoryTablet:        "/v1/terminal/tablet",
		greenops.CategoryScreen:        "/v1/peripheral/monitor",
		greenops.CategoryMeetingScreen: "/v1/terminal/television",
	}
}

// impactResponse is the subset of the API payload we read.
type impactResponse struct {
	Impacts struct {
		GWP struct {
			Unit     string `json:"unit"`
			Embedded struct {
				Value *float64 `json:"value"`
			} `json:"embedded"`
		} `json:"gwp"`
	} `json:"impacts"`
}

// HTTPSource queries a Boavizta-compatible impact API.
type HTTPSource struct {
	baseURL    string
	client     *http.Client
	archetypes map[greenops.DeviceCategory]string
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = c }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) { s.client.Timeout = d }
}

// WithArchetypes replaces the category to path mapping.
func WithArchetypes(m map[greenops.DeviceCategory]string) HTTPOption {
	return func(s *HTTPSource) { s.archetypes = maps.Clone(m) }
}

// NewHTTPSource creates a source for baseURL, DefaultBaseURL when empty.
func NewHTTPSource(baseURL string, opts ...HTTPOption) *HTTPSource {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	s := &HTTPSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{Timeout: DefaultTimeout},
		archetypes: DefaultArchetypes(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Source.
func (s *HTTPSource) Name() string { return "boavizta" }

// Endpoint implements Endpointer.
func (s *HTTPSource) Endpoint() string { return s.baseURL }

// EmbodiedKg implements Source. The embedded GWP value is converted to kg
// from whatever unit the API reports.
func (s *HTTPSource) EmbodiedKg(ctx context.Context, c greenops.DeviceCategory) (float64, error) {
	path, ok := s.archetypes[c]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoArchetype, c)
	}

	u, err := url.Parse(s.baseURL + path)
	if err != nil {
		return 0, fmt.Errorf("building request URL: %w", err)
	}
	q := u.Query()
	q.Set("verbose", "false")
	q.Set("criteria", "gwp")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return 0, fmt.Errorf("%w %d from %s", ErrUnexpectedStatus, resp.StatusCode, path)
	}

	var payload impactResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decoding %s response: %w", path, err)
	}

	gwp := payload.Impacts.GWP
	if gwp.Embedded.Value == nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingValue, path)
	}
	unit := gwp.Unit
	if unit == "" {
		unit = "kg"
	}
	kg, err := greenops.NormalizeToKg(*gwp.Embedded.Value, unit)
	if err != nil {
		return 0, fmt.Errorf("normalizing %s response: %w", path, err)
	}
	if math.IsNaN(kg) || math.IsInf(kg, 0) || kg <= 0 {
		return 0, fmt.Errorf("%w: %g from %s", ErrInvalidValue, kg, path)
	}
	return kg, nil
}
