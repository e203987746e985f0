// Package spotify looks up a track on the Spotify Web API and returns its raw
// audio features for live recommendations.
package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/temcen/songmatch/internal/config"
	"github.com/temcen/songmatch/pkg/models"
)

var (
	// ErrTrackNotFound is returned when a search matches no track.
	ErrTrackNotFound = errors.New("spotify: track not found")

	// ErrFeaturesUnavailable is returned when the API has no audio features
	// for the matched track.
	ErrFeaturesUnavailable = errors.New("spotify: audio features unavailable")

	// ErrMalformedFeatures is returned when the audio features payload is
	// incomplete or out of range.
	ErrMalformedFeatures = errors.New("spotify: malformed audio features")

	// ErrUnavailable is returned when the API cannot be reached or answers
	// with an unexpected status.
	ErrUnavailable = errors.New("spotify: service unavailable")
)

// Client is an HTTP client for the Spotify Web API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
	logger      *logrus.Logger
	features    *featureValidator
}

// Option configures a Client.
type Option func(*Client)

// WithRetry sets the attempt budget and base backoff for retried requests.
func WithRetry(maxRetries int, backoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseBackoff = backoff
	}
}

// WithLogger sets the logger used for retry warnings.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient constructs a client around an already authorized HTTP client.
func NewClient(httpClient *http.Client, baseURL string, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logrus.StandardLogger(),
		features:   newFeatureValidator(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig builds a client authorized with the client-credentials flow.
func NewFromConfig(ctx context.Context, cfg config.SpotifyConfig, logger *logrus.Logger) *Client {
	creds := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	httpClient := creds.Client(ctx)
	httpClient.Timeout = cfg.Timeout

	return NewClient(httpClient, cfg.BaseURL,
		WithRetry(cfg.MaxRetries, cfg.RetryBackoff),
		WithLogger(logger),
	)
}

// Lookup searches for query, takes the first matching track and fetches its
// audio features. No partial result is returned on failure.
func (c *Client) Lookup(ctx context.Context, query string) (*models.LiveTrack, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", ErrTrackNotFound)
	}

	track, err := c.searchTrack(ctx, query)
	if err != nil {
		return nil, err
	}

	features, err := c.audioFeatures(ctx, track.ID)
	if err != nil {
		return nil, err
	}

	live := mapTrack(track)
	live.Features = features
	return &live, nil
}

func (c *Client) searchTrack(ctx context.Context, query string) (spotifyTrack, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", "1")

	body, status, err := c.get(ctx, c.baseURL+"/search?"+params.Encode())
	if err != nil {
		return spotifyTrack{}, err
	}
	if status != http.StatusOK {
		return spotifyTrack{}, fmt.Errorf("%w: search status %d", ErrUnavailable, status)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return spotifyTrack{}, fmt.Errorf("%w: decode search: %v", ErrUnavailable, err)
	}
	if len(resp.Tracks.Items) == 0 || resp.Tracks.Items[0].ID == "" {
		return spotifyTrack{}, fmt.Errorf("%w: %q", ErrTrackNotFound, query)
	}

	return resp.Tracks.Items[0], nil
}

func (c *Client) audioFeatures(ctx context.Context, trackID string) (models.AudioFeatures, error) {
	body, status, err := c.get(ctx, c.baseURL+"/audio-features/"+url.PathEscape(trackID))
	if err != nil {
		return models.AudioFeatures{}, err
	}
	switch {
	case status == http.StatusNotFound || status == http.StatusForbidden:
		return models.AudioFeatures{}, fmt.Errorf("%w: track %s (status %d)", ErrFeaturesUnavailable, trackID, status)
	case status != http.StatusOK:
		return models.AudioFeatures{}, fmt.Errorf("%w: audio features status %d", ErrUnavailable, status)
	}

	if strings.TrimSpace(string(body)) == "null" {
		return models.AudioFeatures{}, fmt.Errorf("%w: track %s", ErrFeaturesUnavailable, trackID)
	}
	if err := c.features.validate(body); err != nil {
		return models.AudioFeatures{}, err
	}

	var payload spotifyAudioFeatures
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.AudioFeatures{}, fmt.Errorf("%w: %v", ErrMalformedFeatures, err)
	}

	return models.AudioFeatures{
		Danceability: payload.Danceability,
		Energy:       payload.Energy,
		Tempo:        payload.Tempo,
		Valence:      payload.Valence,
	}, nil
}

func (c *Client) get(ctx context.Context, target string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("spotify adapter: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	return body, resp.StatusCode, nil
}
