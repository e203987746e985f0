package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/temcen/songmatch/internal/analysis"
	"github.com/temcen/songmatch/internal/catalog"
	"github.com/temcen/songmatch/internal/config"
	"github.com/temcen/songmatch/internal/similarity"
	"github.com/temcen/songmatch/internal/spotify"
	"github.com/temcen/songmatch/pkg/models"
)

var (
	// ErrCatalogNotLoaded is returned by queries issued before the first
	// successful reload.
	ErrCatalogNotLoaded = errors.New("catalog not loaded")

	// ErrLiveLookupDisabled is returned by FromLive when no live lookup is
	// configured.
	ErrLiveLookupDisabled = errors.New("live lookup is not configured")
)

// Query modes, used as response labels and metric labels.
const (
	ModeSimilar  = "similar"
	ModeMood     = "mood"
	ModeFeatures = "features"
	ModeLive     = "live"
	ModeChart    = "chart"
)

// CatalogStats describes the active catalog.
type CatalogStats struct {
	Summary  *analysis.Summary `json:"summary"`
	Load     catalog.Stats     `json:"load"`
	LoadedAt time.Time         `json:"loaded_at"`
}

// snapshot is everything derived from one catalog load. It is never mutated
// after it is published.
type snapshot struct {
	space    *similarity.Space
	genres   []string
	summary  *analysis.Summary
	load     catalog.Stats
	loadedAt time.Time
}

// RecommendationService answers similarity queries over the active catalog.
// The catalog is swapped atomically on Reload; queries already running keep
// the snapshot they started with.
type RecommendationService struct {
	loader  CatalogLoader
	live    LiveLookup
	config  *config.RecommendationConfig
	logger  *logrus.Logger
	metrics *recommendationMetrics

	current  atomic.Pointer[snapshot]
	reloadMu sync.Mutex
}

// NewRecommendationService creates a service with no catalog loaded; call
// Reload before serving queries. live may be nil.
func NewRecommendationService(
	loader CatalogLoader,
	live LiveLookup,
	cfg *config.RecommendationConfig,
	logger *logrus.Logger,
) *RecommendationService {
	return &RecommendationService{
		loader:  loader,
		live:    live,
		config:  cfg,
		logger:  logger,
		metrics: newRecommendationMetrics(logger),
	}
}

// Loaded reports whether a catalog is active and how many songs it holds.
func (s *RecommendationService) Loaded() (bool, int) {
	snap := s.current.Load()
	if snap == nil {
		return false, 0
	}
	return true, snap.space.Len()
}

// LiveEnabled reports whether FromLive can be served.
func (s *RecommendationService) LiveEnabled() bool {
	return s.live != nil
}

// Reload reads the catalog again and publishes a fresh feature space. On
// failure the previous catalog stays active.
func (s *RecommendationService) Reload(ctx context.Context) (*catalog.Stats, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	snap, err := s.build(ctx)
	if err != nil {
		s.metrics.reloadsTotal.WithLabelValues("error").Inc()
		s.logger.WithError(err).Error("Catalog reload failed")
		return nil, err
	}

	s.current.Store(snap)
	s.metrics.reloadsTotal.WithLabelValues("ok").Inc()
	s.metrics.catalogSongs.Set(float64(snap.space.Len()))
	s.metrics.catalogGenres.Set(float64(len(snap.genres)))

	s.logger.WithFields(logrus.Fields{
		"songs":       snap.space.Len(),
		"genres":      len(snap.genres),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Feature space ready")

	load := snap.load
	return &load, nil
}

func (s *RecommendationService) build(ctx context.Context) (*snapshot, error) {
	songs, stats, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	space, err := similarity.NewSpace(songs)
	if err != nil {
		return nil, fmt.Errorf("build feature space: %w", err)
	}

	summary, err := analysis.Summarize(songs, s.config.TopGenres)
	if err != nil {
		return nil, fmt.Errorf("summarize catalog: %w", err)
	}

	counts := analysis.CountGenres(songs)
	genres := make([]string, len(counts))
	for i, c := range counts {
		genres[i] = c.Genre
	}
	sort.Slice(genres, func(i, j int) bool {
		return models.FoldKey(genres[i]) < models.FoldKey(genres[j])
	})

	return &snapshot{
		space:    space,
		genres:   genres,
		summary:  summary,
		load:     stats,
		loadedAt: time.Now().UTC(),
	}, nil
}

func (s *RecommendationService) active() (*snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrCatalogNotLoaded
	}
	return snap, nil
}

// SimilarTo ranks the catalog against an existing song, leaving the song
// itself out of the results.
func (s *RecommendationService) SimilarTo(ctx context.Context, id models.Identity, n int) (*models.RecommendationResponse, error) {
	start := time.Now()
	resp, err := s.similarTo(id, s.count(n))
	s.observe(ModeSimilar, start, err)
	return resp, err
}

func (s *RecommendationService) similarTo(id models.Identity, n int) (*models.RecommendationResponse, error) {
	snap, err := s.active()
	if err != nil {
		return nil, err
	}

	q, err := similarity.ByReference(snap.space, id)
	if err != nil {
		return nil, err
	}
	results, err := similarity.Rank(q.Vector, snap.space.All(), q.Exclude, n)
	if err != nil {
		return nil, err
	}

	seed := snap.space.Entry(q.Exclude).Identity
	return newResponse(ModeSimilar, &seed, results), nil
}

// ByMood ranks the songs of genre against the mood's synthesized vector.
func (s *RecommendationService) ByMood(ctx context.Context, mood, genre string, n int) (*models.RecommendationResponse, error) {
	start := time.Now()
	resp, err := s.byMood(mood, genre, s.count(n))
	s.observe(ModeMood, start, err)
	return resp, err
}

func (s *RecommendationService) byMood(mood, genre string, n int) (*models.RecommendationResponse, error) {
	snap, err := s.active()
	if err != nil {
		return nil, err
	}

	view := snap.space.Genre(genre)
	q, err := similarity.ByMood(mood, view)
	if err != nil {
		if errors.Is(err, similarity.ErrEmptyGenre) {
			return nil, fmt.Errorf("%w: %q", similarity.ErrEmptyGenre, strings.TrimSpace(genre))
		}
		return nil, err
	}
	results, err := similarity.Rank(q.Vector, view, q.Exclude, n)
	if err != nil {
		return nil, err
	}

	return newResponse(ModeMood, nil, results), nil
}

// ByFeatures ranks the whole catalog against a raw feature tuple.
func (s *RecommendationService) ByFeatures(ctx context.Context, raw models.AudioFeatures, n int) (*models.RecommendationResponse, error) {
	start := time.Now()
	resp, err := s.byFeatures(ModeFeatures, nil, raw, s.count(n))
	s.observe(ModeFeatures, start, err)
	return resp, err
}

func (s *RecommendationService) byFeatures(mode string, seed *models.Identity, raw models.AudioFeatures, n int) (*models.RecommendationResponse, error) {
	snap, err := s.active()
	if err != nil {
		return nil, err
	}

	q, err := similarity.ByFeatures(snap.space, raw)
	if err != nil {
		return nil, err
	}
	results, err := similarity.Rank(q.Vector, snap.space.All(), q.Exclude, n)
	if err != nil {
		return nil, err
	}

	return newResponse(mode, seed, results), nil
}

// FromLive looks query up with the live lookup and ranks the catalog against
// the matched track's features. Nothing is ranked when the lookup fails.
func (s *RecommendationService) FromLive(ctx context.Context, query string, n int) (*models.LiveRecommendationResponse, error) {
	start := time.Now()
	resp, err := s.fromLive(ctx, query, s.count(n))
	s.observe(ModeLive, start, err)
	return resp, err
}

func (s *RecommendationService) fromLive(ctx context.Context, query string, n int) (*models.LiveRecommendationResponse, error) {
	if s.live == nil {
		return nil, ErrLiveLookupDisabled
	}
	if _, err := s.active(); err != nil {
		return nil, err
	}

	track, err := s.live.Lookup(ctx, query)
	if err != nil {
		s.metrics.liveLookups.WithLabelValues("error").Inc()
		s.logger.WithError(err).WithField("query", query).Warn("Live lookup failed")
		return nil, err
	}
	s.metrics.liveLookups.WithLabelValues("ok").Inc()

	seed := models.Identity{Title: track.Title, Artist: track.Artist}
	resp, err := s.byFeatures(ModeLive, &seed, track.Features, n)
	if err != nil {
		return nil, err
	}

	return &models.LiveRecommendationResponse{
		RecommendationResponse: *resp,
		Track:                  *track,
	}, nil
}

// count applies the configured default and ceiling. Negative values pass
// through so the ranker rejects them.
func (s *RecommendationService) count(n int) int {
	if n == 0 {
		return s.config.DefaultCount
	}
	if s.config.MaxCount > 0 && n > s.config.MaxCount {
		return s.config.MaxCount
	}
	return n
}

func (s *RecommendationService) observe(mode string, start time.Time, err error) {
	elapsed := time.Since(start)
	outcome := outcomeOf(err)

	s.metrics.queriesTotal.WithLabelValues(mode, outcome).Inc()
	s.metrics.queryDuration.WithLabelValues(mode).Observe(elapsed.Seconds())

	entry := s.logger.WithFields(logrus.Fields{
		"mode":        mode,
		"outcome":     outcome,
		"duration_ms": float64(elapsed.Microseconds()) / 1000,
	})
	if err != nil {
		entry.WithError(err).Debug("Recommendation query rejected")
		return
	}
	entry.Debug("Recommendation query served")
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, similarity.ErrNotFound), errors.Is(err, spotify.ErrTrackNotFound):
		return "not_found"
	case errors.Is(err, similarity.ErrInvalidMood):
		return "invalid_mood"
	case errors.Is(err, similarity.ErrEmptyGenre):
		return "empty_genre"
	case errors.Is(err, similarity.ErrContractViolation), errors.Is(err, spotify.ErrMalformedFeatures):
		return "invalid_input"
	case errors.Is(err, ErrCatalogNotLoaded), errors.Is(err, ErrLiveLookupDisabled),
		errors.Is(err, spotify.ErrUnavailable), errors.Is(err, spotify.ErrFeaturesUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

func newResponse(mode string, seed *models.Identity, results []similarity.RankedResult) *models.RecommendationResponse {
	recs := make([]models.Recommendation, len(results))
	for i, r := range results {
		recs[i] = models.Recommendation{
			Position:   i + 1,
			Title:      r.Song.Title,
			Artist:     r.Song.Artist,
			Genre:      r.Song.Genre,
			Popularity: r.Song.Popularity,
			Similarity: r.Similarity,
		}
	}

	return &models.RecommendationResponse{
		QueryID:         uuid.New(),
		Mode:            mode,
		Seed:            seed,
		Recommendations: recs,
		GeneratedAt:     time.Now().UTC(),
	}
}
