package playlist

import (
	"context"
	stderrors "errors"
	"log/slog"
	"math/rand"
	"time"

	"playlist-server/internal/dataset"
	"playlist-server/internal/shared/errors"

	"github.com/google/uuid"
)

// DatasetViewer gives read access to the current mission graph
type DatasetViewer interface {
	View(fn func(*dataset.Dataset) error) error
}

// Response is a generated playlist with everything a client needs to show it
type Response struct {
	ID            string       `json:"id,omitempty"`
	ShareToken    string       `json:"shareToken,omitempty"`
	Seed          int64        `json:"seed"`
	Request       NamedRequest `json:"request"`
	DurationLabel string       `json:"durationLabel"`
	Result        Result       `json:"result"`
	Rendered      Rendered     `json:"rendered"`
}

type Service struct {
	datasets    DatasetViewer
	store       Store
	signer      *ShareSigner
	travel      TravelConfig
	maxDuration int
	logger      *slog.Logger

	newSeed func() int64
	newID   func() string
	now     func() time.Time
}

// NewService wires the generator. signer may be nil, which disables share
// tokens.
func NewService(datasets DatasetViewer, store Store, signer *ShareSigner, travel TravelConfig, maxDuration int, logger *slog.Logger) *Service {
	logger.Debug("Initializing playlist service",
		"max_duration", maxDuration,
		"sharing_enabled", signer != nil,
	)

	return &Service{
		datasets:    datasets,
		store:       store,
		signer:      signer,
		travel:      travel,
		maxDuration: maxDuration,
		logger:      logger,
		newSeed:     rand.Int63,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// Generate builds, stores and renders a playlist for a named request
func (s *Service) Generate(ctx context.Context, named NamedRequest) (*Response, error) {
	logger := s.logger.With("component", "playlist_service", "operation", "generate")

	seed := s.newSeed()
	if named.Seed != nil {
		seed = *named.Seed
	}
	named.Seed = nil

	resp, err := s.build(named, seed)
	if err != nil {
		return nil, err
	}

	stored := &Stored{
		ID:        s.newID(),
		Seed:      seed,
		Request:   named,
		Result:    resp.Result,
		CreatedAt: s.now(),
	}
	if err := s.store.Put(ctx, stored); err != nil {
		logger.Warn("Playlist generated but not stored", "error", err)
	} else {
		resp.ID = stored.ID
	}

	if s.signer != nil {
		token, err := s.signer.Sign(named, seed)
		if err != nil {
			logger.Warn("Failed to issue share token", "error", err)
		} else {
			resp.ShareToken = token
		}
	}

	logger.Info("Playlist generated",
		"playlist_id", resp.ID,
		"seed", seed,
		"duration", named.Duration,
		"alignment", named.Alignment,
		"entries", len(resp.Result.Entries),
		"total_time", resp.Result.TotalTime,
		"halt", resp.Result.Halt,
	)
	return resp, nil
}

// Get returns a stored playlist
func (s *Service) Get(ctx context.Context, id string) (*Response, error) {
	stored, err := s.store.Get(ctx, id)
	if stderrors.Is(err, ErrNotFound) {
		return nil, errors.NotFoundf("playlist %s not found", id)
	}
	if err != nil {
		return nil, errors.WrapExternal("failed to fetch playlist", err)
	}

	alignment, _ := ParseAlignment(stored.Request.Alignment)
	return &Response{
		ID:            stored.ID,
		Seed:          stored.Seed,
		Request:       stored.Request,
		DurationLabel: FormatDuration(stored.Request.Duration),
		Result:        stored.Result,
		Rendered:      Render(stored.Result, alignment),
	}, nil
}

// Shared regenerates the playlist described by a share token
func (s *Service) Shared(ctx context.Context, token string) (*Response, error) {
	if s.signer == nil {
		return nil, errors.NotFoundf("playlist sharing is disabled")
	}

	claims, err := s.signer.Parse(token)
	if err != nil {
		return nil, errors.WrapValidation("invalid share token", err)
	}

	resp, err := s.build(claims.Request, claims.Seed)
	if err != nil {
		return nil, err
	}
	resp.ShareToken = token
	return resp, nil
}

func (s *Service) build(named NamedRequest, seed int64) (*Response, error) {
	if s.maxDuration > 0 && named.Duration > s.maxDuration {
		return nil, errors.Validationf("duration must be at most %d minutes", s.maxDuration)
	}

	var result Result
	var alignment Alignment
	err := s.datasets.View(func(ds *dataset.Dataset) error {
		req, err := ResolveRequest(ds, named)
		if err != nil {
			return errors.WrapValidation("invalid playlist request", err)
		}
		alignment = req.Alignment
		result = Generate(ds, req, s.travel.Resolve(ds), rand.New(rand.NewSource(seed)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Response{
		Seed:          seed,
		Request:       named,
		DurationLabel: FormatDuration(named.Duration),
		Result:        result,
		Rendered:      Render(result, alignment),
	}, nil
}
