package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/customer-portal/internal/domain"
	"github.com/spec-kit/customer-portal/internal/events"
	"github.com/spec-kit/customer-portal/internal/repository"
	apperrors "github.com/spec-kit/customer-portal/pkg/util"
)

// pendingCacheKey holds the cached pending listing consumed by the
// dashboard's polling loop.
const pendingCacheKey = "upgrade_requests:pending"

// pendingCacheTTL matches the frontend's 30s polling interval.
const pendingCacheTTL = 30 * time.Second

// UpgradeCache is the small cache capability the service needs; the Redis
// wrapper satisfies it, tests use an in-memory fake or nil.
type UpgradeCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// UpgradeService manages the tier upgrade approval workflow. Tier state is
// derived from the request history, so approval never writes to the customer
// record itself.
type UpgradeService struct {
	upgrades   repository.UpgradeRequestRepository
	cache      UpgradeCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// UpgradeDependencies bundles collaborators; Cache may be nil.
type UpgradeDependencies struct {
	UpgradeRepo repository.UpgradeRequestRepository
	Cache       UpgradeCache
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewUpgradeService constructs the service.
func NewUpgradeService(deps UpgradeDependencies) *UpgradeService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UpgradeService{
		upgrades:   deps.UpgradeRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Request opens a pending upgrade request, snapshotting the customer's
// current tier as the previous tier.
func (s *UpgradeService) Request(ctx context.Context, email, selectedTier string) (*domain.UpgradeRequest, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(selectedTier) == "" {
		return nil, apperrors.NewValidationError("email and selected tier required", nil)
	}

	previous := domain.DefaultTier
	if latest, err := s.upgrades.LatestByEmail(ctx, email); err == nil {
		if latest.NewTier != "" && latest.NewStorage != "" {
			previous = domain.TierPlan{Title: latest.NewTier, Storage: latest.NewStorage}
		} else if latest.SelectedTier != "" {
			previous = domain.InferTier(latest.SelectedTier)
		}
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	target := domain.InferTier(selectedTier)

	req := &domain.UpgradeRequest{
		Email:           email,
		PreviousTier:    previous.Title,
		PreviousStorage: previous.Storage,
		NewTier:         target.Title,
		NewStorage:      target.Storage,
		SelectedTier:    selectedTier,
		Status:          domain.UpgradeStatusPending,
	}
	if err := s.upgrades.Create(ctx, req); err != nil {
		return nil, err
	}
	s.invalidatePendingCache(ctx)

	s.publishEvent(ctx, events.Event{
		Type: events.EventUpgradeRequested,
		Payload: events.UpgradeRequestedPayload{
			RequestID: req.ID,
			Email:     req.Email,
			NewTier:   req.NewTier,
		},
	})
	return req, nil
}

// ListPending serves the pending listing, from cache when fresh.
func (s *UpgradeService) ListPending(ctx context.Context) ([]domain.UpgradeRequest, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, pendingCacheKey); err == nil && cached != "" {
			var result []domain.UpgradeRequest
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return result, nil
			}
		}
	}

	pending := domain.UpgradeStatusPending
	result, err := s.upgrades.List(ctx, &pending, 0, 0)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, pendingCacheKey, string(encoded), pendingCacheTTL); err != nil {
				s.logger.Debug("pending cache write failed", zap.Error(err))
			}
		}
	}
	return result, nil
}

// ListAll returns every request, newest first.
func (s *UpgradeService) ListAll(ctx context.Context, limit, offset int) ([]domain.UpgradeRequest, error) {
	return s.upgrades.List(ctx, nil, limit, offset)
}

// GetByID fetches a single request.
func (s *UpgradeService) GetByID(ctx context.Context, id string) (*domain.UpgradeRequest, error) {
	return s.upgrades.GetByID(ctx, id)
}

// Approve transitions pending→approved and stamps approved_at. Profile reads
// pick up the new tier from the request history.
func (s *UpgradeService) Approve(ctx context.Context, id string) (*domain.UpgradeRequest, error) {
	return s.resolve(ctx, id, domain.UpgradeStatusApproved)
}

// Reject transitions pending→rejected.
func (s *UpgradeService) Reject(ctx context.Context, id string) (*domain.UpgradeRequest, error) {
	return s.resolve(ctx, id, domain.UpgradeStatusRejected)
}

func (s *UpgradeService) resolve(ctx context.Context, id string, status domain.UpgradeStatus) (*domain.UpgradeRequest, error) {
	req, err := s.upgrades.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.UpgradeStatusPending {
		return nil, apperrors.NewConflict("request already resolved",
			map[string]any{"status": req.Status})
	}

	req.Status = status
	if status == domain.UpgradeStatusApproved {
		now := time.Now()
		req.ApprovedAt = &now
	}
	if err := s.upgrades.Update(ctx, req); err != nil {
		return nil, err
	}
	s.invalidatePendingCache(ctx)

	s.publishEvent(ctx, events.Event{
		Type: events.EventUpgradeResolved,
		Payload: events.UpgradeResolvedPayload{
			RequestID: req.ID,
			Email:     req.Email,
			NewTier:   req.NewTier,
			Status:    req.Status,
		},
	})
	return req, nil
}

func (s *UpgradeService) invalidatePendingCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, pendingCacheKey); err != nil {
		s.logger.Debug("pending cache invalidation failed", zap.Error(err))
	}
}

func (s *UpgradeService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
