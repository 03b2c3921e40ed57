package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"admin-gateway/internal/broker"
	"admin-gateway/internal/models"
	"admin-gateway/internal/reconcile"
	"admin-gateway/internal/redisclient"
	"admin-gateway/internal/upstream"
	"admin-gateway/internal/util"

	"go.uber.org/zap"
)

var (
	// ErrNotConnected is returned when no upstream session is held.
	ErrNotConnected = errors.New("not connected to upstream API")
	// ErrOrderFrozen is returned for item mutations on confirmed/sent orders.
	ErrOrderFrozen = errors.New("order is confirmed or sent and can no longer be edited")
	// ErrOrderNotConfirmed is returned when sending an unconfirmed order.
	ErrOrderNotConfirmed = errors.New("order must be confirmed before it can be sent")
)

// Snapshot is an immutable view of the last-fetched upstream lists. It is
// replaced wholesale on refresh and passed explicitly into computations;
// no ambient mutable catalog state exists.
type Snapshot struct {
	Products   []models.Product   `json:"products"`
	Orders     []models.Order     `json:"orders"`
	Warehouses []models.Warehouse `json:"warehouses"`
	FetchedAt  time.Time          `json:"fetched_at"`
}

// Catalog builds the product-id index used by total reconciliation.
func (s *Snapshot) Catalog() map[int64]models.Product {
	return reconcile.CatalogIndex(s.Products)
}

// AdminService orchestrates the admin surface: session lifecycle, snapshot
// management, order operations, CRUD passthrough and report building.
// redis and audit are optional; a nil client degrades to uncached direct
// fetches and no audit trail.
type AdminService struct {
	gateway     *upstream.Client
	redis       *redisclient.Client
	audit       *broker.AuditPublisher
	reconciler  *reconcile.Reconciler
	snapshotTTL time.Duration
	logger      *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	gateway *upstream.Client,
	redis *redisclient.Client,
	audit *broker.AuditPublisher,
	reconciler *reconcile.Reconciler,
	snapshotTTL time.Duration,
) *AdminService {
	return &AdminService{
		gateway:     gateway,
		redis:       redis,
		audit:       audit,
		reconciler:  reconciler,
		snapshotTTL: snapshotTTL,
		logger:      util.GetLogger(),
	}
}

// Connect authorizes against the upstream API and persists the session
// token so a restarted gateway resumes the session.
func (s *AdminService) Connect(ctx context.Context, password string) error {
	token, err := s.gateway.Authorize(ctx, password)
	if err != nil {
		return err
	}

	if s.redis != nil {
		if err := s.redis.StoreSessionToken(ctx, token); err != nil {
			s.logger.Warn("Failed to persist session token", zap.Error(err))
		}
	}
	return nil
}

// RestoreSession loads a persisted session token, if any. Returns true
// when a session was restored.
func (s *AdminService) RestoreSession(ctx context.Context) bool {
	if s.redis == nil {
		return false
	}
	token, err := s.redis.LoadSessionToken(ctx)
	if err != nil {
		s.logger.Warn("Failed to load persisted session token", zap.Error(err))
		return false
	}
	if token == "" {
		return false
	}
	s.gateway.SetToken(token)
	s.logger.Info("Restored upstream session from cache")
	return true
}

// Disconnect logs out upstream and clears local session state.
func (s *AdminService) Disconnect(ctx context.Context) error {
	err := s.gateway.Logout(ctx)
	if s.redis != nil {
		_ = s.redis.ClearSessionToken(ctx)
		_ = s.redis.InvalidateSnapshot(ctx)
	}
	return err
}

// Connected reports whether an upstream session is held.
func (s *AdminService) Connected() bool {
	return s.gateway.Connected()
}

// LoadSnapshot returns the current catalog snapshot, from the redis cache
// when fresh, otherwise refetched from upstream. force bypasses the cache.
func (s *AdminService) LoadSnapshot(ctx context.Context, force bool) (*Snapshot, error) {
	ctx, span := util.StartSpan(ctx, "AdminService.LoadSnapshot")
	defer span.End()

	if !force && s.redis != nil {
		data, err := s.redis.LoadSnapshot(ctx)
		if err != nil {
			s.logger.Warn("Snapshot cache read failed, falling back to upstream", zap.Error(err))
		} else if data != nil {
			var snap Snapshot
			if err := json.Unmarshal(data, &snap); err != nil {
				s.logger.Warn("Discarding undecodable cached snapshot", zap.Error(err))
			} else {
				util.SnapshotCacheHitsTotal.Inc()
				return &snap, nil
			}
		}
	}
	util.SnapshotCacheMissesTotal.Inc()

	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		util.SnapshotRefreshTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	util.SnapshotRefreshTotal.WithLabelValues("ok").Inc()

	if s.redis != nil {
		if data, err := json.Marshal(snap); err == nil {
			if err := s.redis.StoreSnapshot(ctx, data, s.snapshotTTL); err != nil {
				s.logger.Warn("Failed to cache snapshot", zap.Error(err))
			}
		}
	}
	return snap, nil
}

// RefreshSnapshot refetches the snapshot and replaces the cache.
func (s *AdminService) RefreshSnapshot(ctx context.Context) error {
	_, err := s.LoadSnapshot(ctx, true)
	return err
}

func (s *AdminService) fetchSnapshot(ctx context.Context) (*Snapshot, error) {
	products, err := s.gateway.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.gateway.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	warehouses, err := s.gateway.ListWarehouses(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Products:   products,
		Orders:     orders,
		Warehouses: warehouses,
		FetchedAt:  time.Now(),
	}, nil
}

// invalidateSnapshot drops the cached snapshot after a mutation so the
// next read sees fresh upstream state.
func (s *AdminService) invalidateSnapshot(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.InvalidateSnapshot(ctx); err != nil {
		s.logger.Warn("Failed to invalidate snapshot cache", zap.Error(err))
	}
}
