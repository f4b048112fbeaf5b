package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	adoptiontypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/failure"
)

const defaultLockWait = 2 * time.Second

// LockKey is the per-pet key serialising adoption requests.
func LockKey(petID string) string {
	return "adoption:pet:" + petID
}

// Service is the adoption workflow engine shared by every transport.
type Service struct {
	saga             *Saga
	orchestrator     ports.WorkflowOrchestrator
	locker           ports.Locker
	publisher        ports.EventPublisher
	logger           *slog.Logger
	lockWait         time.Duration
	reverseOnRemoval bool
	now              func() time.Time
}

// Option customises the service.
type Option func(*Service)

// WithOrchestrator runs the check-and-write sequence through o instead of in process.
func WithOrchestrator(o ports.WorkflowOrchestrator) Option {
	return func(s *Service) {
		if o != nil {
			s.orchestrator = o
		}
	}
}

// WithLocker serialises requests for the same pet.
func WithLocker(l ports.Locker) Option {
	return func(s *Service) { s.locker = l }
}

// WithLockWait bounds how long a request waits for the per-pet lock.
func WithLockWait(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.lockWait = d
		}
	}
}

// WithPublisher emits adoption events after each committed change.
func WithPublisher(p ports.EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithLogger injects the logger used for non fatal failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithReversalOnRemoval makes RemoveAdoption also release the pet and detach it from the user.
func WithReversalOnRemoval(enabled bool) Option {
	return func(s *Service) { s.reverseOnRemoval = enabled }
}

// WithEventClock overrides the event timestamp source.
func WithEventClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the engine. Without an orchestrator the saga runs in process.
func NewService(saga *Saga, opts ...Option) *Service {
	s := &Service{
		saga:         saga,
		orchestrator: saga,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		lockWait:     defaultLockWait,
		now:          time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// RequestAdoption links an eligible user to an available pet.
func (s *Service) RequestAdoption(ctx context.Context, input adoptiontypes.RequestAdoptionInput) (*adoptiontypes.AdoptionProjection, error) {
	if strings.TrimSpace(input.UserID) == "" || strings.TrimSpace(input.PetID) == "" {
		return nil, mapError(domain.ErrMissingFields)
	}
	unlock, err := s.lock(ctx, input.PetID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	saved, err := s.orchestrator.RequestAdoption(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}
	s.publish(ctx, domain.EventAdoptionRequested, saved.Entity)
	return saved, nil
}

// RemoveAdoption deletes an adoption record. The pet flag and the user's pets are only
// restored when reversal on removal is enabled.
func (s *Service) RemoveAdoption(ctx context.Context, input adoptiontypes.AdoptionIdentifier) error {
	current, err := s.load(ctx, input.ID)
	if err != nil {
		return err
	}
	adoption := current.Entity
	if s.reverseOnRemoval {
		unlock, err := s.lock(ctx, adoption.PetID)
		if err != nil {
			return err
		}
		defer unlock()
	}
	if err := s.saga.Remove(ctx, adoption, s.reverseOnRemoval); err != nil {
		return err
	}
	s.publish(ctx, domain.EventAdoptionRemoved, adoption)
	return nil
}

// GetAdoption loads one adoption record.
func (s *Service) GetAdoption(ctx context.Context, input adoptiontypes.AdoptionIdentifier) (*adoptiontypes.AdoptionProjection, error) {
	return s.load(ctx, input.ID)
}

// ListAdoptions returns every adoption record.
func (s *Service) ListAdoptions(ctx context.Context) ([]*adoptiontypes.AdoptionProjection, error) {
	result, err := s.saga.stores.Adoptions.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func (s *Service) load(ctx context.Context, id string) (*adoptiontypes.AdoptionProjection, error) {
	found, err := s.saga.stores.Adoptions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, mapError(domain.ErrAdoptionNotFound)
		}
		return nil, mapError(err)
	}
	return found, nil
}

func (s *Service) lock(ctx context.Context, petID string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()
	unlock, err := s.locker.Lock(lockCtx, LockKey(petID))
	if err != nil {
		if errors.Is(err, ports.ErrLockHeld) || errors.Is(err, context.DeadlineExceeded) {
			return nil, mapError(domain.ErrAdoptionInProgress)
		}
		return nil, failure.Internal(err)
	}
	return func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to release adoption lock",
				slog.String("pet.id", petID),
				slog.String("error", err.Error()),
			)
		}
	}, nil
}

func (s *Service) publish(ctx context.Context, eventType domain.EventType, adoption *domain.Adoption) {
	if s.publisher == nil || adoption == nil {
		return
	}
	event := domain.NewEvent(eventType, adoption, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to publish adoption event",
			slog.String("event.type", string(eventType)),
			slog.String("adoption.id", adoption.ID),
			slog.String("error", err.Error()),
		)
	}
}

var _ ports.Service = (*Service)(nil)
