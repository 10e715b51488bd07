package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
	"github.com/rupsadmin/storefront-admin-go/internal/infra/observability"
	"github.com/rupsadmin/storefront-admin-go/internal/port"
)

var tracer = otel.Tracer("service")

const adminCacheKeyPrefix = "admin:"

// SessionResolver settles "who is signed in and are they an admin" into an
// immutable AuthState snapshot. It consumes auth events from the identity
// provider, verifies the admin flag against the canonical profile row, and
// auto-provisions a profile on first sign-in.
//
// The resolver is deliberately conservative: any verification failure resolves
// to IsAdmin=false with the cached flag dropped.
type SessionResolver struct {
	identity   port.IdentityProvider
	profiles   port.ProfileStore
	adminCache port.Cache[bool]
	metrics    *observability.Metrics
	logger     *zap.Logger

	initTimeout time.Duration

	mu          sync.RWMutex
	state       domain.AuthState
	initialized bool
	subs        []chan domain.AuthState

	events chan domain.AuthEvent
	done   chan struct{}
	once   sync.Once
}

// NewSessionResolver creates the resolver with all dependencies injected.
func NewSessionResolver(
	identity port.IdentityProvider,
	profiles port.ProfileStore,
	adminCache port.Cache[bool],
	metrics *observability.Metrics,
	logger *zap.Logger,
	initTimeout time.Duration,
) *SessionResolver {
	return &SessionResolver{
		identity:    identity,
		profiles:    profiles,
		adminCache:  adminCache,
		metrics:     metrics,
		logger:      logger,
		initTimeout: initTimeout,
		state:       domain.AuthState{Loading: true},
		events:      make(chan domain.AuthEvent, 8),
		done:        make(chan struct{}),
	}
}

// Start kicks off the initial session fetch, the event loop and the safety
// timeout. initialToken may be empty when no session was restored.
func (r *SessionResolver) Start(ctx context.Context, initialToken string) {
	go r.runInitialFetch(ctx, initialToken)
	go r.runEventLoop(ctx)
	go r.runSafetyTimeout()
}

// Stop shuts down the event loop. Idempotent.
func (r *SessionResolver) Stop() {
	r.once.Do(func() { close(r.done) })
}

// State returns the current snapshot.
func (r *SessionResolver) State() domain.AuthState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Subscribe returns a channel receiving every state change. Slow subscribers
// miss intermediate states, never the latest one.
func (r *SessionResolver) Subscribe() <-chan domain.AuthState {
	ch := make(chan domain.AuthState, 1)
	r.mu.Lock()
	r.subs = append(r.subs, ch)
	r.mu.Unlock()
	return ch
}

// Dispatch feeds an auth event into the resolver.
func (r *SessionResolver) Dispatch(ev domain.AuthEvent) {
	select {
	case r.events <- ev:
	case <-r.done:
	}
}

// SignOut revokes the session at the provider and clears local auth state.
// The state reset is synchronous; the caller observes a signed-out snapshot
// as soon as this returns.
func (r *SessionResolver) SignOut(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "SessionResolver.SignOut")
	defer span.End()

	r.mu.RLock()
	user := r.state.User
	r.mu.RUnlock()

	var signOutErr error
	if user != nil {
		signOutErr = r.identity.SignOut(ctx, user.AccessToken)
		r.adminCache.Delete(adminCacheKeyPrefix + user.UserID)
	}
	r.setState(domain.AuthState{User: nil, IsAdmin: false, Loading: false})
	return signOutErr
}

// CheckAdmin is the per-request authorization check used by the HTTP layer:
// cache first, canonical profile on miss. Fail closed on any error.
func (r *SessionResolver) CheckAdmin(ctx context.Context, session *domain.Session) (bool, error) {
	ctx, span := tracer.Start(ctx, "SessionResolver.CheckAdmin")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", session.UserID))

	key := adminCacheKeyPrefix + session.UserID
	if isAdmin, ok := r.adminCache.Get(key); ok {
		r.metrics.IncrCacheHit("admin_flag")
		return isAdmin, nil
	}
	r.metrics.IncrCacheMiss("admin_flag")

	isAdmin, err := r.verifyAdmin(ctx, session)
	if err != nil {
		r.adminCache.Delete(key)
		return false, err
	}
	r.adminCache.Set(key, isAdmin)
	return isAdmin, nil
}

// runInitialFetch resolves the restored session once at startup. If an auth
// event has already initialized the resolver by the time the fetch completes,
// the result is dropped to avoid double provisioning.
func (r *SessionResolver) runInitialFetch(ctx context.Context, initialToken string) {
	if initialToken == "" {
		r.settleIfUninitialized(ctx, nil)
		return
	}

	session, err := r.identity.GetSession(ctx, initialToken)
	if err != nil {
		r.logger.Warn("session resolver: initial session fetch failed", zap.Error(err))
		r.settleIfUninitialized(ctx, nil)
		return
	}
	r.settleIfUninitialized(ctx, session)
}

func (r *SessionResolver) settleIfUninitialized(ctx context.Context, session *domain.Session) {
	r.mu.Lock()
	if r.initialized {
		r.mu.Unlock()
		r.logger.Debug("session resolver: initial fetch superseded by auth event")
		return
	}
	r.initialized = true
	r.mu.Unlock()

	r.handleSession(ctx, session)
}

// runEventLoop applies auth events in arrival order.
func (r *SessionResolver) runEventLoop(ctx context.Context) {
	for {
		select {
		case <-r.done:
			return
		case <-ctx.Done():
			return
		case ev := <-r.events:
			r.mu.Lock()
			r.initialized = true
			r.mu.Unlock()

			r.logger.Debug("session resolver: auth event",
				zap.String("type", string(ev.Type)),
			)
			r.handleSession(ctx, ev.Session)
		}
	}
}

// runSafetyTimeout forces Loading=false after the deadline so the application
// never hangs on a wedged verification.
func (r *SessionResolver) runSafetyTimeout() {
	timer := time.NewTimer(r.initTimeout)
	defer timer.Stop()

	select {
	case <-r.done:
		return
	case <-timer.C:
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.state.Loading {
		return
	}
	r.logger.Warn("session resolver: init timeout reached, forcing loading=false")
	r.state.Loading = false
	r.notifyLocked()
}

// handleSession resolves a (possibly nil) session to a settled AuthState.
func (r *SessionResolver) handleSession(ctx context.Context, session *domain.Session) {
	if session == nil {
		r.mu.RLock()
		prev := r.state.User
		r.mu.RUnlock()
		if prev != nil {
			r.adminCache.Delete(adminCacheKeyPrefix + prev.UserID)
		}
		r.setState(domain.AuthState{User: nil, IsAdmin: false, Loading: false})
		return
	}

	key := adminCacheKeyPrefix + session.UserID

	// Cached flag unblocks the UI immediately; canonical verification below
	// always runs and wins.
	if cached, ok := r.adminCache.Get(key); ok {
		r.metrics.IncrCacheHit("admin_flag")
		r.setState(domain.AuthState{User: session, IsAdmin: cached, Loading: false})
	} else {
		r.metrics.IncrCacheMiss("admin_flag")
	}

	vctx := domain.WithAccessToken(ctx, session.AccessToken)
	isAdmin, err := r.verifyAdmin(vctx, session)
	if err != nil {
		r.logger.Error("session resolver: admin verification failed, resolving non-admin",
			zap.String("user_id", session.UserID),
			zap.Error(err),
		)
		r.adminCache.Delete(key)
		r.setState(domain.AuthState{User: session, IsAdmin: false, Loading: false})
		return
	}

	r.adminCache.Set(key, isAdmin)
	r.setState(domain.AuthState{User: session, IsAdmin: isAdmin, Loading: false})
}

// verifyAdmin reads the canonical profile row, provisioning one when missing.
// The very first profile in an empty install becomes the admin. Two first
// sign-ins racing can in principle both observe an empty table; accepted for
// a bootstrap that happens once per install.
func (r *SessionResolver) verifyAdmin(ctx context.Context, session *domain.Session) (bool, error) {
	profile, err := r.profiles.GetProfile(ctx, session.UserID)
	if err == nil {
		return profile.IsAdmin, nil
	}

	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		return false, err
	}

	count, err := r.profiles.CountProfiles(ctx)
	if err != nil {
		return false, err
	}
	isAdmin := count == 0

	created, err := r.profiles.CreateProfile(ctx, &domain.Profile{
		ID:        session.UserID,
		Email:     session.Email,
		FullName:  session.FullName,
		AvatarURL: session.AvatarURL,
		IsAdmin:   isAdmin,
	})
	if err != nil {
		return false, err
	}

	r.logger.Info("session resolver: provisioned profile",
		zap.String("user_id", created.ID),
		zap.Bool("is_admin", created.IsAdmin),
	)
	return created.IsAdmin, nil
}

func (r *SessionResolver) setState(s domain.AuthState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = s
	r.notifyLocked()
}

// notifyLocked pushes the current state to all subscribers, dropping stale
// undelivered snapshots. Callers hold r.mu.
func (r *SessionResolver) notifyLocked() {
	for _, ch := range r.subs {
		select {
		case ch <- r.state:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- r.state:
			default:
			}
		}
	}
}
