package workflow

import (
	"sync"
	"time"

	"github.com/andreyxaxa/Image-To-3D/internal/infrastructure"
	"github.com/andreyxaxa/Image-To-3D/internal/repo"
	"github.com/andreyxaxa/Image-To-3D/internal/usecase"
	"github.com/andreyxaxa/Image-To-3D/pkg/logger"
)

// Registry keeps one Controller per browser session.
type Registry struct {
	converter infrastructure.Converter
	assets    repo.AssetRepo
	idleTTL   time.Duration
	opts      []Option
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Controller

	logger logger.Interface
}

func NewRegistry(
	converter infrastructure.Converter,
	assets repo.AssetRepo,
	idleTTL time.Duration,
	l logger.Interface,
	opts ...Option,
) *Registry {
	r := &Registry{
		converter: converter,
		assets:    assets,
		idleTTL:   idleTTL,
		opts:      opts,
		now:       newSettings(opts).now,
		sessions:  make(map[string]*Controller),
		logger:    l,
	}

	return r
}

// Session returns the controller of session id, creating it on first use.
func (r *Registry) Session(id string) usecase.WorkflowUseCase {
	return r.controller(id)
}

func (r *Registry) controller(id string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.sessions[id]
	if !ok {
		c = New(r.converter, r.assets, r.logger, r.opts...)
		r.sessions[id] = c

		r.logger.Debug("Registry - Session - new session, total = %d", len(r.sessions))
	}

	return c
}

// ExpireIdle closes sessions unseen for longer than the idle TTL. Sessions
// with a conversion in flight are kept until it resolves.
func (r *Registry) ExpireIdle() int {
	if r.idleTTL <= 0 {
		return 0
	}

	deadline := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	var expired []*Controller
	for id, c := range r.sessions {
		lastSeen, busy := c.idleSince()
		if busy || lastSeen.After(deadline) {
			continue
		}
		expired = append(expired, c)
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	for _, c := range expired {
		c.Close()
	}

	if len(expired) > 0 {
		r.logger.Info("expired idle sessions, count = %d", len(expired))
	}

	return len(expired)
}

func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Controller)
	r.mu.Unlock()

	for _, c := range sessions {
		c.Close()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}
