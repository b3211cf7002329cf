package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// DefaultKey is the fixed storage key for the cart session id.
const DefaultKey = "sessionId"

// Provider resolves the session id once per process and caches it.
type Provider struct {
	store    Store
	key      string
	logg     *logger.Logger
	generate func() (string, error)

	mu sync.Mutex
	id string
}

// NewProvider binds a provider to store. An empty key falls back to DefaultKey.
func NewProvider(store Store, key string, logg *logger.Logger) *Provider {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Provider{store: store, key: key, logg: logg, generate: Generate}
}

// SessionID returns the persisted id, creating and storing one on first access.
func (p *Provider) SessionID(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.id != "" {
		return p.id, nil
	}

	existing, err := p.store.Get(ctx, p.key)
	switch {
	case err == nil && existing != "":
		p.id = existing
		return p.id, nil
	case err != nil && !errors.Is(err, ErrNotFound):
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read session id")
	}

	candidate, err := p.generate()
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate session id")
	}
	stored, err := p.store.SetIfAbsent(ctx, p.key, candidate)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist session id")
	}
	p.id = stored
	p.logg.Info(p.logg.WithSessionID(ctx, stored), "session.created")
	return p.id, nil
}
