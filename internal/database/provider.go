package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrUnavailable is returned when no database connection can be obtained
var ErrUnavailable = errors.New("database unavailable")

// Provider owns at most one pooled connection for the lifetime of a request.
// The connection is opened on the first Acquire and closed by Release.
type Provider struct {
	db *DB

	mu   sync.Mutex
	conn *Conn
}

// NewProvider creates a provider backed by the given pool
func NewProvider(db *DB) *Provider {
	return &Provider{db: db}
}

// Acquire returns the connection attached to this provider, reusing it while
// it still answers a ping and opening a new one otherwise. Connection failures
// are reported as ErrUnavailable.
func (p *Provider) Acquire(ctx context.Context) (*Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn != nil {
		if err := p.conn.PingContext(ctx); err == nil {
			return p.conn, nil
		}
		p.conn.Close()
		p.conn = nil
	}

	if p.db == nil {
		return nil, ErrUnavailable
	}

	conn, err := p.db.DB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	p.conn = &Conn{Conn: conn, dialect: p.db.Dialect}
	return p.conn, nil
}

// Release closes and detaches the connection. Calling it with nothing
// attached is a no-op.
func (p *Provider) Release() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return nil
	}

	err := p.conn.Close()
	p.conn = nil
	return err
}

type providerKey struct{}

// WithProvider returns a copy of ctx carrying p
func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

// ProviderFromContext returns the provider stored in ctx, or nil
func ProviderFromContext(ctx context.Context) *Provider {
	p, _ := ctx.Value(providerKey{}).(*Provider)
	return p
}

// Acquire obtains the request's connection from the provider stored in ctx
func Acquire(ctx context.Context) (*Conn, error) {
	p := ProviderFromContext(ctx)
	if p == nil {
		return nil, fmt.Errorf("%w: no connection provider in context", ErrUnavailable)
	}
	return p.Acquire(ctx)
}
