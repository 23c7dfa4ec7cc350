// Package pgsession provides a PostgreSQL session backend for the txbind
// transaction manager, built on pgx connection pooling.
package pgsession

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/n-r-w/bootstrap"
	"github.com/n-r-w/txbind"
	"github.com/n-r-w/txbind/txmgr"
)

// Pool service providing PostgreSQL sessions to the transaction manager.
// Implements bootstrap.IService and txmgr.ISessionSource.
type Pool struct {
	name           string
	restartPolicy  []backoff.RetryOption
	dsn            string
	afterStartFunc func(context.Context, *Pool) error

	config *pgxpool.Config
	pool   *pgxpool.Pool

	logger txbind.ILogger
}

var (
	_ bootstrap.IService   = (*Pool)(nil)
	_ txmgr.ISessionSource = (*Pool)(nil)
)

// New creates a new instance of Pool.
func New(opt ...Option) *Pool {
	p := &Pool{}

	for _, o := range opt {
		o(p)
	}

	if p.name == "" {
		p.name = "pgsession"
	}

	return p
}

// Start starts the service.
func (p *Pool) Start(ctx context.Context) (err error) {
	if p.logger != nil {
		p.logger.Debugf(ctx, "starting session pool %s", p.name)
	}

	defer func() {
		if err == nil && p.afterStartFunc != nil {
			err = p.afterStartFunc(ctx, p)
			if err != nil {
				err = fmt.Errorf("failed to run after start function: %w", err)
			}
		}
	}()

	if p.pool != nil { // pool supplied via WithPool
		return nil
	}

	var pool *pgxpool.Pool
	if p.config != nil {
		pool, err = pgxpool.NewWithConfig(ctx, p.config)
	} else {
		pool, err = pgxpool.New(ctx, p.dsn)
	}
	if err != nil {
		return fmt.Errorf("failed to create pgx pool for %s: %w", p.name, err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to connect to database %s: %w", p.name, err)
	}

	p.pool = pool

	if p.logger != nil {
		p.logger.Debugf(ctx, "session pool %s connected", p.name)
	}

	return nil
}

// Stop stops the service.
func (p *Pool) Stop(_ context.Context) error {
	if p.pool != nil {
		p.pool.Close()
	}

	return nil
}

// Info returns service information.
func (p *Pool) Info() bootstrap.Info {
	return bootstrap.Info{
		Name:          p.name,
		RestartPolicy: p.restartPolicy,
	}
}

// Acquire obtains a pooled connection wrapped as a transaction session.
// The returned release function puts the connection back into the pool;
// the transaction manager calls it only after restoration was attempted.
func (p *Pool) Acquire(ctx context.Context) (txmgr.ITxSession, txmgr.ReleaseFunc, error) {
	con, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	return NewSession(con), func() { con.Release() }, nil
}
