package pgsession

import (
	"context"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/n-r-w/txbind"
)

// Option option for Pool.
type Option func(*Pool)

// WithPool sets the connection pool when creating a Pool instance.
func WithPool(pool *pgxpool.Pool) Option {
	return func(p *Pool) {
		p.pool = pool
	}
}

// WithName sets service name.
func WithName(name string) Option {
	return func(p *Pool) {
		p.name = name
	}
}

// WithDSN sets DSN for database connection.
// If WithConfig is used, this option is ignored.
func WithDSN(dsn string) Option {
	return func(p *Pool) {
		p.dsn = dsn
	}
}

// WithConfig sets connection pool configuration.
func WithConfig(cfg *pgxpool.Config) Option {
	return func(p *Pool) {
		p.config = cfg
	}
}

// WithRestartPolicy sets service restart policy on error.
// Only works when using https://github.com/n-r-w/bootstrap
func WithRestartPolicy(policy ...backoff.RetryOption) Option {
	return func(p *Pool) {
		p.restartPolicy = policy
	}
}

// WithAfterStartFunc sets a function that will be called after successful service start.
func WithAfterStartFunc(f func(context.Context, *Pool) error) Option {
	return func(p *Pool) {
		p.afterStartFunc = f
	}
}

// WithLogger sets the logger.
func WithLogger(logger txbind.ILogger) Option {
	return func(p *Pool) {
		p.logger = logger
	}
}
