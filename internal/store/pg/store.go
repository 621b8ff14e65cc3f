// Package pg implementa TenantRepository sobre PostgreSQL usando pgxpool.
package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store encapsula el pool de conexiones. El pool se cierra con Close();
// cada transacción devuelve su conexión al pool en todos los caminos de salida.
type Store struct {
	pool *pgxpool.Pool
}

// Options configura el pool.
type Options struct {
	MaxOpenConns int
	MaxIdleConns int
}

// New abre un pool contra el DSN dado y verifica conectividad con un ping.
func New(ctx context.Context, dsn string, opts Options) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: parse DSN: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(opts.MaxOpenConns)
	} else {
		poolCfg.MaxConns = 5
	}
	if opts.MaxIdleConns > 0 {
		poolCfg.MinConns = int32(opts.MaxIdleConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pg: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close cierra el pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
