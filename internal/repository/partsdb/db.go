// Package partsdb provides read access to the parts mirror database: the
// FileMaker master and interchange tables replicated into SQL. Connection
// establishment walks an explicit, ordered strategy list; every failed
// attempt is logged with its reason before the next strategy is tried.
package partsdb

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"partflow/internal/config"
)

const pingTimeout = 5 * time.Second

// Connect tries each configured connection strategy in order and returns the
// first that answers a ping. If every strategy fails, the primary handle is
// returned un-pinged so the process can still start: each subsequent query
// fails individually and resolution degrades instead of crashing (the cache
// loads empty, existence checks read as negative).
func Connect(ctx context.Context, cfg *config.PartsDBConfig) (*sqlx.DB, error) {
	var firstErr error

	for i, s := range cfg.Strategies() {
		db, err := open(s, cfg)
		if err != nil {
			log.Printf("partsdb.Connect: strategy %d (%s) open failed: %v", i+1, s.Driver, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = db.PingContext(pingCtx)
		cancel()
		if err != nil {
			log.Printf("partsdb.Connect: strategy %d (%s) ping failed: %v", i+1, s.Driver, err)
			_ = db.Close()
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		log.Printf("partsdb.Connect: connected via strategy %d (%s)", i+1, s.Driver)
		return db, nil
	}

	// Degraded mode: keep a handle on the primary so later queries can
	// succeed once the database comes back.
	log.Printf("partsdb.Connect: all strategies failed, continuing degraded: %v", firstErr)
	db, err := open(cfg.Primary, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening degraded parts db handle: %w", err)
	}
	return db, nil
}

func open(s config.PartsDBDriverConfig, cfg *config.PartsDBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open(s.Driver, s.DSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	return db, nil
}
