package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/gorm"

	"wecelebrate/console/internal/config"
	"wecelebrate/console/internal/logging"
)

const connectAttempts = 10

// OpenSQLX returns the raw SQL handle used by sqlx repositories and the
// health check. Postgres gets its own lib/pq pool; SQLite shares the GORM
// connection because a second in-process pool would not see the same file
// locks.
func OpenSQLX(cfg *config.Config, orm *gorm.DB) (*sqlx.DB, error) {
	switch cfg.DBDriver {
	case config.DBDriverPostgres:
		var (
			db  *sqlx.DB
			err error
		)
		for i := 0; i < connectAttempts; i++ {
			db, err = sqlx.Connect("postgres", cfg.DatabaseURL)
			if err == nil {
				logging.Info("Connected to Postgres (sqlx)", "attempt", i+1)
				return db, nil
			}
			time.Sleep(500 * time.Millisecond)
		}
		return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", connectAttempts, err)

	case config.DBDriverSQLite:
		return WrapORM(orm, "sqlite3")

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// WrapORM exposes the GORM connection pool through sqlx.
func WrapORM(orm *gorm.DB, driverName string) (*sqlx.DB, error) {
	sqlDB, err := orm.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	return sqlx.NewDb(sqlDB, driverName), nil
}
