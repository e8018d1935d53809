package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/shopbot-backend/internal/platform/envutil"
	"github.com/yungbote/shopbot-backend/internal/platform/logger"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// New opens the bot database. Postgres when DB_DRIVER=postgres, otherwise a
// local SQLite file, which is enough for single-node deployments.
func New(logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "DBService")

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	cfg := &gorm.Config{Logger: gormLog}

	driver := envutil.String("DB_DRIVER", "sqlite")
	switch driver {
	case "postgres":
		dsn := envutil.String("DATABASE_URL", "")
		if dsn == "" {
			host := envutil.String("POSTGRES_HOST", "localhost")
			port := envutil.String("POSTGRES_PORT", "5432")
			user := envutil.String("POSTGRES_USER", "postgres")
			pass := envutil.String("POSTGRES_PASSWORD", "")
			name := envutil.String("POSTGRES_NAME", "shopbot")
			dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, port, name)
		}
		gdb, err := gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		return &Service{db: gdb, log: serviceLog}, nil
	case "sqlite":
		path := envutil.String("SQLITE_PATH", "shopbot.db")
		gdb, err := gorm.Open(sqlite.Open(path), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite at %s: %w", path, err)
		}
		return &Service{db: gdb, log: serviceLog}, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
}

func (s *Service) DB() *gorm.DB { return s.db }
