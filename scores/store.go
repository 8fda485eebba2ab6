package scores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Record is one finished single-player round
type Record struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey"`
	Map       string    `gorm:"index"`
	Mode      string
	Score     int
	Cars      int
	CreatedAt time.Time
}

// Store persists round results in SQLite
type Store struct {
	db     *gorm.DB
	Logger zerolog.Logger
}

// NewStore opens (or creates) the score database at path.
// An empty path uses an in-memory database.
func NewStore(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open score db: %w", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate score db: %w", err)
	}
	log.Debug().Str("path", path).Msg("score db ready")
	return &Store{db: db, Logger: log}, nil
}

// Save stores rec, assigning an ID and timestamp when missing
func (s *Store) Save(ctx context.Context, rec *Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		s.Logger.Error().Err(err).Str("map", rec.Map).Msg("Failed to save score")
		return fmt.Errorf("save score: %w", err)
	}
	s.Logger.Info().Str("map", rec.Map).Int("score", rec.Score).Msg("score saved")
	return nil
}

// Top returns the n best records for a map, highest first, oldest first on ties
func (s *Store) Top(ctx context.Context, mapName string, n int) ([]Record, error) {
	var recs []Record
	err := s.db.WithContext(ctx).
		Where("map = ?", mapName).
		Order("score DESC").
		Order("created_at ASC").
		Limit(n).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("top scores: %w", err)
	}
	return recs, nil
}

// Best returns the highest record for a map and whether one exists
func (s *Store) Best(ctx context.Context, mapName string) (Record, bool, error) {
	var rec Record
	err := s.db.WithContext(ctx).
		Where("map = ?", mapName).
		Order("score DESC").
		Order("created_at ASC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("best score: %w", err)
	}
	return rec, true, nil
}

// Close releases the database
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
