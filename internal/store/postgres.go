package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rangvaar/rangvaar-backend/internal/engine"
)

// matchRecord is the single table the backend owns. The engine state lives
// in a jsonb column; version backs the conditional update.
type matchRecord struct {
	ID        string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	State     datatypes.JSON `gorm:"not null" json:"state"`
	Version   int            `gorm:"not null;default:0" json:"version"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (matchRecord) TableName() string { return "matches" }

// Postgres is the production MatchStore on gorm + pgx.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&matchRecord{}); err != nil {
		return nil, fmt.Errorf("migrate matches table: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Create(ctx context.Context, matchID string, state engine.MatchState) (int, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return 0, fmt.Errorf("encode match %s: %w", matchID, err)
	}
	rec := matchRecord{ID: matchID, State: datatypes.JSON(data), Version: 0}
	if err := p.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrAlreadyExists
		}
		return 0, fmt.Errorf("create match %s: %w", matchID, err)
	}
	return 0, nil
}

func (p *Postgres) Load(ctx context.Context, matchID string) (engine.MatchState, int, error) {
	var rec matchRecord
	err := p.db.WithContext(ctx).First(&rec, "id = ?", matchID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return engine.MatchState{}, 0, ErrNotFound
	}
	if err != nil {
		return engine.MatchState{}, 0, fmt.Errorf("load match %s: %w", matchID, err)
	}
	var state engine.MatchState
	if err := json.Unmarshal(rec.State, &state); err != nil {
		return engine.MatchState{}, 0, fmt.Errorf("decode match %s: %w", matchID, err)
	}
	return state, rec.Version, nil
}

// Commit bumps the version only when it still matches: zero rows affected
// means a concurrent writer got there first.
func (p *Postgres) Commit(ctx context.Context, matchID string, expectedVersion int, next engine.MatchState) (int, error) {
	data, err := json.Marshal(next)
	if err != nil {
		return 0, fmt.Errorf("encode match %s: %w", matchID, err)
	}
	res := p.db.WithContext(ctx).
		Model(&matchRecord{}).
		Where("id = ? AND version = ?", matchID, expectedVersion).
		Updates(map[string]any{
			"state":   datatypes.JSON(data),
			"version": expectedVersion + 1,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("commit match %s: %w", matchID, res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := p.db.WithContext(ctx).Model(&matchRecord{}).Where("id = ?", matchID).Count(&count).Error; err != nil {
			return 0, fmt.Errorf("commit match %s: %w", matchID, err)
		}
		if count == 0 {
			return 0, ErrNotFound
		}
		return 0, ErrVersionConflict
	}
	return expectedVersion + 1, nil
}
