package session

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
)

var _ Store = (*GormStore)(nil)

// Record is the persisted form of a session. The session id never touches
// the database: rows are keyed by its blake2b digest.
type Record struct {
	IDHash    string `gorm:"primaryKey;size:64"`
	Token     string `gorm:"type:text;not null"`
	UserJSON  string `gorm:"type:text"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index"`
}

func (Record) TableName() string { return "web_sessions" }

// GormStore persists sessions through gorm (sqlite or postgres).
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the sessions table and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate sessions: %w", err)
	}
	return &GormStore{db: db}, nil
}

func hashID(id string) string {
	sum := blake2b.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}

func (g *GormStore) Save(ctx context.Context, s *Session) error {
	user, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	rec := Record{
		IDHash:    hashID(s.ID),
		Token:     s.Token,
		UserJSON:  string(user),
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
	if err := g.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (g *GormStore) Get(ctx context.Context, id string) (*Session, error) {
	var rec Record
	err := g.db.WithContext(ctx).First(&rec, "id_hash = ?", hashID(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	s := &Session{
		ID:        id,
		Token:     rec.Token,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}
	if rec.UserJSON != "" {
		var u models.User
		if err := json.Unmarshal([]byte(rec.UserJSON), &u); err != nil {
			return nil, fmt.Errorf("decode session user: %w", err)
		}
		s.User = u
	}
	return s, nil
}

func (g *GormStore) Delete(ctx context.Context, id string) error {
	if err := g.db.WithContext(ctx).Delete(&Record{}, "id_hash = ?", hashID(id)).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (g *GormStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := g.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&Record{})
	if res.Error != nil {
		return 0, fmt.Errorf("sweep sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
