package auth

import (
	"fmt"
	"time"

	"github.com/giganoto/fast-beta/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevocationStore is the durable deny-list of tokens that must no
// longer be accepted, even while cryptographically valid.
type RevocationStore interface {
	// Contains reports whether the literal token string has been revoked.
	Contains(token string) (bool, error)
	// Record adds a token to the deny-list. Recording an
	// already-revoked token succeeds (idempotent).
	Record(token string) error
	// Sweep deletes records created before the cutoff and returns the
	// number of rows removed.
	Sweep(olderThan time.Time) (int64, error)
}

// GormRevocationStore keeps revoked tokens in the revoked_tokens table,
// keyed by the raw token string. Two different tokens for the same
// admin are tracked independently.
type GormRevocationStore struct {
	DB *gorm.DB
}

func NewRevocationStore(db *gorm.DB) *GormRevocationStore {
	return &GormRevocationStore{DB: db}
}

func (s *GormRevocationStore) Contains(token string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.RevokedToken{}).
		Where("token = ?", token).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: revocation lookup: %v", ErrStoreUnavailable, err)
	}
	return count > 0, nil
}

// Record 把 token 写入吊销表。重复登出直接视为成功，不报唯一键冲突。
func (s *GormRevocationStore) Record(token string) error {
	rec := models.RevokedToken{Token: token}
	err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&rec).Error
	if err != nil {
		// a failed write means the logout did not happen; callers may retry
		return fmt.Errorf("%w: record revocation: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *GormRevocationStore) Sweep(olderThan time.Time) (int64, error) {
	res := s.DB.Where("created_at < ?", olderThan).Delete(&models.RevokedToken{})
	if res.Error != nil {
		return 0, fmt.Errorf("%w: sweep revocations: %v", ErrStoreUnavailable, res.Error)
	}
	return res.RowsAffected, nil
}
