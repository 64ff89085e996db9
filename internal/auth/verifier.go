package auth

import (
	"errors"
	"fmt"

	"github.com/giganoto/fast-beta/internal/models"

	"gorm.io/gorm"
)

// Verifier resolves a presented token to an Admin. Checks run in a
// fixed order and the first failure wins:
//
//  1. token absent            -> ErrTokenMissing
//  2. deny-listed             -> ErrTokenRevoked
//  3. signature mismatch      -> ErrBadSignature
//  4. past expiry             -> ErrTokenExpired
//  5. subject not provisioned -> ErrAdminNotFound
//
// The revocation check deliberately runs before any cryptographic
// check: a logged-out token stays rejected for its whole natural
// lifetime.
type Verifier struct {
	secret []byte
	store  RevocationStore
	db     *gorm.DB
}

func NewVerifier(secret string, store RevocationStore, db *gorm.DB) *Verifier {
	return &Verifier{secret: []byte(secret), store: store, db: db}
}

// Verify validates the token and returns the resolved admin. The raw
// token is kept by the caller for the duration of the request so that
// logout can revoke exactly the credential it was invoked with.
func (v *Verifier) Verify(tokenStr string) (*models.Admin, error) {
	if tokenStr == "" {
		return nil, ErrTokenMissing
	}

	revoked, err := v.store.Contains(tokenStr)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	claims, err := parseClaims(v.secret, tokenStr)
	if err != nil {
		return nil, err
	}

	// 每次请求都按邮箱重新解析身份，令牌本身不携带管理员 ID
	var admin models.Admin
	err = v.db.Where("email = ?", claims.Subject).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("%w: admin lookup: %v", ErrStoreUnavailable, err)
	}

	return &admin, nil
}
