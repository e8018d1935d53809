package auth

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/shopbot-backend/internal/domain"
	"github.com/yungbote/shopbot-backend/internal/platform/logger"
)

type KakaoTokenRepo interface {
	// Get returns (nil, nil) when the user has no record.
	Get(ctx context.Context, userID string) (*types.KakaoToken, error)
	// SaveExchanged overwrites the record after a successful token exchange.
	// Sets just_authenticated and clears failed.
	SaveExchanged(ctx context.Context, userID, accessToken, refreshToken string, expiresIn int) error
	// MarkFailed records an exchange failure. Clears just_authenticated.
	MarkFailed(ctx context.Context, userID string) error
	// ClearJustAuthenticated flips the flag off and reports whether this call
	// was the one that cleared it (conditional update, so exactly-once).
	ClearJustAuthenticated(ctx context.Context, userID string) (bool, error)
}

type kakaoTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewKakaoTokenRepo(db *gorm.DB, baseLog *logger.Logger) KakaoTokenRepo {
	return &kakaoTokenRepo{db: db, log: baseLog.With("repo", "KakaoTokenRepo")}
}

func (r *kakaoTokenRepo) Get(ctx context.Context, userID string) (*types.KakaoToken, error) {
	var token types.KakaoToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *kakaoTokenRepo) SaveExchanged(ctx context.Context, userID, accessToken, refreshToken string, expiresIn int) error {
	now := time.Now().UTC()
	token := types.KakaoToken{
		UserID:            userID,
		AccessToken:       accessToken,
		RefreshToken:      refreshToken,
		ExpiresAt:         now.Add(time.Duration(expiresIn) * time.Second),
		Failed:            false,
		JustAuthenticated: true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"access_token", "refresh_token", "expires_at",
			"failed", "just_authenticated", "updated_at",
		}),
	}).Create(&token).Error
}

func (r *kakaoTokenRepo) MarkFailed(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	token := types.KakaoToken{
		UserID:            userID,
		Failed:            true,
		JustAuthenticated: false,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"failed", "just_authenticated", "updated_at",
		}),
	}).Create(&token).Error
}

func (r *kakaoTokenRepo) ClearJustAuthenticated(ctx context.Context, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&types.KakaoToken{}).
		Where("user_id = ? AND just_authenticated = ?", userID, true).
		Updates(map[string]any{
			"just_authenticated": false,
			"updated_at":         time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
