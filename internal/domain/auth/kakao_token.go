package auth

import (
	"time"
)

// KakaoToken is the durable per-user credential record. UserID is the Kakao
// webhook user id, so one row per chat user.
//
// Invariant: Failed and JustAuthenticated are never both true. Writes go
// through KakaoTokenRepo, which maintains that.
type KakaoToken struct {
	UserID            string    `gorm:"primaryKey;column:user_id" json:"user_id"`
	AccessToken       string    `gorm:"not null;column:access_token" json:"access_token"`
	RefreshToken      string    `gorm:"column:refresh_token" json:"refresh_token"`
	ExpiresAt         time.Time `gorm:"column:expires_at" json:"expires_at"`
	Failed            bool      `gorm:"not null;default:false" json:"failed"`
	JustAuthenticated bool      `gorm:"not null;default:false" json:"just_authenticated"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

func (KakaoToken) TableName() string { return "kakao_token" }

func (t *KakaoToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
