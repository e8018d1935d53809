package domain

import (
	"github.com/yungbote/shopbot-backend/internal/domain/auth"
	"github.com/yungbote/shopbot-backend/internal/domain/spec"
)

type KakaoToken = auth.KakaoToken
type CategorySpec = spec.CategorySpec
