package services

import (
	"context"
	"fmt"
	"time"

	authrepo "github.com/yungbote/shopbot-backend/internal/data/repos/auth"
	"github.com/yungbote/shopbot-backend/internal/platform/logger"
)

// AuthDecision is the gate's verdict for one turn. When Proceed is false the
// Reply consumes the turn.
type AuthDecision struct {
	Proceed bool
	Reply   string
}

// AuthGate checks a user's Kakao token state before any conversation work.
type AuthGate interface {
	Evaluate(ctx context.Context, userID string) AuthDecision
}

type authGate struct {
	tokens   authrepo.KakaoTokenRepo
	kakao    KakaoAuth
	sessions *SessionStore
	log      *logger.Logger
}

func NewAuthGate(tokens authrepo.KakaoTokenRepo, kakao KakaoAuth, sessions *SessionStore, baseLog *logger.Logger) AuthGate {
	return &authGate{
		tokens:   tokens,
		kakao:    kakao,
		sessions: sessions,
		log:      baseLog.With("service", "AuthGate"),
	}
}

func (g *authGate) Evaluate(ctx context.Context, userID string) AuthDecision {
	token, err := g.tokens.Get(ctx, userID)
	if err != nil {
		// Unreadable token state blocks the turn the same way a missing
		// record does: the user gets a fresh auth link, never a stack trace.
		g.log.Error("token lookup failed", "user_id", userID, "error", err)
		return g.prompt(userID, msgAuthFirstVisit)
	}
	if token == nil {
		return g.prompt(userID, msgAuthFirstVisit)
	}
	if token.Failed {
		return g.prompt(userID, msgAuthRetry)
	}
	if token.Expired(time.Now()) {
		return g.prompt(userID, msgAuthExpired)
	}
	if token.JustAuthenticated {
		cleared, err := g.tokens.ClearJustAuthenticated(ctx, userID)
		if err != nil {
			g.log.Error("clearing just_authenticated failed", "user_id", userID, "error", err)
			return AuthDecision{Proceed: true}
		}
		if cleared {
			// Exactly one turn consumes the welcome; it also starts the
			// conversation over from a clean session.
			g.sessions.Reset(userID)
			return AuthDecision{Reply: msgAuthWelcome}
		}
	}
	return AuthDecision{Proceed: true}
}

func (g *authGate) prompt(userID, format string) AuthDecision {
	authURL, err := g.kakao.BuildAuthURL(userID)
	if err != nil {
		g.log.Error("building auth url failed", "user_id", userID, "error", err)
		return AuthDecision{Reply: msgServiceTrouble}
	}
	return AuthDecision{Reply: fmt.Sprintf(format, authURL)}
}
