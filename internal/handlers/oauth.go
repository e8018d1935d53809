package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authrepo "github.com/yungbote/shopbot-backend/internal/data/repos/auth"
	"github.com/yungbote/shopbot-backend/internal/platform/logger"
	"github.com/yungbote/shopbot-backend/internal/services"
)

const oauthSuccessPage = `<!DOCTYPE html>
<html lang="ko">
<head><meta charset="utf-8"><title>인증 완료</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 4rem;">
<h2>✅ 인증이 완료되었습니다</h2>
<p>카카오톡으로 돌아가 대화를 계속해 주세요.</p>
</body>
</html>`

const oauthFailurePage = `<!DOCTYPE html>
<html lang="ko">
<head><meta charset="utf-8"><title>인증 실패</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 4rem;">
<h2>❌ 인증에 실패했습니다</h2>
<p>카카오톡으로 돌아가 다시 시도해 주세요.</p>
</body>
</html>`

type OAuthHandler struct {
	kakao  services.KakaoAuth
	tokens authrepo.KakaoTokenRepo
	log    *logger.Logger
}

func NewOAuthHandler(kakao services.KakaoAuth, tokens authrepo.KakaoTokenRepo, baseLog *logger.Logger) *OAuthHandler {
	return &OAuthHandler{
		kakao:  kakao,
		tokens: tokens,
		log:    baseLog.With("handler", "OAuthHandler"),
	}
}

// Callback handles the Kakao authorize redirect: verify the signed state,
// exchange the code, persist the outcome, and show a human-facing page.
func (h *OAuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		h.log.Warn("oauth callback missing code or state")
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8", []byte(oauthFailurePage))
		return
	}

	userID, err := h.kakao.ParseState(state)
	if err != nil {
		h.log.Warn("oauth state rejected", "error", err)
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8", []byte(oauthFailurePage))
		return
	}

	exchanged, err := h.kakao.ExchangeCode(ctx, code)
	if err != nil {
		h.log.Error("token exchange failed", "user_id", userID, "error", err)
		if err := h.tokens.MarkFailed(ctx, userID); err != nil {
			h.log.Error("marking token failed state failed", "user_id", userID, "error", err)
		}
		c.Data(http.StatusBadGateway, "text/html; charset=utf-8", []byte(oauthFailurePage))
		return
	}

	if err := h.tokens.SaveExchanged(ctx, userID,
		exchanged.AccessToken, exchanged.RefreshToken, exchanged.ExpiresIn); err != nil {
		h.log.Error("persisting exchanged token failed", "user_id", userID, "error", err)
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(oauthFailurePage))
		return
	}

	h.kakao.SendMemo(ctx, exchanged.AccessToken,
		"✅ 쇼핑 도우미 인증이 완료되었습니다. 대화를 계속해 주세요!")

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(oauthSuccessPage))
}

// AuthURL returns a fresh authorize URL for a user id, for manual recovery.
func (h *OAuthHandler) AuthURL(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		RespondError(c, http.StatusBadRequest, "missing_user_id", nil)
		return
	}
	authURL, err := h.kakao.BuildAuthURL(userID)
	if err != nil {
		h.log.Error("building auth url failed", "user_id", userID, "error", err)
		RespondError(c, http.StatusInternalServerError, "auth_url_failed", err)
		return
	}
	RespondOK(c, gin.H{"auth_url": authURL})
}
