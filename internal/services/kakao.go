package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/shopbot-backend/internal/platform/logger"
)

const (
	kakaoAuthorizeURL = "https://kauth.kakao.com/oauth/authorize"
	kakaoTokenURL     = "https://kauth.kakao.com/oauth/token"
	kakaoMemoURL      = "https://kapi.kakao.com/v2/api/talk/memo/default/send"

	oauthStateTTL = 10 * time.Minute
)

// TokenExchange is the result of a successful authorization-code exchange.
type TokenExchange struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// KakaoAuth handles the OAuth leg against Kakao: building the authorize URL
// with a signed state, verifying the state on callback, exchanging the code,
// and pushing a self-memo confirmation.
type KakaoAuth interface {
	// BuildAuthURL returns the authorize URL for the user, with the user id
	// carried in a signed, expiring state parameter.
	BuildAuthURL(userID string) (string, error)
	// ParseState verifies the state signature and expiry and returns the
	// embedded user id.
	ParseState(state string) (string, error)
	ExchangeCode(ctx context.Context, code string) (TokenExchange, error)
	// SendMemo posts a "talk memo" to the user's own chat using their access
	// token. Failure is logged, never surfaced to the OAuth flow.
	SendMemo(ctx context.Context, accessToken, text string)
}

type kakaoAuth struct {
	restAPIKey  string
	stateSecret []byte
	redirectURI string
	httpClient  *http.Client
	log         *logger.Logger
}

func NewKakaoAuth(restAPIKey, stateSecret, baseURL string, baseLog *logger.Logger) KakaoAuth {
	return &kakaoAuth{
		restAPIKey:  restAPIKey,
		stateSecret: []byte(stateSecret),
		redirectURI: strings.TrimRight(baseURL, "/") + "/oauth",
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		log:         baseLog.With("service", "KakaoAuth"),
	}
}

type stateClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func (k *kakaoAuth) BuildAuthURL(userID string) (string, error) {
	now := time.Now()
	claims := stateClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(oauthStateTTL)),
		},
	}
	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(k.stateSecret)
	if err != nil {
		return "", fmt.Errorf("sign oauth state: %w", err)
	}

	q := url.Values{}
	q.Set("client_id", k.restAPIKey)
	q.Set("redirect_uri", k.redirectURI)
	q.Set("response_type", "code")
	q.Set("scope", "talk_message")
	q.Set("state", state)
	return kakaoAuthorizeURL + "?" + q.Encode(), nil
}

func (k *kakaoAuth) ParseState(state string) (string, error) {
	var claims stateClaims
	_, err := jwt.ParseWithClaims(state, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return k.stateSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("verify oauth state: %w", err)
	}
	if claims.UserID == "" {
		return "", fmt.Errorf("oauth state has no user id")
	}
	return claims.UserID, nil
}

func (k *kakaoAuth) ExchangeCode(ctx context.Context, code string) (TokenExchange, error) {
	return k.exchangeAt(ctx, kakaoTokenURL, code)
}

func (k *kakaoAuth) exchangeAt(ctx context.Context, endpoint, code string) (TokenExchange, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", k.restAPIKey)
	form.Set("redirect_uri", k.redirectURI)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return TokenExchange{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return TokenExchange{}, fmt.Errorf("token exchange request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return TokenExchange{}, err
	}
	if resp.StatusCode != http.StatusOK {
		k.log.Warn("token exchange rejected", "status", resp.StatusCode)
		return TokenExchange{}, fmt.Errorf("token exchange status %d", resp.StatusCode)
	}

	var exchanged TokenExchange
	if err := json.Unmarshal(body, &exchanged); err != nil {
		return TokenExchange{}, fmt.Errorf("decode token exchange response: %w", err)
	}
	if exchanged.AccessToken == "" {
		return TokenExchange{}, fmt.Errorf("token exchange returned no access token")
	}
	return exchanged, nil
}

func (k *kakaoAuth) SendMemo(ctx context.Context, accessToken, text string) {
	template := map[string]any{
		"object_type": "text",
		"text":        text,
		"link":        map[string]any{},
	}
	templateJSON, err := json.Marshal(template)
	if err != nil {
		k.log.Warn("memo template marshal failed", "error", err)
		return
	}

	form := url.Values{}
	form.Set("template_object", string(templateJSON))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, kakaoMemoURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		k.log.Warn("memo request build failed", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := k.httpClient.Do(req)
	if err != nil {
		k.log.Warn("memo send failed", "error", err)
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode != http.StatusOK {
		k.log.Warn("memo send rejected", "status", resp.StatusCode)
		return
	}
	k.log.Debug("memo sent")
}
