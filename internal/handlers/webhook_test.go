package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/shopbot-backend/internal/data/repos/testutil"
)

type fakeConversation struct {
	lastUser      string
	lastUtterance string
}

func (f *fakeConversation) HandleTurn(ctx context.Context, userID, utterance string) string {
	f.lastUser = userID
	f.lastUtterance = utterance
	return "응답입니다"
}

func newWebhookRouter(t *testing.T, conv *fakeConversation) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/webhook", NewWebhookHandler(conv, testutil.Logger(t)).Handle)
	return router
}

func postWebhook(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestWebhookWrapsReplyInSkillEnvelope(t *testing.T) {
	conv := &fakeConversation{}
	router := newWebhookRouter(t, conv)

	body := `{"userRequest": {"utterance": "세차 용품", "user": {"id": "user-1"}}}`
	rec := postWebhook(t, router, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if conv.lastUser != "user-1" || conv.lastUtterance != "세차 용품" {
		t.Fatalf("turn routed wrong: user=%q utterance=%q", conv.lastUser, conv.lastUtterance)
	}

	var resp SkillResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response undecodable: %v", err)
	}
	if resp.Version != "2.0" {
		t.Fatalf("version = %q, want 2.0", resp.Version)
	}
	if len(resp.Template.Outputs) != 1 || resp.Template.Outputs[0].SimpleText.Text != "응답입니다" {
		t.Fatalf("envelope wrong: %+v", resp.Template)
	}
}

func TestWebhookMissingUserStillAnswers200(t *testing.T) {
	conv := &fakeConversation{}
	router := newWebhookRouter(t, conv)

	rec := postWebhook(t, router, `{"userRequest": {"utterance": "안녕"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if conv.lastUser != "" {
		t.Fatal("turn must not run without a user id")
	}

	var resp SkillResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response undecodable: %v", err)
	}
	if len(resp.Template.Outputs) != 1 || resp.Template.Outputs[0].SimpleText.Text == "" {
		t.Fatalf("expected apology text, got %+v", resp.Template)
	}
}

func TestWebhookGarbageBodyStillAnswers200(t *testing.T) {
	router := newWebhookRouter(t, &fakeConversation{})
	rec := postWebhook(t, router, `{not json`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
