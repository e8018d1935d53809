package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kakao skill response envelope (v2.0), simpleText output only.

type SimpleText struct {
	Text string `json:"text"`
}

type SkillOutput struct {
	SimpleText SimpleText `json:"simpleText"`
}

type SkillTemplate struct {
	Outputs []SkillOutput `json:"outputs"`
}

type SkillResponse struct {
	Version  string        `json:"version"`
	Template SkillTemplate `json:"template"`
}

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondSkillText wraps plain text in the Kakao skill envelope. Always 200:
// the bot platform treats non-200 as a broken skill, so even internal faults
// answer with apology text.
func RespondSkillText(c *gin.Context, text string) {
	c.JSON(http.StatusOK, SkillResponse{
		Version: "2.0",
		Template: SkillTemplate{
			Outputs: []SkillOutput{{SimpleText: SimpleText{Text: text}}},
		},
	})
}
