package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yungbote/shopbot-backend/internal/platform/logger"
	"github.com/yungbote/shopbot-backend/internal/platform/openai"
)

const maxValidateKeywords = 10

// Oracle is the uniform adapter over the external natural-language
// classifiers. Transport failures, unparseable answers and well-formed
// negatives all collapse to Fail with a user-safe message; the distinction
// only survives in logs.
type Oracle interface {
	// IsAffirmative reports whether the utterance agrees to proceed.
	// Uncertain (including transport failure) means no.
	IsAffirmative(ctx context.Context, utterance string) bool

	// ValidateKeywords selects up to ten candidate category keywords.
	ValidateKeywords(ctx context.Context, utterance string) Result[[]string]

	// RefineCategories narrows the expanded candidate map to at most two mid
	// keys with at most five details each (enforced by the classifier).
	RefineCategories(ctx context.Context, utterance string, expanded RecommendationMap) Result[RecommendationMap]

	// MatchCategory resolves the utterance against the last presented map.
	MatchCategory(ctx context.Context, utterance string, presented RecommendationMap) Result[CategoryMatch]

	// ClassifyChoice checks the utterance against candidate option lists and
	// returns the matched labels.
	ClassifyChoice(ctx context.Context, utterance string, candidates map[string][]string) Result[[]string]
}

type oracle struct {
	llm     openai.Client
	catalog *Catalog
	log     *logger.Logger
}

func NewOracle(llm openai.Client, cat *Catalog, baseLog *logger.Logger) Oracle {
	return &oracle{
		llm:     llm,
		catalog: cat,
		log:     baseLog.With("service", "Oracle"),
	}
}

func (o *oracle) IsAffirmative(ctx context.Context, utterance string) bool {
	user := fmt.Sprintf(affirmativeUserPrompt, strings.TrimSpace(utterance))
	content, err := o.llm.Complete(ctx, affirmativeSystemPrompt, user, 0.0)
	if err != nil {
		o.log.Warn("affirmative classifier call failed", "error", err)
		return false
	}
	return strings.HasPrefix(strings.ToUpper(stripFence(content)), "YES")
}

func (o *oracle) ValidateKeywords(ctx context.Context, utterance string) Result[[]string] {
	keywords := strings.Join(o.catalog.AllKeywords(), "\n")
	user := fmt.Sprintf(validateUserPrompt, keywords, utterance)

	content, err := o.llm.Complete(ctx, validateSystemPrompt, user, 0.2)
	if err != nil {
		o.log.Warn("validate classifier call failed", "error", err)
		return Fail[[]string](msgCategoryNotFound)
	}

	ok, rest, perr := parseTaggedArray(content)
	if perr != nil {
		o.log.Warn("validate classifier answer unparseable", "raw", content, "error", perr)
		return Fail[[]string](msgCategoryNotFound)
	}
	if !ok {
		return Fail[[]string](failMessage(rest, msgCategoryNotFound))
	}

	var selected []string
	for _, raw := range rest {
		var kw string
		if err := json.Unmarshal(raw, &kw); err != nil {
			o.log.Warn("validate classifier keyword not a string", "raw", content)
			return Fail[[]string](msgCategoryNotFound)
		}
		selected = append(selected, kw)
		if len(selected) == maxValidateKeywords {
			break
		}
	}
	if len(selected) == 0 {
		return Fail[[]string](msgCategoryNotFound)
	}
	return Ok(selected)
}

func (o *oracle) RefineCategories(ctx context.Context, utterance string, expanded RecommendationMap) Result[RecommendationMap] {
	var lines []string
	for _, g := range expanded {
		lines = append(lines, fmt.Sprintf("%s: %s", g.Mid, strings.Join(g.Details, ", ")))
	}
	user := fmt.Sprintf(refineUserPrompt, strings.Join(lines, "\n"), strings.TrimSpace(utterance))

	content, err := o.llm.Complete(ctx, refineSystemPrompt, user, 0.2)
	if err != nil {
		o.log.Warn("refine classifier call failed", "error", err)
		return Fail[RecommendationMap](msgServiceTrouble)
	}

	ok, rest, perr := parseTaggedArray(content)
	if perr != nil || (ok && len(rest) != 1) {
		o.log.Warn("refine classifier answer unparseable", "raw", content, "error", perr)
		return Fail[RecommendationMap](msgNotUnderstood)
	}
	if !ok {
		return Fail[RecommendationMap](failMessage(rest, msgNotUnderstood))
	}

	var refined RecommendationMap
	if err := json.Unmarshal(rest[0], &refined); err != nil || len(refined) == 0 {
		o.log.Warn("refine classifier payload invalid", "raw", content, "error", err)
		return Fail[RecommendationMap](msgNotUnderstood)
	}
	return Ok(refined)
}

func (o *oracle) MatchCategory(ctx context.Context, utterance string, presented RecommendationMap) Result[CategoryMatch] {
	presentedJSON, err := json.Marshal(presented)
	if err != nil {
		return Fail[CategoryMatch](msgServiceTrouble)
	}
	user := fmt.Sprintf(matchUserPrompt, string(presentedJSON), strings.TrimSpace(utterance))

	content, err := o.llm.Complete(ctx, matchSystemPrompt, user, 0.2)
	if err != nil {
		o.log.Warn("match classifier call failed", "error", err)
		return Fail[CategoryMatch](msgServiceTrouble)
	}

	ok, rest, perr := parseTaggedArray(content)
	if perr != nil || (ok && len(rest) != 1) {
		o.log.Warn("match classifier answer unparseable", "raw", content, "error", perr)
		return Fail[CategoryMatch](msgNotUnderstood)
	}
	if !ok {
		return Fail[CategoryMatch](failMessage(rest, msgNotUnderstood))
	}

	var pair []string
	if err := json.Unmarshal(rest[0], &pair); err != nil || len(pair) != 2 {
		o.log.Warn("match classifier payload invalid", "raw", content, "error", err)
		return Fail[CategoryMatch](msgNotUnderstood)
	}
	return Ok(CategoryMatch{MidKey: pair[0], DetailKey: pair[1]})
}

func (o *oracle) ClassifyChoice(ctx context.Context, utterance string, candidates map[string][]string) Result[[]string] {
	candidatesJSON, err := json.Marshal(candidates)
	if err != nil {
		return Fail[[]string](msgServiceTrouble)
	}
	user := fmt.Sprintf(choiceUserPrompt, string(candidatesJSON), strings.TrimSpace(utterance))

	content, err := o.llm.Complete(ctx, choiceSystemPrompt, user, 0.0)
	if err != nil {
		o.log.Warn("choice classifier call failed", "error", err)
		return Fail[[]string](msgServiceTrouble)
	}

	ok, rest, perr := parseTaggedArray(content)
	if perr != nil || (ok && len(rest) != 1) {
		o.log.Warn("choice classifier answer unparseable", "raw", content, "error", perr)
		return Fail[[]string](msgNotUnderstood)
	}
	if !ok {
		return Fail[[]string](failMessage(rest, msgNotUnderstood))
	}

	var matched []string
	if err := json.Unmarshal(rest[0], &matched); err != nil || len(matched) == 0 {
		o.log.Warn("choice classifier payload invalid", "raw", content, "error", err)
		return Fail[[]string](msgNotUnderstood)
	}
	return Ok(matched)
}

// stripFence removes a surrounding ```json / ```python code fence, which the
// classifiers emit despite instructions.
func stripFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.Trim(content, "`")
	content = strings.TrimSpace(content)
	lower := strings.ToLower(content)
	for _, lang := range []string{"json", "python"} {
		if strings.HasPrefix(lower, lang) {
			content = strings.TrimSpace(content[len(lang):])
			break
		}
	}
	return content
}

// parseTaggedArray parses the classifiers' common [bool, ...] answer shape.
func parseTaggedArray(content string) (ok bool, rest []json.RawMessage, err error) {
	var arr []json.RawMessage
	if err := json.Unmarshal([]byte(stripFence(content)), &arr); err != nil {
		return false, nil, err
	}
	if len(arr) == 0 {
		return false, nil, fmt.Errorf("empty classifier array")
	}
	var tag bool
	if err := json.Unmarshal(arr[0], &tag); err != nil {
		return false, nil, fmt.Errorf("classifier array must start with a bool: %w", err)
	}
	return tag, arr[1:], nil
}

// failMessage extracts the classifier's own user-facing message from a
// negative answer, falling back to def.
func failMessage(rest []json.RawMessage, def string) string {
	if len(rest) == 0 {
		return def
	}
	var msg string
	if err := json.Unmarshal(rest[0], &msg); err != nil || strings.TrimSpace(msg) == "" {
		return def
	}
	return msg
}
