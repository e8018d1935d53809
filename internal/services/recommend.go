package services

import (
	"context"

	"github.com/yungbote/shopbot-backend/internal/platform/logger"
)

// Recommender runs the two classifier-backed pipelines of the conversation:
// building a recommendation map from a free-form request, and resolving the
// user's pick against the map that was shown.
type Recommender interface {
	// Recommend turns an utterance into the refined mid -> details map.
	// Fails closed: any stage failing fails the whole pipeline.
	Recommend(ctx context.Context, utterance string) Result[RecommendationMap]

	// PrepareSelection resolves the user's answer against the presented map
	// into a concrete crawl target.
	PrepareSelection(ctx context.Context, utterance string, presented RecommendationMap) Result[SelectionTarget]
}

type recommender struct {
	oracle  Oracle
	catalog *Catalog
	log     *logger.Logger
}

func NewRecommender(oracle Oracle, cat *Catalog, baseLog *logger.Logger) Recommender {
	return &recommender{
		oracle:  oracle,
		catalog: cat,
		log:     baseLog.With("service", "Recommender"),
	}
}

func (r *recommender) Recommend(ctx context.Context, utterance string) Result[RecommendationMap] {
	validated := r.oracle.ValidateKeywords(ctx, utterance)
	if !validated.OK {
		return Fail[RecommendationMap](validated.Message)
	}

	expanded := r.catalog.Expand(validated.Value)
	if len(expanded) == 0 {
		r.log.Warn("validated keywords expanded to nothing", "keywords", validated.Value)
		return Fail[RecommendationMap](msgCategoryNotFound)
	}

	refined := r.oracle.RefineCategories(ctx, utterance, expanded)
	if !refined.OK {
		return Fail[RecommendationMap](refined.Message)
	}
	return refined
}

func (r *recommender) PrepareSelection(ctx context.Context, utterance string, presented RecommendationMap) Result[SelectionTarget] {
	matched := r.oracle.MatchCategory(ctx, utterance, presented)
	if !matched.OK {
		return Fail[SelectionTarget](matched.Message)
	}

	pageURL, ok := r.catalog.ResolveURL(matched.Value.MidKey, matched.Value.DetailKey)
	if !ok {
		// The classifier confirmed a pair the structure cannot resolve.
		r.log.Warn("matched pair has no URL in the category structure",
			"mid_key", matched.Value.MidKey, "detail_key", matched.Value.DetailKey)
		return Fail[SelectionTarget](msgURLNotFound)
	}
	return Ok(SelectionTarget{
		MidKey:    matched.Value.MidKey,
		DetailKey: matched.Value.DetailKey,
		URL:       pageURL,
	})
}
