package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/shopbot-backend/internal/platform/logger"
)

// Conversation is the per-turn orchestration core: auth gate, stage dispatch,
// session mutation, reply text. Every turn terminates in a well-formed reply;
// no internal fault escapes past HandleTurn.
type Conversation interface {
	HandleTurn(ctx context.Context, userID, utterance string) string
}

type conversation struct {
	sessions    *SessionStore
	gate        AuthGate
	recommender Recommender
	oracle      Oracle
	cache       SpecCache
	crawler     Crawler
	writes      SpecWriteQueue
	log         *logger.Logger
}

func NewConversation(
	sessions *SessionStore,
	gate AuthGate,
	recommender Recommender,
	oracle Oracle,
	cache SpecCache,
	crawler Crawler,
	writes SpecWriteQueue,
	baseLog *logger.Logger,
) Conversation {
	return &conversation{
		sessions:    sessions,
		gate:        gate,
		recommender: recommender,
		oracle:      oracle,
		cache:       cache,
		crawler:     crawler,
		writes:      writes,
		log:         baseLog.With("service", "Conversation"),
	}
}

func (c *conversation) HandleTurn(ctx context.Context, userID, utterance string) string {
	// Turns for one user are strictly serialized; different users run freely.
	unlock := c.sessions.LockUser(userID)
	defer unlock()

	decision := c.gate.Evaluate(ctx, userID)
	if !decision.Proceed {
		return decision.Reply
	}

	session := c.sessions.Get(userID)
	session.LastUserInput = utterance
	session.Record("user", utterance)

	var reply string
	switch session.Stage {
	case StageDiscover:
		reply = c.handleDiscover(ctx, session, utterance)
	case StageConfirmMap:
		reply = c.handleConfirmMap(ctx, session, utterance)
	case StageConfirmCrawl:
		reply = c.handleConfirmCrawl(ctx, session, utterance)
	case StageDrillDown:
		reply = c.handleDrillDown(ctx, session, utterance)
	default:
		// Unrecognized stage is a recoverable fault: keep the session as-is
		// and acknowledge without advancing.
		c.log.Warn("session in unknown stage", "user_id", userID, "stage", session.Stage)
		reply = msgContinuing
	}

	session.Record("bot", reply)
	return reply
}

// handleDiscover runs the recommendation pipeline on a free-form request.
func (c *conversation) handleDiscover(ctx context.Context, s *Session, utterance string) string {
	result := c.recommender.Recommend(ctx, utterance)
	if !result.OK {
		return result.Message
	}
	s.Recommendations = result.Value
	s.Stage = StageConfirmMap
	return formatRecommendation("추천 결과입니다:", result.Value, "원하시는 항목 번호를 입력해 주세요!")
}

// handleConfirmMap resolves the user's pick against the presented map.
func (c *conversation) handleConfirmMap(ctx context.Context, s *Session, utterance string) string {
	result := c.recommender.PrepareSelection(ctx, utterance, s.Recommendations)
	if !result.OK {
		// Stay in stage 2; the user can re-pick from the same map.
		return result.Message
	}
	target := result.Value
	s.Selection = &target
	s.Stage = StageConfirmCrawl
	return formatSelectionConfirm(target.MidKey, target.DetailKey)
}

// handleConfirmCrawl fetches option data after a confirmation, from cache
// when possible. Cache writes after a fresh crawl are deferred so the reply
// never waits on storage.
func (c *conversation) handleConfirmCrawl(ctx context.Context, s *Session, utterance string) string {
	if s.Selection == nil {
		c.log.Warn("stage 3 session has no selection")
		s.ResetToDiscover()
		return msgBackToStart
	}
	if !c.oracle.IsAffirmative(ctx, utterance) {
		s.ResetToDiscover()
		return msgBackToStart
	}

	target := *s.Selection
	data, err := c.cache.Load(ctx, target.DetailKey)
	if err != nil {
		data, err = c.crawler.Crawl(ctx, target.URL)
		if err != nil {
			c.log.Warn("crawl failed", "url", target.URL, "error", err)
			s.ResetToDiscover()
			return msgCrawlFailed
		}
		c.writes.Enqueue(SpecWriteJob{
			ID:         uuid.New(),
			URL:        target.URL,
			MidKey:     target.MidKey,
			DetailName: target.DetailKey,
			Data:       data,
		})
	}

	s.Spec = &data
	s.Drill = DrillState{}
	s.Stage = StageDrillDown
	return formatCrawledResult(data)
}

// handleDrillDown runs the two-round option questioning sub-machine.
func (c *conversation) handleDrillDown(ctx context.Context, s *Session, utterance string) string {
	if s.Spec == nil {
		c.log.Warn("stage 4 session has no option data")
		s.ResetToDiscover()
		return msgBackToStart
	}
	spec := *s.Spec
	if len(spec.Order) < 2 {
		s.ResetToDiscover()
		return msgNothingToAsk
	}

	if s.Drill.AwaitingConfirm {
		return c.handleDrillConfirm(ctx, s, spec, utterance)
	}
	return c.handleDrillChoice(ctx, s, spec, utterance)
}

func (c *conversation) handleDrillChoice(ctx context.Context, s *Session, spec SpecData, utterance string) string {
	var attrName string
	if s.Drill.Round == 0 {
		attrName = spec.Order[0]
	} else {
		attrName = spec.Order[1]
	}
	opts := spec.Attrs[attrName]
	if opts.IsNav() {
		s.ResetToDiscover()
		return msgNavUnsupported
	}

	result := c.oracle.ClassifyChoice(ctx, utterance, map[string][]string{attrName: opts.Labels})
	if !result.OK {
		s.ResetToDiscover()
		return result.Message
	}

	if s.Drill.Round == 0 {
		s.Drill.FirstKey = attrName
		s.Drill.FirstSelection = result.Value
		s.Drill.Round = 1
	} else {
		s.Drill.SecondKey = attrName
		s.Drill.SecondSelection = result.Value
		s.Drill.Round = 2
	}
	s.Drill.AwaitingConfirm = true
	return formatChoiceConfirm(result.Value)
}

func (c *conversation) handleDrillConfirm(ctx context.Context, s *Session, spec SpecData, utterance string) string {
	// Negative confirmation at either checkpoint restarts the whole flow.
	if !c.oracle.IsAffirmative(ctx, utterance) {
		s.ResetToDiscover()
		return msgBackToStart
	}

	if s.Drill.Round == 1 {
		second := spec.Order[1]
		opts := spec.Attrs[second]
		if opts.IsNav() {
			s.ResetToDiscover()
			return msgNavUnsupported
		}
		s.Drill.AwaitingConfirm = false
		return formatNextAttribute(second, opts)
	}

	reply := formatDrillComplete(s.Drill)
	s.ResetToDiscover()
	return reply
}
