// Package evaluate scores free-text answers and synthesizes the final
// session report. Scoring prefers the external judgment collaborator and
// falls back to a deterministic heuristic when it is unavailable.
package evaluate

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sharvarianand/intervuex/internal/ai"
	"github.com/sharvarianand/intervuex/internal/interview"
	"github.com/sharvarianand/intervuex/internal/project"
)

const (
	// Answers under this many tokens are scored low unconditionally.
	lengthFloorTokens = 20
	lengthFloorScore  = 0.2

	tooBriefFeedback = "Answer is too brief. Elaborate with specifics, examples and reasoning."
)

// Provider scores one answer against the question just asked. The returned
// evaluation's Score is the single input to pressure adjustment and to the
// weak/strong topic classification.
type Provider interface {
	Evaluate(ctx context.Context, q interview.Question, answer string, pctx *project.Context) (interview.Evaluation, error)
}

// New builds the evaluator for a mode. A nil generator is valid and yields a
// purely heuristic evaluator.
func New(mode interview.Mode, generator ai.Generator, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &evaluator{
		mode:      mode,
		generator: generator,
		logger:    logger.With(zap.String("mode", string(mode))),
	}
}

type evaluator struct {
	mode      interview.Mode
	generator ai.Generator
	logger    *zap.Logger
}

func (e *evaluator) Evaluate(ctx context.Context, q interview.Question, answer string, pctx *project.Context) (interview.Evaluation, error) {
	// Hard short-circuit, not a heuristic nudge. Content is not inspected.
	if len(strings.Fields(answer)) < lengthFloorTokens {
		return interview.Evaluation{
			Score:          lengthFloorScore,
			Focus:          q.Focus,
			Confidence:     lengthFloorScore,
			Feedback:       tooBriefFeedback,
			FollowUpNeeded: true,
		}, nil
	}

	if e.generator != nil {
		ev, err := e.evaluateWithAI(ctx, q, answer, pctx)
		if err == nil {
			return ev, nil
		}
		e.logger.Warn("ai evaluation failed, using heuristic", zap.Error(err))
	}

	return e.heuristic(q, answer), nil
}

func (e *evaluator) evaluateWithAI(ctx context.Context, q interview.Question, answer string, pctx *project.Context) (interview.Evaluation, error) {
	raw, err := e.generator.GenerateContent(ctx, evalSystemPrompt(e.mode), evalPrompt(e.mode, q, answer, pctx))
	if err != nil {
		return interview.Evaluation{}, fmt.Errorf("%w: %v", ai.ErrContentGeneration, err)
	}

	data, err := ai.ParseObject(raw)
	if err != nil {
		return interview.Evaluation{}, fmt.Errorf("%w: %v", ai.ErrContentGeneration, err)
	}

	dims := dimensionsFor(e.mode)
	ev := interview.Evaluation{
		Score:      clamp01(ai.Float(data["score"], 0.5)),
		Focus:      q.Focus,
		Confidence: clamp01(ai.Float(data["confidence"], 0.5)),
		Feedback:   ai.String(data["feedback"]),
		Strength:   ai.String(data["strength"]),
		Weakness:   ai.String(data["improvement"]),
		Dimensions: make(map[string]float64, len(dims)),
	}
	for _, dim := range dims {
		ev.Dimensions[dim] = clamp01(ai.Float(data[dim], 0.5))
	}
	if ev.Feedback == "" {
		ev.Feedback = bucketFeedback(ev.Score, q.Focus)
	}
	ev.FollowUpNeeded = ev.Score < 0.4
	return ev, nil
}

// signalWords mark answers that reason about decisions rather than recite
// facts. Each hit adds a small increment, capped in aggregate.
var signalWords = []string{
	"because", "trade-off", "considered", "alternative",
	"architecture", "scalability", "performance", "security",
	"design decision", "implemented", "optimized", "tested",
}

// heuristic is the deterministic fallback. Length contributes with
// diminishing returns, signal words add a bounded boost.
func (e *evaluator) heuristic(q interview.Question, answer string) interview.Evaluation {
	score := 0.5
	reasoningDepth := 0.5
	clarity := 0.5

	wordCount := len(strings.Fields(answer))
	switch {
	case wordCount > 100:
		score += 0.2
		reasoningDepth += 0.2
	case wordCount > 50:
		score += 0.1
		reasoningDepth += 0.1
	}

	lower := strings.ToLower(answer)
	hits := 0
	for _, kw := range signalWords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	boost := min(float64(hits)*0.05, 0.2)
	score = clamp01(score + boost)
	reasoningDepth = clamp01(reasoningDepth + boost)

	return interview.Evaluation{
		Score:      score,
		Focus:      q.Focus,
		Confidence: 0.5,
		Feedback:   bucketFeedback(score, q.Focus),
		Dimensions: map[string]float64{
			"reasoning_depth": reasoningDepth,
			"clarity":         clarity,
		},
		FollowUpNeeded: score < 0.4,
	}
}

func bucketFeedback(score float64, focus string) string {
	if focus == "" {
		focus = "this topic"
	}
	switch {
	case score >= 0.7:
		return fmt.Sprintf("Strong answer on %s. Good depth and reasoning.", focus)
	case score >= 0.4:
		return fmt.Sprintf("Adequate answer on %s. Could provide more specific examples.", focus)
	default:
		return fmt.Sprintf("Weak answer on %s. Needs more depth and clarity.", focus)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
