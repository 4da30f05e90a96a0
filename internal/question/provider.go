// Package question produces the next interview question from the session's
// persona, pressure and memory state. One provider exists per interview
// mode; all share the Provider contract. When the external generation
// collaborator fails, a curated local pool keeps the interview moving.
package question

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/sharvarianand/intervuex/internal/ai"
	"github.com/sharvarianand/intervuex/internal/interview"
	"github.com/sharvarianand/intervuex/internal/project"
)

// Input carries everything a provider may consult for the next question.
type Input struct {
	Persona       interview.PersonaBehavior
	PersonaPrompt string
	Context       *project.Context
	Memory        interview.MemoryState
	PressureLevel float64
	Modifiers     interview.Modifiers
	RecentSignals []interview.Signal
	LastFocus     string
}

// Provider generates the next question. Implementations are explicitly
// randomized; callers must not assume determinism.
type Provider interface {
	Generate(ctx context.Context, in Input) (interview.Question, error)
}

// New builds the provider for a mode. A nil generator is valid and yields a
// provider that always serves from the local pool.
func New(mode interview.Mode, generator ai.Generator, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &provider{
		mode:      mode,
		strategy:  strategyFor(mode),
		generator: generator,
		logger:    logger.With(zap.String("mode", string(mode))),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// strategyFor dispatches the mode-specific behavior. Unknown modes fall back
// to the technical strategy.
func strategyFor(mode interview.Mode) strategy {
	switch mode {
	case interview.ModeBehavioral:
		return behavioralStrategy
	case interview.ModeProjectReview:
		return projectReviewStrategy
	default:
		return technicalStrategy
	}
}

// strategy is the per-mode variation point: prompt framing and the curated
// fallback pool.
type strategy struct {
	instructions string
	pool         []interview.Question
}

type provider struct {
	mode      interview.Mode
	strategy  strategy
	generator ai.Generator
	logger    *zap.Logger
	rng       *rand.Rand
}

func (p *provider) Generate(ctx context.Context, in Input) (interview.Question, error) {
	if p.generator != nil {
		q, err := p.generateWithAI(ctx, in)
		if err == nil {
			return q, nil
		}
		p.logger.Warn("ai question generation failed, using local pool", zap.Error(err))
	}

	return p.fromPool(in)
}

func (p *provider) generateWithAI(ctx context.Context, in Input) (interview.Question, error) {
	prompt := buildPrompt(p.strategy, in)

	raw, err := p.generator.GenerateContent(ctx, in.PersonaPrompt, prompt)
	if err != nil {
		return interview.Question{}, fmt.Errorf("%w: %v", ai.ErrContentGeneration, err)
	}

	data, err := ai.ParseObject(raw)
	if err != nil {
		return interview.Question{}, fmt.Errorf("%w: %v", ai.ErrContentGeneration, err)
	}

	q := interview.Question{
		Text:               ai.String(data["question"]),
		Focus:              ai.String(data["focus"]),
		Difficulty:         parseDifficulty(ai.String(data["difficulty"])),
		FollowUp:           ai.Bool(data["follow_up"]),
		VerificationIntent: ai.String(data["verification_intent"]),
	}
	if q.Text == "" {
		return interview.Question{}, fmt.Errorf("%w: response carries no question text", ai.ErrContentGeneration)
	}
	if q.Focus == "" {
		q.Focus = "general"
	}
	if q.Difficulty == "" {
		q.Difficulty = p.difficultyFor(in)
	}

	// The model is instructed not to revisit topics, but it is not trusted
	// to comply. Any already-covered focus is rejected while fresh pool
	// topics remain.
	if p.uncoveredCount(in.Memory.Coverage) >= 1 && slices.Contains(in.Memory.Coverage, q.Focus) {
		return p.fromPool(in)
	}

	return q, nil
}

// fromPool selects a curated question whose focus is not yet covered. An
// exhausted pool resets to the full candidate set rather than failing.
func (p *provider) fromPool(in Input) (interview.Question, error) {
	if len(p.strategy.pool) == 0 {
		return interview.Question{}, fmt.Errorf("%w: no local questions for mode %s", ai.ErrContentGeneration, p.mode)
	}

	covered := make(map[string]bool, len(in.Memory.Coverage))
	for _, focus := range in.Memory.Coverage {
		covered[focus] = true
	}

	candidates := make([]interview.Question, 0, len(p.strategy.pool))
	for _, q := range p.strategy.pool {
		if !covered[q.Focus] {
			candidates = append(candidates, q)
		}
	}

	if len(candidates) == 0 {
		// Full coverage: reuse the pool but avoid an immediate repeat.
		for _, q := range p.strategy.pool {
			if q.Focus != in.LastFocus {
				candidates = append(candidates, q)
			}
		}
		if len(candidates) == 0 {
			candidates = p.strategy.pool
		}
	}

	q := candidates[p.rng.Intn(len(candidates))]
	q.Difficulty = p.difficultyFor(in)
	return q, nil
}

func (p *provider) uncoveredCount(coverage []string) int {
	covered := make(map[string]bool, len(coverage))
	for _, focus := range coverage {
		covered[focus] = true
	}
	n := 0
	for _, q := range p.strategy.pool {
		if !covered[q.Focus] {
			n++
		}
	}
	return n
}

// difficultyFor maps pressure onto a difficulty tier. Outside the extreme
// bands the tier follows the interview's own progression.
func (p *provider) difficultyFor(in Input) interview.Difficulty {
	switch {
	case in.PressureLevel > 0.7:
		return interview.DifficultyHigh
	case in.PressureLevel < 0.3:
		return interview.DifficultyLow
	}

	switch {
	case in.Memory.QuestionCount == 0:
		return interview.DifficultyLow
	case in.Memory.LastAnswerQuality == "strong":
		return interview.DifficultyHigh
	case in.Memory.LastAnswerQuality == "weak":
		return interview.DifficultyLow
	default:
		return interview.DifficultyMedium
	}
}

func parseDifficulty(s string) interview.Difficulty {
	switch s {
	case "low", "easy":
		return interview.DifficultyLow
	case "medium":
		return interview.DifficultyMedium
	case "high", "hard":
		return interview.DifficultyHigh
	default:
		return ""
	}
}
