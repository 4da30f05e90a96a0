package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sharvarianand/intervuex/internal/evaluate"
	"github.com/sharvarianand/intervuex/internal/interview"
	"github.com/sharvarianand/intervuex/internal/project"
	"github.com/sharvarianand/intervuex/internal/question"
	"github.com/sharvarianand/intervuex/internal/storage"
)

type state int

const (
	stateActive state = iota
	stateEnded
)

// Suspicion heuristic bounds. A sustained attention drop across the recent
// window, or a sharp drop in the trailing samples, records one event and
// nudges pressure up. Events are rate-limited by a sample cooldown.
const (
	suspicionWindow        = 10
	suspicionAttentionLow  = 0.4
	suspicionTrailingMean  = 0.5
	suspicionTrailingCount = 3
	suspicionCooldown      = 10
	suspicionNudge         = 0.05
)

// Session is one interview in flight. All methods serialize on mu; the
// engines underneath are not reentrant-safe.
type Session struct {
	id      string
	mode    interview.Mode
	store   storage.Store
	logger  *zap.Logger
	timeout time.Duration

	mu         sync.Mutex
	state      state
	persona    *interview.PersonaEngine
	pressure   *interview.PressureEngine
	memory     *interview.MemoryEngine
	questions  question.Provider
	evaluator  evaluate.Provider
	projectCtx *project.Context

	current    interview.Question
	lastFocus  string
	signals    []interview.Signal
	suspicions int
	sinceNudge int
	report     *interview.Report
}

// resolveProjectContext calls the external-context collaborator. Failures
// degrade to generic questions rather than failing the start.
func (s *Session) resolveProjectContext(ctx context.Context, resolver project.Resolver, githubURL, deploymentURL string) string {
	if resolver == nil || (githubURL == "" && deploymentURL == "") {
		return ""
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := resolver.Resolve(callCtx, githubURL, deploymentURL)
	if err != nil {
		s.logger.Warn("project context unavailable", zap.Error(err))
		return ""
	}

	decoded, err := project.Decode(raw)
	if err != nil {
		s.logger.Warn("project context malformed", zap.Error(err))
		return ""
	}
	s.projectCtx = decoded
	if decoded == nil {
		return ""
	}
	return decoded.Summary
}

func (s *Session) firstQuestion(ctx context.Context) (interview.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.generateQuestion(ctx)
	if err != nil {
		return interview.Question{}, err
	}
	if err := s.recordQuestion(q); err != nil {
		return interview.Question{}, err
	}
	return q, nil
}

func (s *Session) submitAnswer(ctx context.Context, answer string) (interview.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateActive {
		return interview.Question{}, ErrInvalidState
	}

	if err := s.memory.RecordAnswer(answer); err != nil {
		return interview.Question{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	ev, err := s.evaluator.Evaluate(callCtx, s.current, answer, s.projectCtx)
	cancel()
	if err != nil {
		return interview.Question{}, fmt.Errorf("evaluate answer: %w", err)
	}

	if err := s.memory.RecordEvaluation(ev); err != nil {
		return interview.Question{}, err
	}
	s.pressure.Adjust(ev.Score)
	s.persistLastTurn()

	next, err := s.generateQuestion(ctx)
	if err != nil {
		return interview.Question{}, err
	}
	if err := s.recordQuestion(next); err != nil {
		return interview.Question{}, err
	}
	return next, nil
}

func (s *Session) currentQuestion() (interview.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateActive {
		return interview.Question{}, ErrInvalidState
	}
	return s.current, nil
}

func (s *Session) ingestSignals(signals []interview.Signal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateActive {
		return ErrInvalidState
	}

	for _, sig := range signals {
		s.signals = append(s.signals, sig)
		s.sinceNudge++
		s.checkSuspicion()
	}
	return nil
}

// checkSuspicion examines the recent signal window. Triggering applies an
// additive pressure nudge scaled by the persona's multiplier; it never
// replaces the answer-driven adjustment.
func (s *Session) checkSuspicion() {
	if s.sinceNudge < suspicionCooldown || len(s.signals) < suspicionTrailingCount {
		return
	}

	window := s.signals
	if len(window) > suspicionWindow {
		window = window[len(window)-suspicionWindow:]
	}

	low := 0
	for _, sig := range window {
		if sig.AttentionScore < suspicionAttentionLow {
			low++
		}
	}
	sustained := low*2 > len(window)

	var trailing float64
	for _, sig := range s.signals[len(s.signals)-suspicionTrailingCount:] {
		trailing += sig.AttentionScore
	}
	sharp := trailing/suspicionTrailingCount < suspicionTrailingMean

	if !sustained && !sharp {
		return
	}

	s.suspicions++
	s.sinceNudge = 0
	nudge := suspicionNudge * s.persona.Behavior().PressureMultiplier
	s.pressure.Nudge(nudge)
	s.logger.Info("suspicion event recorded",
		zap.Int("events", s.suspicions),
		zap.Float64("nudge", nudge),
		zap.Float64("pressure", s.pressure.Level()))
}

func (s *Session) end(_ context.Context) (interview.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateEnded {
		return interview.Report{}, ErrAlreadyEnded
	}

	report := evaluate.BuildReport(evaluate.ReportInput{
		SessionID:       s.id,
		State:           s.memory.State(),
		Evaluations:     s.memory.Evaluations(),
		Signals:         s.signals,
		SuspicionEvents: s.suspicions,
	})

	s.state = stateEnded
	s.report = &report

	if err := s.store.StoreReport(s.id, report); err != nil {
		s.logger.Warn("report persistence unavailable", zap.Error(err))
	}

	return report, nil
}

func (s *Session) finalReport() (interview.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.report == nil {
		return interview.Report{}, ErrInvalidState
	}
	return *s.report, nil
}

func (s *Session) generateQuestion(ctx context.Context) (interview.Question, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	recent := s.signals
	if len(recent) > suspicionWindow {
		recent = recent[len(recent)-suspicionWindow:]
	}

	q, err := s.questions.Generate(callCtx, question.Input{
		Persona:       s.persona.Behavior(),
		PersonaPrompt: s.persona.PromptModifier(),
		Context:       s.projectCtx,
		Memory:        s.memory.State(),
		PressureLevel: s.pressure.Level(),
		Modifiers:     s.pressure.Modifiers(),
		RecentSignals: recent,
		LastFocus:     s.lastFocus,
	})
	if err != nil {
		return interview.Question{}, fmt.Errorf("generate question: %w", err)
	}
	return q, nil
}

func (s *Session) recordQuestion(q interview.Question) error {
	if err := s.memory.RecordQuestion(q); err != nil {
		return err
	}
	s.current = q
	s.lastFocus = q.Focus
	return nil
}

// persistLastTurn stores the just-completed turn. Persistence is
// best-effort; a failing store never fails the loop.
func (s *Session) persistLastTurn() {
	var last *interview.Turn
	for turn := range s.memory.Transcript() {
		if turn.Evaluation != nil {
			t := turn
			last = &t
		}
	}
	if last == nil {
		return
	}
	if err := s.store.AppendTurn(s.id, *last); err != nil {
		s.logger.Warn("turn persistence unavailable", zap.Error(err))
	}
}
