package interview

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrIndexMismatch signals that a caller recorded a turn component out of
// order. It is a contract violation, not a recoverable condition.
var ErrIndexMismatch = errors.New("memory index mismatch")

// Turn is one question/answer/evaluation triple at a sequence position.
// Answer and Evaluation are nil for partial turns still in flight.
type Turn struct {
	Index      int
	Question   Question
	Answer     *string
	Evaluation *Evaluation
}

// MemoryState is the derived view over the transcript, recomputed on read.
type MemoryState struct {
	QuestionCount     int      `json:"question_count"`
	AnswerCount       int      `json:"answer_count"`
	WeakAreas         []string `json:"weak_areas"`
	StrongAreas       []string `json:"strong_areas"`
	LastAnswerQuality string   `json:"last_answer_quality"`
	ConfidenceTrend   string   `json:"confidence_trend"`
	Coverage          []string `json:"coverage"`
}

// MemoryEngine is an append-only log of three aligned streams: answer i
// answers question i, evaluation i scores answer i. All derived signals are
// recomputed from the streams on demand; there is no independent mutable
// classification state.
type MemoryEngine struct {
	questions   []Question
	answers     []string
	evaluations []Evaluation
}

func NewMemoryEngine() *MemoryEngine {
	return &MemoryEngine{}
}

// RecordQuestion appends the next question. The previous question must
// already have an answer on record.
func (m *MemoryEngine) RecordQuestion(q Question) error {
	if len(m.answers) != len(m.questions) {
		return fmt.Errorf("%w: %d questions, %d answers", ErrIndexMismatch, len(m.questions), len(m.answers))
	}
	m.questions = append(m.questions, q)
	return nil
}

// RecordAnswer appends the answer to the most recent question.
func (m *MemoryEngine) RecordAnswer(answer string) error {
	if len(m.answers) != len(m.questions)-1 {
		return fmt.Errorf("%w: answer %d has no outstanding question", ErrIndexMismatch, len(m.answers))
	}
	m.answers = append(m.answers, answer)
	return nil
}

// RecordEvaluation appends the evaluation of the most recent answer.
func (m *MemoryEngine) RecordEvaluation(ev Evaluation) error {
	if len(m.evaluations) != len(m.answers)-1 {
		return fmt.Errorf("%w: evaluation %d has no matching answer", ErrIndexMismatch, len(m.evaluations))
	}
	m.evaluations = append(m.evaluations, ev)
	return nil
}

// State recomputes the derived view. Session lifetimes are short and call
// volume is low, so correctness wins over caching.
func (m *MemoryEngine) State() MemoryState {
	weak, strong := m.classifyAreas()
	return MemoryState{
		QuestionCount:     len(m.questions),
		AnswerCount:       len(m.answers),
		WeakAreas:         weak,
		StrongAreas:       strong,
		LastAnswerQuality: m.lastAnswerQuality(),
		ConfidenceTrend:   m.confidenceTrend(),
		Coverage:          m.topicCoverage(),
	}
}

// classifyAreas walks evaluations in order. The first classification of a
// focus tag wins: once a tag lands in either set, later scores on the same
// tag are ignored.
func (m *MemoryEngine) classifyAreas() (weak, strong []string) {
	weak = []string{}
	strong = []string{}
	for _, ev := range m.evaluations {
		focus := ev.Focus
		if focus == "" {
			focus = "general"
		}
		if slices.Contains(weak, focus) || slices.Contains(strong, focus) {
			continue
		}
		if ev.Score < 0.4 {
			weak = append(weak, focus)
		} else if ev.Score > 0.7 {
			strong = append(strong, focus)
		}
	}
	return weak, strong
}

func (m *MemoryEngine) lastAnswerQuality() string {
	if len(m.evaluations) == 0 {
		return "no_data"
	}
	last := m.evaluations[len(m.evaluations)-1].Score
	switch {
	case last >= 0.7:
		return "strong"
	case last >= 0.4:
		return "adequate"
	default:
		return "weak"
	}
}

// confidenceTrend compares the mean confidence of the last three
// evaluations against the mean of everything earlier, with a 0.1 band.
func (m *MemoryEngine) confidenceTrend() string {
	n := len(m.evaluations)
	if n < 2 {
		return "stable"
	}

	recentStart := max(n-3, 0)
	var recentSum float64
	for _, ev := range m.evaluations[recentStart:] {
		recentSum += ev.Confidence
	}
	avgRecent := recentSum / float64(n-recentStart)

	var earlierSum float64
	for _, ev := range m.evaluations[:recentStart] {
		earlierSum += ev.Confidence
	}
	avgEarlier := earlierSum / float64(max(n-3, 1))

	switch {
	case avgRecent > avgEarlier+0.1:
		return "improving"
	case avgRecent < avgEarlier-0.1:
		return "declining"
	default:
		return "stable"
	}
}

// topicCoverage lists distinct focus tags in the order first asked.
func (m *MemoryEngine) topicCoverage() []string {
	coverage := []string{}
	for _, q := range m.questions {
		if q.Focus == "" || slices.Contains(coverage, q.Focus) {
			continue
		}
		coverage = append(coverage, q.Focus)
	}
	return coverage
}

// Transcript returns a restartable sequence of per-turn records. Partial
// turns carry nil Answer/Evaluation fields rather than being dropped.
func (m *MemoryEngine) Transcript() iter.Seq[Turn] {
	return func(yield func(Turn) bool) {
		for i, q := range m.questions {
			turn := Turn{Index: i, Question: q}
			if i < len(m.answers) {
				turn.Answer = &m.answers[i]
			}
			if i < len(m.evaluations) {
				turn.Evaluation = &m.evaluations[i]
			}
			if !yield(turn) {
				return
			}
		}
	}
}

// Evaluations returns the recorded evaluation history in order.
func (m *MemoryEngine) Evaluations() []Evaluation {
	return slices.Clone(m.evaluations)
}
