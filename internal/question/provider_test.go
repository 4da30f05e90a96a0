package question

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/sharvarianand/intervuex/internal/interview"
)

type fakeGenerator struct {
	response string
	err      error
	calls    int
}

func (f *fakeGenerator) GenerateContent(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.response, f.err
}

func TestGenerateParsesModelResponse(t *testing.T) {
	gen := &fakeGenerator{
		response: `{"question": "Explain eventual consistency.", "focus": "distributed_systems", "difficulty": "high", "follow_up": true}`,
	}
	p := New(interview.ModeTechnical, gen, zap.NewNop())

	q, err := p.Generate(context.Background(), Input{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if q.Text != "Explain eventual consistency." {
		t.Fatalf("unexpected question text: %q", q.Text)
	}
	if q.Focus != "distributed_systems" {
		t.Fatalf("unexpected focus: %q", q.Focus)
	}
	if q.Difficulty != interview.DifficultyHigh {
		t.Fatalf("unexpected difficulty: %q", q.Difficulty)
	}
	if !q.FollowUp {
		t.Fatal("expected follow-up flag")
	}
}

func TestGenerateFallsBackOnGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	p := New(interview.ModeTechnical, gen, zap.NewNop())

	q, err := p.Generate(context.Background(), Input{})
	if err != nil {
		t.Fatalf("generate must fall back, got %v", err)
	}
	if q.Text == "" || q.Focus == "" {
		t.Fatalf("expected pooled question, got %+v", q)
	}
}

func TestGenerateFallsBackOnProseResponse(t *testing.T) {
	gen := &fakeGenerator{response: "Sure! Here is a great question for you."}
	p := New(interview.ModeBehavioral, gen, zap.NewNop())

	q, err := p.Generate(context.Background(), Input{})
	if err != nil {
		t.Fatalf("generate must fall back, got %v", err)
	}
	if q.Text == "" {
		t.Fatal("expected pooled question")
	}
}

func TestNilGeneratorServesFromPool(t *testing.T) {
	p := New(interview.ModeProjectReview, nil, zap.NewNop())

	q, err := p.Generate(context.Background(), Input{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if q.Text == "" || q.VerificationIntent == "" {
		t.Fatalf("expected pooled viva question, got %+v", q)
	}
}

func TestPooledQuestionsAvoidCoveredTopics(t *testing.T) {
	p := New(interview.ModeTechnical, nil, zap.NewNop())

	covered := []string{}
	for range 10 {
		q, err := p.Generate(context.Background(), Input{
			Memory: interview.MemoryState{Coverage: covered},
		})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		for _, focus := range covered {
			if q.Focus == focus {
				t.Fatalf("focus %q repeated while uncovered topics remain", focus)
			}
		}
		covered = append(covered, q.Focus)
	}
}

func TestRepeatedModelFocusIsRejected(t *testing.T) {
	gen := &fakeGenerator{
		response: `{"question": "More on testing?", "focus": "testing"}`,
	}
	p := New(interview.ModeTechnical, gen, zap.NewNop())

	q, err := p.Generate(context.Background(), Input{
		LastFocus: "testing",
		Memory:    interview.MemoryState{Coverage: []string{"testing"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if q.Focus == "testing" {
		t.Fatal("expected a fresh focus when the model repeats itself")
	}
}

func TestCoveredModelFocusIsRejected(t *testing.T) {
	// A covered focus from several turns back is just as stale as the most
	// recent one.
	gen := &fakeGenerator{
		response: `{"question": "More architecture?", "focus": "architecture"}`,
	}
	p := New(interview.ModeTechnical, gen, zap.NewNop())

	q, err := p.Generate(context.Background(), Input{
		LastFocus: "testing",
		Memory:    interview.MemoryState{Coverage: []string{"architecture", "testing"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if q.Focus == "architecture" || q.Focus == "testing" {
		t.Fatalf("covered focus %q repeated while uncovered alternatives remain", q.Focus)
	}
}

func TestExhaustedPoolResetsWithoutImmediateRepeat(t *testing.T) {
	p := New(interview.ModeBehavioral, nil, zap.NewNop())

	all := make([]string, 0, len(behavioralStrategy.pool))
	for _, q := range behavioralStrategy.pool {
		all = append(all, q.Focus)
	}

	for range 20 {
		q, err := p.Generate(context.Background(), Input{
			LastFocus: "leadership",
			Memory:    interview.MemoryState{Coverage: all},
		})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if q.Focus == "leadership" {
			t.Fatal("reset pool repeated the previous focus")
		}
	}
}

func TestDifficultyTracksPressure(t *testing.T) {
	p := New(interview.ModeTechnical, nil, zap.NewNop())

	q, err := p.Generate(context.Background(), Input{PressureLevel: 0.9})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if q.Difficulty != interview.DifficultyHigh {
		t.Fatalf("pressure 0.9 must yield high difficulty, got %q", q.Difficulty)
	}

	q, err = p.Generate(context.Background(), Input{PressureLevel: 0.2})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if q.Difficulty != interview.DifficultyLow {
		t.Fatalf("pressure 0.2 must yield low difficulty, got %q", q.Difficulty)
	}
}

func TestDifficultyFollowsAnswerQualityAtMidPressure(t *testing.T) {
	p := New(interview.ModeTechnical, nil, zap.NewNop())

	cases := []struct {
		quality string
		count   int
		want    interview.Difficulty
	}{
		{"", 0, interview.DifficultyLow},
		{"strong", 3, interview.DifficultyHigh},
		{"weak", 3, interview.DifficultyLow},
		{"adequate", 3, interview.DifficultyMedium},
	}
	for _, tc := range cases {
		q, err := p.Generate(context.Background(), Input{
			PressureLevel: 0.5,
			Memory: interview.MemoryState{
				QuestionCount:     tc.count,
				LastAnswerQuality: tc.quality,
			},
		})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if q.Difficulty != tc.want {
			t.Fatalf("quality %q: want %q, got %q", tc.quality, tc.want, q.Difficulty)
		}
	}
}
