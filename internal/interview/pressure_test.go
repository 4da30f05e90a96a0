package interview

import (
	"math"
	"math/rand"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPressureRaisesAfterTwoGoodAnswers(t *testing.T) {
	e := NewPressureEngine()

	e.Adjust(0.8)
	if !almostEqual(e.Level(), 0.5) {
		t.Fatalf("level changed after single good answer: %v", e.Level())
	}

	e.Adjust(0.75)
	if !almostEqual(e.Level(), 0.65) {
		t.Fatalf("expected 0.65 after two good answers, got %v", e.Level())
	}

	// Streak does not reset after firing: third good answer raises again.
	e.Adjust(0.9)
	if !almostEqual(e.Level(), 0.80) {
		t.Fatalf("expected 0.80 after third good answer, got %v", e.Level())
	}
}

func TestPressureDropsAfterTwoWeakAnswers(t *testing.T) {
	e := NewPressureEngine()

	e.Adjust(0.2)
	e.Adjust(0.3)
	if !almostEqual(e.Level(), 0.4) {
		t.Fatalf("expected 0.4 after two weak answers, got %v", e.Level())
	}

	e.Adjust(0.1)
	if !almostEqual(e.Level(), 0.3) {
		t.Fatalf("expected repeat-fire drop to 0.3, got %v", e.Level())
	}
}

func TestPressureAverageAnswerNudgesTowardMiddle(t *testing.T) {
	e := NewPressureEngine()

	for range 3 {
		e.Adjust(0.5)
	}
	if !almostEqual(e.Level(), 0.5) {
		t.Fatalf("level at middle must not move on average answers, got %v", e.Level())
	}

	e.Adjust(0.8)
	e.Adjust(0.8) // raised to 0.65
	e.Adjust(0.5)
	if !almostEqual(e.Level(), 0.6) {
		t.Fatalf("expected nudge down to 0.6, got %v", e.Level())
	}
}

func TestPressureStaysWithinBounds(t *testing.T) {
	e := NewPressureEngine()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		e.Adjust(rng.Float64())
		if e.Level() < 0.2 || e.Level() > 1.0 {
			t.Fatalf("level out of bounds after %d adjustments: %v", i+1, e.Level())
		}
	}
}

func TestPressureNudgeIsClamped(t *testing.T) {
	e := NewPressureEngine()
	e.Nudge(5)
	if !almostEqual(e.Level(), 1.0) {
		t.Fatalf("expected clamp to 1.0, got %v", e.Level())
	}
	e.Nudge(-5)
	if !almostEqual(e.Level(), 0.2) {
		t.Fatalf("expected clamp to 0.2, got %v", e.Level())
	}
}

func TestPressureModifierTiers(t *testing.T) {
	e := NewPressureEngine()

	e.level = 0.85
	if m := e.Modifiers(); m.TimePressure != "high" || !m.DefensiveProbing || m.HintAvailability != "none" {
		t.Fatalf("unexpected top-tier modifiers: %+v", m)
	}

	e.level = 0.65
	if m := e.Modifiers(); m.TimePressure != "medium" || !m.MultiPartQuestions || m.DefensiveProbing {
		t.Fatalf("unexpected second-tier modifiers: %+v", m)
	}

	e.level = 0.45
	if m := e.Modifiers(); m.TimePressure != "normal" || m.MultiPartQuestions {
		t.Fatalf("unexpected third-tier modifiers: %+v", m)
	}

	e.level = 0.25
	if m := e.Modifiers(); m.TimePressure != "relaxed" || m.HintAvailability != "generous" {
		t.Fatalf("unexpected bottom-tier modifiers: %+v", m)
	}
}

func TestPressureReset(t *testing.T) {
	e := NewPressureEngine()
	e.Adjust(0.9)
	e.Adjust(0.9)
	e.Reset()

	if !almostEqual(e.Level(), 0.5) {
		t.Fatalf("expected initial level after reset, got %v", e.Level())
	}
	// Streaks must be cleared: one good answer should not fire a raise.
	e.Adjust(0.9)
	if !almostEqual(e.Level(), 0.5) {
		t.Fatalf("streak survived reset, level %v", e.Level())
	}
}
