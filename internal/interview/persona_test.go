package interview

import (
	"strings"
	"testing"
)

func TestPersonaBehaviorBeforeLoadIsZero(t *testing.T) {
	e := NewPersonaEngine()
	if b := e.Behavior(); b != (PersonaBehavior{}) {
		t.Fatalf("expected zero behavior before load, got %+v", b)
	}
	if e.PromptModifier() != "" {
		t.Fatal("expected empty prompt modifier before load")
	}
}

func TestPersonaLoadKnownType(t *testing.T) {
	e := NewPersonaEngine()
	if !e.Load(PersonaStrictProfessor) {
		t.Fatal("known persona reported as fallback")
	}

	b := e.Behavior()
	if b.Name != "Strict Professor" {
		t.Fatalf("unexpected persona name: %q", b.Name)
	}
	if b.ScoringStrictness != 0.85 || b.PressureMultiplier != 1.2 {
		t.Fatalf("unexpected behavior parameters: %+v", b)
	}
	if !strings.Contains(e.PromptModifier(), "Strict Professor") {
		t.Fatalf("prompt modifier missing persona name: %q", e.PromptModifier())
	}
}

func TestPersonaUnknownTypeFallsBackToDefault(t *testing.T) {
	e := NewPersonaEngine()
	if e.Load(PersonaType("galactic_overlord")) {
		t.Fatal("unknown persona must report fallback")
	}
	if b := e.Behavior(); b.Name != "Startup CTO" {
		t.Fatalf("expected default persona, got %q", b.Name)
	}
}

func TestPersonaLoadIsIdempotent(t *testing.T) {
	e := NewPersonaEngine()
	e.Load(PersonaFriendlyHR)
	first := e.Behavior()
	e.Load(PersonaFriendlyHR)
	if e.Behavior() != first {
		t.Fatal("reloading the same persona changed the behavior view")
	}
}
