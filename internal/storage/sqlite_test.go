package storage

import (
	"path/filepath"
	"testing"

	"github.com/sharvarianand/intervuex/internal/interview"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	store, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStorePersistsSessionLifecycle(t *testing.T) {
	store := openTestStore(t)

	if err := store.CreateSession("s1", interview.ModeTechnical, "strict_professor"); err != nil {
		t.Fatalf("create session: %v", err)
	}

	answer := "We sharded by tenant id."
	ev := interview.Evaluation{Score: 0.8, Feedback: "Good reasoning."}
	turns := []interview.Turn{
		{Index: 0, Question: interview.Question{Text: "Q1", Focus: "system_design", Difficulty: interview.DifficultyMedium}, Answer: &answer, Evaluation: &ev},
		{Index: 1, Question: interview.Question{Text: "Q2", Focus: "debugging", Difficulty: interview.DifficultyHigh}},
	}
	for _, turn := range turns {
		if err := store.AppendTurn("s1", turn); err != nil {
			t.Fatalf("append turn %d: %v", turn.Index, err)
		}
	}

	count, err := store.TurnCount("s1")
	if err != nil {
		t.Fatalf("turn count: %v", err)
	}
	if count != 2 {
		t.Fatalf("want 2 turns, got %d", count)
	}

	report := interview.Report{
		SessionID:    "s1",
		OverallScore: 0.72,
		Verdict:      interview.VerdictReady,
		SkillScores:  []interview.SkillScore{{Skill: "System Design", Score: 0.8, Feedback: "Solid"}},
	}
	if err := store.StoreReport("s1", report); err != nil {
		t.Fatalf("store report: %v", err)
	}

	got, err := store.GetReport("s1")
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	if got == nil || got.Verdict != interview.VerdictReady || len(got.SkillScores) != 1 {
		t.Fatalf("unexpected report: %+v", got)
	}
}

func TestGetReportMissingSession(t *testing.T) {
	store := openTestStore(t)

	got, err := store.GetReport("nope")
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	if got != nil {
		t.Fatalf("want nil report, got %+v", got)
	}
}

func TestStoreReportReplacesPrevious(t *testing.T) {
	store := openTestStore(t)

	if err := store.CreateSession("s2", interview.ModeBehavioral, "friendly_hr"); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := store.StoreReport("s2", interview.Report{SessionID: "s2", Verdict: interview.VerdictNeedsWork}); err != nil {
		t.Fatalf("store report: %v", err)
	}
	if err := store.StoreReport("s2", interview.Report{SessionID: "s2", Verdict: interview.VerdictReady}); err != nil {
		t.Fatalf("store report again: %v", err)
	}

	got, err := store.GetReport("s2")
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	if got.Verdict != interview.VerdictReady {
		t.Fatalf("want replaced verdict, got %q", got.Verdict)
	}
}
