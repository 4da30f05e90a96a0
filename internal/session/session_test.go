package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sharvarianand/intervuex/internal/interview"
	"github.com/sharvarianand/intervuex/internal/storage"
)

type recordingStore struct {
	storage.Noop
	sessions int
	turns    int
	reports  int
	fail     bool
}

func (r *recordingStore) CreateSession(string, interview.Mode, string) error {
	r.sessions++
	if r.fail {
		return errors.New("db unavailable")
	}
	return nil
}

func (r *recordingStore) AppendTurn(string, interview.Turn) error {
	r.turns++
	if r.fail {
		return errors.New("db unavailable")
	}
	return nil
}

func (r *recordingStore) StoreReport(string, interview.Report) error {
	r.reports++
	if r.fail {
		return errors.New("db unavailable")
	}
	return nil
}

func newTestOrchestrator(t *testing.T, opts ...Option) *Orchestrator {
	t.Helper()
	return NewOrchestrator(nil, zap.NewNop(), opts...)
}

func TestStartReturnsFirstQuestion(t *testing.T) {
	o := newTestOrchestrator(t)

	resp, err := o.Start(context.Background(), StartRequest{Mode: "technical", Persona: "strict_professor"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if resp.FirstQuestion.Text == "" || resp.FirstQuestion.Focus == "" {
		t.Fatalf("expected a first question, got %+v", resp.FirstQuestion)
	}
	if resp.Persona != "Strict Professor" {
		t.Fatalf("unexpected persona: %q", resp.Persona)
	}

	current, err := o.CurrentQuestion(resp.SessionID)
	if err != nil {
		t.Fatalf("current question: %v", err)
	}
	if current.Text != resp.FirstQuestion.Text {
		t.Fatal("current question must match the one returned from start")
	}
}

func TestUnknownPersonaFallsBackToDefault(t *testing.T) {
	o := newTestOrchestrator(t)

	resp, err := o.Start(context.Background(), StartRequest{Mode: "technical", Persona: "galactic_overlord"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if resp.Persona != "Startup CTO" {
		t.Fatalf("unexpected fallback persona: %q", resp.Persona)
	}
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	o := newTestOrchestrator(t)

	if _, err := o.SubmitAnswer(context.Background(), "nope", "answer"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := o.End(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestShortAnswersLowerPressureAndVerdict(t *testing.T) {
	o := newTestOrchestrator(t)

	resp, err := o.Start(context.Background(), StartRequest{Mode: "technical"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	for i := range 3 {
		next, err := o.SubmitAnswer(context.Background(), resp.SessionID, "I do not know.")
		if err != nil {
			t.Fatalf("submit answer %d: %v", i, err)
		}
		if next.Text == "" {
			t.Fatalf("answer %d produced no next question", i)
		}
	}

	s, _ := o.lookup(resp.SessionID)
	if level := s.pressure.Level(); level >= 0.5 {
		t.Fatalf("three weak answers must lower pressure below 0.5, got %v", level)
	}

	report, err := o.End(context.Background(), resp.SessionID)
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if report.Verdict != interview.VerdictNeedsWork {
		t.Fatalf("want Needs Work, got %q", report.Verdict)
	}
	if report.OverallScore >= 0.5 {
		t.Fatalf("overall score must stay below 0.5, got %v", report.OverallScore)
	}
}

func TestEndIsTerminal(t *testing.T) {
	o := newTestOrchestrator(t)

	resp, err := o.Start(context.Background(), StartRequest{Mode: "behavioral"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := o.End(context.Background(), resp.SessionID); err != nil {
		t.Fatalf("end: %v", err)
	}
	if _, err := o.End(context.Background(), resp.SessionID); !errors.Is(err, ErrAlreadyEnded) {
		t.Fatalf("second end must fail with ErrAlreadyEnded, got %v", err)
	}
	if _, err := o.SubmitAnswer(context.Background(), resp.SessionID, "late answer"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("answer after end must fail with ErrInvalidState, got %v", err)
	}
	if _, err := o.CurrentQuestion(resp.SessionID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("question after end must fail with ErrInvalidState, got %v", err)
	}

	report, err := o.Report(resp.SessionID)
	if err != nil {
		t.Fatalf("report after end: %v", err)
	}
	if report.SessionID != resp.SessionID {
		t.Fatalf("unexpected report session id: %q", report.SessionID)
	}
}

func TestReportBeforeEndIsInvalid(t *testing.T) {
	o := newTestOrchestrator(t)

	resp, err := o.Start(context.Background(), StartRequest{Mode: "technical"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := o.Report(resp.SessionID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("want ErrInvalidState, got %v", err)
	}
}

func TestSuspicionNudgesPressure(t *testing.T) {
	o := newTestOrchestrator(t)

	resp, err := o.Start(context.Background(), StartRequest{Mode: "technical"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	distracted := make([]interview.Signal, 12)
	for i := range distracted {
		distracted[i] = interview.Signal{
			EyeGazeStability: 0.2,
			FacialConfidence: 0.3,
			AttentionScore:   0.1,
			Timestamp:        time.Now(),
		}
	}
	if err := o.IngestSignals(resp.SessionID, distracted); err != nil {
		t.Fatalf("ingest signals: %v", err)
	}

	s, _ := o.lookup(resp.SessionID)
	if s.suspicions != 1 {
		t.Fatalf("cooldown allows one event per %d samples, got %d events", suspicionCooldown, s.suspicions)
	}
	if level := s.pressure.Level(); level <= 0.5 {
		t.Fatalf("suspicion must nudge pressure upward, got %v", level)
	}

	report, err := o.End(context.Background(), resp.SessionID)
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if report.SuspicionEvents != 1 {
		t.Fatalf("want 1 suspicion event in report, got %d", report.SuspicionEvents)
	}
	if report.BehavioralConsistency == nil {
		t.Fatal("signals were recorded, behavioral consistency must be present")
	}
}

func TestAttentiveSignalsRecordNoSuspicion(t *testing.T) {
	o := newTestOrchestrator(t)

	resp, err := o.Start(context.Background(), StartRequest{Mode: "technical"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	attentive := make([]interview.Signal, 15)
	for i := range attentive {
		attentive[i] = interview.Signal{AttentionScore: 0.9, FacialConfidence: 0.8, Timestamp: time.Now()}
	}
	if err := o.IngestSignals(resp.SessionID, attentive); err != nil {
		t.Fatalf("ingest signals: %v", err)
	}

	s, _ := o.lookup(resp.SessionID)
	if s.suspicions != 0 {
		t.Fatalf("attentive candidate must record no suspicion, got %d events", s.suspicions)
	}
}

func TestStorageFailuresAreAbsorbed(t *testing.T) {
	store := &recordingStore{fail: true}
	o := newTestOrchestrator(t, WithStore(store))

	resp, err := o.Start(context.Background(), StartRequest{Mode: "technical"})
	if err != nil {
		t.Fatalf("start must survive a failing store: %v", err)
	}
	if _, err := o.SubmitAnswer(context.Background(), resp.SessionID, "I do not know."); err != nil {
		t.Fatalf("submit must survive a failing store: %v", err)
	}
	if _, err := o.End(context.Background(), resp.SessionID); err != nil {
		t.Fatalf("end must survive a failing store: %v", err)
	}

	if store.sessions != 1 || store.turns == 0 || store.reports != 1 {
		t.Fatalf("store calls were not attempted: %+v", store)
	}
}

func TestPersistenceReceivesCompletedTurns(t *testing.T) {
	store := &recordingStore{}
	o := newTestOrchestrator(t, WithStore(store))

	resp, err := o.Start(context.Background(), StartRequest{Mode: "technical"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for range 2 {
		if _, err := o.SubmitAnswer(context.Background(), resp.SessionID, "I do not know."); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	if store.turns != 2 {
		t.Fatalf("want 2 persisted turns, got %d", store.turns)
	}
}
