// Package session composes the persona, pressure and memory engines with
// the question and evaluation providers into the adaptive interview loop.
// Each session is an independent island of state; the orchestrator owns the
// registry and serializes all calls touching one session.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sharvarianand/intervuex/internal/ai"
	"github.com/sharvarianand/intervuex/internal/evaluate"
	"github.com/sharvarianand/intervuex/internal/interview"
	"github.com/sharvarianand/intervuex/internal/logger"
	"github.com/sharvarianand/intervuex/internal/project"
	"github.com/sharvarianand/intervuex/internal/question"
	"github.com/sharvarianand/intervuex/internal/storage"
)

// externalCallTimeout bounds every call to a generation, evaluation or
// context collaborator. A hung collaborator degrades to local fallbacks
// instead of hanging the session.
const externalCallTimeout = 30 * time.Second

// Orchestrator manages the session registry. Safe for concurrent use;
// per-session calls are serialized by the session's own lock.
type Orchestrator struct {
	generator ai.Generator
	resolver  project.Resolver
	store     storage.Store
	logger    *zap.Logger
	timeout   time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithResolver installs the external project-context collaborator.
func WithResolver(r project.Resolver) Option {
	return func(o *Orchestrator) { o.resolver = r }
}

// WithStore installs the persistence collaborator.
func WithStore(s storage.Store) Option {
	return func(o *Orchestrator) { o.store = s }
}

// WithTimeout overrides the external-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// NewOrchestrator builds an orchestrator. A nil generator yields sessions
// that run entirely on local pools and heuristics.
func NewOrchestrator(generator ai.Generator, logger *zap.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Orchestrator{
		generator: generator,
		store:     storage.Noop{},
		logger:    logger,
		timeout:   externalCallTimeout,
		sessions:  make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// StartRequest carries the caller's session parameters. Mode and persona
// accept the legacy aliases of older clients.
type StartRequest struct {
	Mode          string `json:"mode"`
	Persona       string `json:"persona"`
	GitHubURL     string `json:"github_url,omitempty"`
	DeploymentURL string `json:"deployment_url,omitempty"`
}

// StartResponse is returned from a successful session start.
type StartResponse struct {
	SessionID      string             `json:"session_id"`
	Mode           interview.Mode     `json:"mode"`
	Persona        string             `json:"persona"`
	ProjectSummary string             `json:"project_summary,omitempty"`
	FirstQuestion  interview.Question `json:"first_question"`
}

// Start creates a session, resolves optional project context, generates the
// first question and returns it. The session is Active on return.
func (o *Orchestrator) Start(ctx context.Context, req StartRequest) (StartResponse, error) {
	mode := interview.ParseMode(req.Mode)
	id := uuid.New().String()
	sessionLogger := logger.WithSession(o.logger, id, string(mode))

	s := &Session{
		id:        id,
		mode:      mode,
		state:     stateActive,
		persona:   interview.NewPersonaEngine(),
		pressure:  interview.NewPressureEngine(),
		memory:    interview.NewMemoryEngine(),
		questions: question.New(mode, o.generator, sessionLogger),
		evaluator: evaluate.New(mode, o.generator, sessionLogger),
		store:     o.store,
		logger:    sessionLogger,
		timeout:   o.timeout,
	}

	if loaded := s.persona.Load(interview.PersonaType(req.Persona)); !loaded {
		sessionLogger.Warn("unknown persona, using default",
			zap.String("requested", req.Persona),
			zap.String("default", string(interview.DefaultPersona)))
	}

	summary := s.resolveProjectContext(ctx, o.resolver, req.GitHubURL, req.DeploymentURL)

	first, err := s.firstQuestion(ctx)
	if err != nil {
		return StartResponse{}, err
	}

	if err := o.store.CreateSession(id, mode, string(interview.PersonaType(req.Persona))); err != nil {
		sessionLogger.Warn("session persistence unavailable", zap.Error(err))
	}

	o.mu.Lock()
	o.sessions[id] = s
	o.mu.Unlock()

	return StartResponse{
		SessionID:      id,
		Mode:           mode,
		Persona:        s.persona.Behavior().Name,
		ProjectSummary: summary,
		FirstQuestion:  first,
	}, nil
}

// SubmitAnswer runs one loop iteration: record, evaluate, adjust pressure,
// generate and record the next question.
func (o *Orchestrator) SubmitAnswer(ctx context.Context, id, answer string) (interview.Question, error) {
	s, err := o.lookup(id)
	if err != nil {
		return interview.Question{}, err
	}
	return s.submitAnswer(ctx, answer)
}

// CurrentQuestion returns the question awaiting an answer.
func (o *Orchestrator) CurrentQuestion(id string) (interview.Question, error) {
	s, err := o.lookup(id)
	if err != nil {
		return interview.Question{}, err
	}
	return s.currentQuestion()
}

// IngestSignals folds a batch of behavioral telemetry into the session.
func (o *Orchestrator) IngestSignals(id string, signals []interview.Signal) error {
	s, err := o.lookup(id)
	if err != nil {
		return err
	}
	return s.ingestSignals(signals)
}

// End finishes the session and synthesizes the final report.
func (o *Orchestrator) End(ctx context.Context, id string) (interview.Report, error) {
	s, err := o.lookup(id)
	if err != nil {
		return interview.Report{}, err
	}
	return s.end(ctx)
}

// Report returns the report of an ended session.
func (o *Orchestrator) Report(id string) (interview.Report, error) {
	s, err := o.lookup(id)
	if err != nil {
		return interview.Report{}, err
	}
	return s.finalReport()
}

func (o *Orchestrator) lookup(id string) (*Session, error) {
	o.mu.RLock()
	s, ok := o.sessions[id]
	o.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}
