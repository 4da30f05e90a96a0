package interview

import "fmt"

// PersonaType names an interviewer personality from the fixed catalog.
type PersonaType string

const (
	PersonaStrictProfessor PersonaType = "strict_professor"
	PersonaSkepticalJudge  PersonaType = "skeptical_judge"
	PersonaStartupCTO      PersonaType = "startup_cto"
	PersonaFriendlyHR      PersonaType = "friendly_hr"

	// DefaultPersona is used when an unrecognized persona type is requested.
	DefaultPersona = PersonaStartupCTO
)

// PersonaBehavior is the immutable behavior profile of a persona.
// Read-only after load; never mutated during a session.
type PersonaBehavior struct {
	Name               string  `json:"name"`
	QuestionStyle      string  `json:"question_style"`
	FollowUpIntensity  float64 `json:"follow_up_intensity"`
	ScoringStrictness  float64 `json:"scoring_strictness"`
	FeedbackTone       string  `json:"feedback_tone"`
	PressureMultiplier float64 `json:"pressure_multiplier"`
}

var personaCatalog = map[PersonaType]PersonaBehavior{
	PersonaStrictProfessor: {
		Name:               "Strict Professor",
		QuestionStyle:      "Academic, theory-focused, expects precise definitions and justifications",
		FollowUpIntensity:  0.9,
		ScoringStrictness:  0.85,
		FeedbackTone:       "Direct, critical, points out gaps clearly",
		PressureMultiplier: 1.2,
	},
	PersonaSkepticalJudge: {
		Name:               "Skeptical Hackathon Judge",
		QuestionStyle:      "Challenges feasibility, questions innovation claims, probes scalability",
		FollowUpIntensity:  0.8,
		ScoringStrictness:  0.75,
		FeedbackTone:       "Challenging, pushes for proof and real-world relevance",
		PressureMultiplier: 1.1,
	},
	PersonaStartupCTO: {
		Name:               "Startup CTO",
		QuestionStyle:      "Pragmatic, focused on trade-offs, architecture decisions, speed vs quality",
		FollowUpIntensity:  0.7,
		ScoringStrictness:  0.7,
		FeedbackTone:       "Conversational, interested in reasoning behind choices",
		PressureMultiplier: 1.0,
	},
	PersonaFriendlyHR: {
		Name:               "Friendly HR Interviewer",
		QuestionStyle:      "Behavioral, communication-focused, assesses cultural fit",
		FollowUpIntensity:  0.5,
		ScoringStrictness:  0.6,
		FeedbackTone:       "Warm, encouraging, focuses on strengths",
		PressureMultiplier: 0.8,
	},
}

// PersonaEngine holds the active interviewer personality for one session.
type PersonaEngine struct {
	current *PersonaBehavior
}

func NewPersonaEngine() *PersonaEngine {
	return &PersonaEngine{}
}

// Load replaces the active persona. An unrecognized type falls back to the
// default persona; loaded reports whether the requested type was known so
// callers can treat the fallback as a warning.
func (e *PersonaEngine) Load(persona PersonaType) (loaded bool) {
	behavior, ok := personaCatalog[persona]
	if !ok {
		behavior = personaCatalog[DefaultPersona]
	}
	e.current = &behavior
	return ok
}

// Behavior returns the active persona's profile. Before any Load it returns
// the zero view rather than failing.
func (e *PersonaEngine) Behavior() PersonaBehavior {
	if e.current == nil {
		return PersonaBehavior{}
	}
	return *e.current
}

// PromptModifier renders the persona as generation guidance for the content
// provider. Empty when no persona is loaded.
func (e *PersonaEngine) PromptModifier() string {
	if e.current == nil {
		return ""
	}
	return fmt.Sprintf(
		"You are acting as a %s.\nYour questioning style: %s\nYour feedback tone: %s\nFollow-up intensity level: %.1f (0-1 scale, higher means more aggressive follow-ups)\n",
		e.current.Name, e.current.QuestionStyle, e.current.FeedbackTone, e.current.FollowUpIntensity,
	)
}
