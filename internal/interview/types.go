// Package interview holds the core types and engines of the adaptive
// interview control loop: persona behavior, pressure tracking and the
// session memory of questions, answers and evaluations.
package interview

import "time"

// Mode selects the interview style and the question strategy behind it.
type Mode string

const (
	ModeTechnical     Mode = "technical"
	ModeBehavioral    Mode = "behavioral"
	ModeProjectReview Mode = "project_review"
)

// ParseMode maps external mode names (including the legacy aliases used by
// older clients) onto a known Mode. Unknown input defaults to technical.
func ParseMode(s string) Mode {
	switch s {
	case "technical", "interview":
		return ModeTechnical
	case "behavioral", "hr":
		return ModeBehavioral
	case "project_review", "project-review", "viva", "hackathon":
		return ModeProjectReview
	default:
		return ModeTechnical
	}
}

// Difficulty is the tier attached to a generated question.
type Difficulty string

const (
	DifficultyLow    Difficulty = "low"
	DifficultyMedium Difficulty = "medium"
	DifficultyHigh   Difficulty = "high"
)

// Question is one turn's prompt. Immutable once issued.
type Question struct {
	Text               string     `json:"question"`
	Focus              string     `json:"focus"`
	Difficulty         Difficulty `json:"difficulty"`
	FollowUp           bool       `json:"follow_up"`
	VerificationIntent string     `json:"verification_intent,omitempty"`
}

// Evaluation is the scored outcome of one answer. Immutable once recorded.
type Evaluation struct {
	Score          float64            `json:"score"`
	Focus          string             `json:"focus"`
	Dimensions     map[string]float64 `json:"dimensions,omitempty"`
	Confidence     float64            `json:"confidence"`
	Feedback       string             `json:"feedback"`
	Strength       string             `json:"strength,omitempty"`
	Weakness       string             `json:"weakness,omitempty"`
	FollowUpNeeded bool               `json:"follow_up_needed"`
}

// Signal is one behavioral telemetry sample from an external sensor stream.
type Signal struct {
	EyeGazeStability float64   `json:"eye_gaze_stability"`
	FacialConfidence float64   `json:"facial_confidence"`
	AttentionScore   float64   `json:"attention_score"`
	Timestamp        time.Time `json:"timestamp"`
}

// SkillScore is one aggregated skill line in the final report.
type SkillScore struct {
	Skill    string  `json:"skill"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// Verdict is the banded outcome of a finished session.
type Verdict string

const (
	VerdictReady      Verdict = "Ready"
	VerdictBorderline Verdict = "Borderline"
	VerdictNeedsWork  Verdict = "Needs Work"
)

// Report is the synthesized outcome of a finished session.
type Report struct {
	SessionID             string       `json:"session_id"`
	OverallScore          float64      `json:"overall_score"`
	Verdict               Verdict      `json:"verdict"`
	SkillScores           []SkillScore `json:"skill_scores"`
	ReasoningDepthIndex   float64      `json:"reasoning_depth_index"`
	ConfidenceIndex       float64      `json:"confidence_index"`
	BehavioralConsistency *float64     `json:"behavioral_consistency,omitempty"`
	ImprovementRoadmap    []string     `json:"improvement_roadmap"`
	Strengths             []string     `json:"strengths"`
	Weaknesses            []string     `json:"weaknesses"`
	SuspicionEvents       int          `json:"suspicion_events,omitempty"`
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
