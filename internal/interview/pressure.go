package interview

const (
	pressureInitial = 0.5
	pressureFloor   = 0.2
	pressureCeil    = 1.0

	pressureRaise = 0.15
	pressureDrop  = 0.10
	pressureNudge = 0.05
)

// PressureEngine tracks the scalar difficulty level for one session and
// moves it in response to answer scores. Not safe for concurrent use; the
// orchestrator serializes access.
type PressureEngine struct {
	level           float64
	consecutiveGood int
	consecutiveWeak int
}

func NewPressureEngine() *PressureEngine {
	return &PressureEngine{level: pressureInitial}
}

// Level returns the current pressure level in [0.2, 1.0].
func (e *PressureEngine) Level() float64 {
	return e.level
}

// Adjust moves the level based on one answer score. Two consecutive good
// answers raise the level and keep raising it on every further good answer
// while the streak holds; the same repeat-fire rule applies to weak streaks.
// Average answers drift the level back toward the middle.
func (e *PressureEngine) Adjust(score float64) {
	switch {
	case score >= 0.7:
		e.consecutiveGood++
		e.consecutiveWeak = 0
		if e.consecutiveGood >= 2 {
			e.level = clamp(e.level+pressureRaise, pressureFloor, pressureCeil)
		}
	case score < 0.4:
		e.consecutiveWeak++
		e.consecutiveGood = 0
		if e.consecutiveWeak >= 2 {
			e.level = clamp(e.level-pressureDrop, pressureFloor, pressureCeil)
		}
	default:
		if e.level > pressureInitial {
			e.level -= pressureNudge
		} else if e.level < pressureInitial {
			e.level += pressureNudge
		}
		e.consecutiveGood = 0
		e.consecutiveWeak = 0
	}
}

// Nudge shifts the level additively, clamped to the usual bounds. It is a
// secondary modifier for behavioral suspicion and leaves streak counters
// untouched.
func (e *PressureEngine) Nudge(delta float64) {
	e.level = clamp(e.level+delta, pressureFloor, pressureCeil)
}

// Reset returns the engine to its initial state. Only used between sessions.
func (e *PressureEngine) Reset() {
	e.level = pressureInitial
	e.consecutiveGood = 0
	e.consecutiveWeak = 0
}

// Modifiers is the discrete question-generation bundle derived from the
// current pressure tier.
type Modifiers struct {
	TimePressure       string  `json:"time_pressure"`
	FollowUpLikelihood float64 `json:"follow_up_likelihood"`
	MultiPartQuestions bool    `json:"multi_part_questions"`
	DefensiveProbing   bool    `json:"defensive_probing"`
	HintAvailability   string  `json:"hint_availability"`
}

// Modifiers maps the current level into one of four tiers.
func (e *PressureEngine) Modifiers() Modifiers {
	switch {
	case e.level >= 0.8:
		return Modifiers{
			TimePressure:       "high",
			FollowUpLikelihood: 0.9,
			MultiPartQuestions: true,
			DefensiveProbing:   true,
			HintAvailability:   "none",
		}
	case e.level >= 0.6:
		return Modifiers{
			TimePressure:       "medium",
			FollowUpLikelihood: 0.7,
			MultiPartQuestions: true,
			DefensiveProbing:   false,
			HintAvailability:   "limited",
		}
	case e.level >= 0.4:
		return Modifiers{
			TimePressure:       "normal",
			FollowUpLikelihood: 0.5,
			MultiPartQuestions: false,
			DefensiveProbing:   false,
			HintAvailability:   "available",
		}
	default:
		return Modifiers{
			TimePressure:       "relaxed",
			FollowUpLikelihood: 0.3,
			MultiPartQuestions: false,
			DefensiveProbing:   false,
			HintAvailability:   "generous",
		}
	}
}
