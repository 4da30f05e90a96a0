package evaluate

import (
	"fmt"
	"strings"

	"github.com/sharvarianand/intervuex/internal/interview"
	"github.com/sharvarianand/intervuex/internal/project"
)

func evalSystemPrompt(mode interview.Mode) string {
	base := "You are an expert interview evaluator. Score answers strictly and without bias."
	switch mode {
	case interview.ModeBehavioral:
		return base + " Expect STAR-structured answers grounded in specific past situations; penalize hypotheticals."
	case interview.ModeProjectReview:
		return base + " The candidate is defending their own project; penalize answers that suggest they did not build or understand it."
	default:
		return base + " Weigh technical accuracy, trade-off awareness and reasoning depth."
	}
}

// dimensionsFor lists the per-mode sub-score set: technical answers are
// rated on accuracy and depth, behavioral ones on the STAR breakdown, viva
// answers on ownership and honesty.
func dimensionsFor(mode interview.Mode) []string {
	switch mode {
	case interview.ModeBehavioral:
		return []string{"situation", "task", "action", "result", "authenticity", "self_awareness"}
	case interview.ModeProjectReview:
		return []string{"ownership", "technical_depth", "decision_reasoning", "honesty"}
	default:
		return []string{"technical_accuracy", "depth", "practical_knowledge", "communication"}
	}
}

var dimensionGuidance = map[string]string{
	"technical_accuracy":  "Is the information correct?",
	"depth":               "How deep is the understanding shown?",
	"practical_knowledge": "Does it show real-world experience?",
	"communication":       "Is the explanation clear?",

	"situation":      "Did they describe a clear, specific situation?",
	"task":           "Was their role and responsibility clear?",
	"action":         "Did they explain their specific actions?",
	"result":         "Was there a measurable outcome?",
	"authenticity":   "Does this sound like a real experience?",
	"self_awareness": "Do they show reflection?",

	"ownership":          "Does it sound like they actually built this?",
	"technical_depth":    "Do they understand the internals?",
	"decision_reasoning": "Can they explain why decisions were made?",
	"honesty":            "Do they acknowledge what they don't know?",
}

func evalPrompt(mode interview.Mode, q interview.Question, answer string, pctx *project.Context) string {
	var b strings.Builder

	b.WriteString("Evaluate the following interview answer.\n\n")
	fmt.Fprintf(&b, "QUESTION: %s\n", q.Text)
	fmt.Fprintf(&b, "FOCUS AREA: %s\n", q.Focus)
	if q.Difficulty != "" {
		fmt.Fprintf(&b, "DIFFICULTY: %s\n", q.Difficulty)
	}
	if q.VerificationIntent != "" {
		fmt.Fprintf(&b, "VERIFICATION INTENT: %s\n", q.VerificationIntent)
	}
	fmt.Fprintf(&b, "\nCANDIDATE'S ANSWER: %s\n", answer)

	if pctx != nil && pctx.Summary != "" {
		fmt.Fprintf(&b, "\nPROJECT CONTEXT: %s\n", pctx.Summary)
	}

	dims := dimensionsFor(mode)
	b.WriteString("\nRate the answer on these dimensions (0.0 to 1.0):\n")
	for i, dim := range dims {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, dim, dimensionGuidance[dim])
	}

	b.WriteString("\nRespond in JSON format ONLY:\n{\"score\": 0.0, ")
	for _, dim := range dims {
		fmt.Fprintf(&b, "%q: 0.0, ", dim)
	}
	b.WriteString(`"confidence": 0.0, "feedback": "Constructive 1-2 sentence feedback", "strength": "One key strength shown", "improvement": "One area to improve"}`)

	return b.String()
}
