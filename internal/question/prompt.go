package question

import (
	"fmt"
	"strings"
)

// buildPrompt assembles the generation request from the strategy framing,
// persona, project context, interview progress and pressure guidance, ending
// with the expected response shape.
func buildPrompt(s strategy, in Input) string {
	var b strings.Builder

	b.WriteString(s.instructions)
	b.WriteString("\n")

	if in.Persona.Name != "" {
		fmt.Fprintf(&b, "\nYou are acting as: %s\n", in.Persona.Name)
		fmt.Fprintf(&b, "Questioning style: %s\n", in.Persona.QuestionStyle)
	}

	if c := in.Context; c != nil {
		b.WriteString("\n--- PROJECT CONTEXT ---\n")
		fmt.Fprintf(&b, "Summary: %s\n", orDefault(c.Summary, "No summary"))
		if len(c.TechStack) > 0 {
			fmt.Fprintf(&b, "Tech Stack: %s\n", strings.Join(c.TechStack, ", "))
		}
		fmt.Fprintf(&b, "Architecture: %s\n", orDefault(c.Architecture, "Unknown"))
		if c.Readme != "" {
			excerpt := c.Readme
			if len(excerpt) > 500 {
				excerpt = excerpt[:500]
			}
			fmt.Fprintf(&b, "README excerpt: %s\n", excerpt)
		}
	}

	b.WriteString("\n--- INTERVIEW PROGRESS ---\n")
	fmt.Fprintf(&b, "Questions asked: %d\n", in.Memory.QuestionCount)
	if len(in.Memory.WeakAreas) > 0 {
		fmt.Fprintf(&b, "Identified weak areas: %s\n", strings.Join(in.Memory.WeakAreas, ", "))
	}
	if len(in.Memory.StrongAreas) > 0 {
		fmt.Fprintf(&b, "Strong areas: %s\n", strings.Join(in.Memory.StrongAreas, ", "))
	}
	if in.Memory.LastAnswerQuality != "" {
		fmt.Fprintf(&b, "Last answer quality: %s\n", in.Memory.LastAnswerQuality)
	}
	if len(in.Memory.Coverage) > 0 {
		fmt.Fprintf(&b, "Topics already covered (do NOT repeat): %s\n", strings.Join(in.Memory.Coverage, ", "))
	}

	switch {
	case in.PressureLevel > 0.7:
		b.WriteString("\nIncrease difficulty. Ask follow-up or multi-part questions.\n")
	case in.PressureLevel < 0.3:
		b.WriteString("\nKeep difficulty moderate. Build candidate confidence.\n")
	}
	if in.Modifiers.DefensiveProbing {
		b.WriteString("Probe defensively: challenge claims and ask for proof.\n")
	}
	fmt.Fprintf(&b, "Follow-up likelihood: %.1f. Hints: %s.\n",
		in.Modifiers.FollowUpLikelihood, in.Modifiers.HintAvailability)

	if len(in.RecentSignals) > 0 {
		var attention float64
		for _, sig := range in.RecentSignals {
			attention += sig.AttentionScore
		}
		if attention/float64(len(in.RecentSignals)) < 0.5 {
			b.WriteString("\nCandidate may be distracted. Ask a conceptual 'explain in your own words' question.\n")
		}
	}

	b.WriteString("\n--- GENERATE NEXT QUESTION ---\n")
	b.WriteString("Generate a single, focused question. Respond in JSON format:\n")
	b.WriteString(`{"question": "...", "focus": "...", "difficulty": "low|medium|high", "follow_up": true|false, "verification_intent": "..."}`)

	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
