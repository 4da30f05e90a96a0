package evaluate

import (
	"fmt"
	"strings"

	"github.com/sharvarianand/intervuex/internal/interview"
)

// ReportInput collects everything report synthesis consumes. All fields are
// read-only snapshots taken after the session ends.
type ReportInput struct {
	SessionID       string
	State           interview.MemoryState
	Evaluations     []interview.Evaluation
	Signals         []interview.Signal
	SuspicionEvents int
}

// BuildReport synthesizes the final report from the recorded evaluation
// history. Skills aggregate per focus tag; the overall score is their
// unweighted mean.
func BuildReport(in ReportInput) interview.Report {
	skills := skillScores(in.Evaluations)

	report := interview.Report{
		SessionID:           in.SessionID,
		OverallScore:        overallScore(skills),
		SkillScores:         skills,
		ReasoningDepthIndex: dimensionIndex(in.Evaluations, "reasoning_depth", "depth", "technical_depth"),
		ConfidenceIndex:     confidenceIndex(in.Evaluations),
		Strengths:           in.State.StrongAreas,
		Weaknesses:          in.State.WeakAreas,
		SuspicionEvents:     in.SuspicionEvents,
	}
	report.Verdict = verdictFor(report.OverallScore)
	report.ImprovementRoadmap = roadmap(in.State.WeakAreas, skills)

	if len(in.Signals) > 0 {
		bc := behavioralConsistency(in.Signals)
		report.BehavioralConsistency = &bc
	}

	return report
}

// skillScores averages evaluation scores per focus tag, preserving the
// order each tag was first scored in.
func skillScores(evals []interview.Evaluation) []interview.SkillScore {
	type agg struct {
		sum   float64
		count int
	}
	order := []string{}
	byFocus := map[string]*agg{}

	for _, ev := range evals {
		focus := ev.Focus
		if focus == "" {
			focus = "general"
		}
		a, ok := byFocus[focus]
		if !ok {
			a = &agg{}
			byFocus[focus] = a
			order = append(order, focus)
		}
		a.sum += ev.Score
		a.count++
	}

	skills := make([]interview.SkillScore, 0, len(order))
	for _, focus := range order {
		a := byFocus[focus]
		score := a.sum / float64(a.count)
		skills = append(skills, interview.SkillScore{
			Skill:    humanize(focus),
			Score:    score,
			Feedback: bucketFeedback(score, humanize(focus)),
		})
	}
	return skills
}

func overallScore(skills []interview.SkillScore) float64 {
	if len(skills) == 0 {
		return 0.5
	}
	var sum float64
	for _, s := range skills {
		sum += s.Score
	}
	return sum / float64(len(skills))
}

func verdictFor(overall float64) interview.Verdict {
	switch {
	case overall >= 0.7:
		return interview.VerdictReady
	case overall >= 0.5:
		return interview.VerdictBorderline
	default:
		return interview.VerdictNeedsWork
	}
}

// dimensionIndex averages a sub-score across evaluations. The dimension key
// varies by interview mode, so callers list every name that carries it; the
// first present key per evaluation counts.
func dimensionIndex(evals []interview.Evaluation, dimensions ...string) float64 {
	var sum float64
	n := 0
	for _, ev := range evals {
		for _, dim := range dimensions {
			if v, ok := ev.Dimensions[dim]; ok {
				sum += v
				n++
				break
			}
		}
	}
	if n == 0 {
		return 0.5
	}
	return sum / float64(n)
}

func confidenceIndex(evals []interview.Evaluation) float64 {
	if len(evals) == 0 {
		return 0.5
	}
	var sum float64
	for _, ev := range evals {
		sum += ev.Confidence
	}
	return sum / float64(len(evals))
}

// behavioralConsistency is the mean of attention and facial confidence over
// all recorded samples.
func behavioralConsistency(signals []interview.Signal) float64 {
	var attention, confidence float64
	for _, s := range signals {
		attention += s.AttentionScore
		confidence += s.FacialConfidence
	}
	n := float64(len(signals))
	return (attention/n + confidence/n) / 2
}

func roadmap(weakAreas []string, skills []interview.SkillScore) []string {
	out := []string{}
	for _, area := range weakAreas {
		out = append(out, fmt.Sprintf("Focus on improving %s through practice and study", humanize(area)))
	}
	for _, s := range skills {
		if s.Score < 0.6 {
			out = append(out, fmt.Sprintf("Work on %s: %s", s.Skill, s.Feedback))
		}
	}
	if len(out) == 0 {
		out = append(out, "Continue building on your strong foundation")
	}
	return out
}

// humanize renders a focus tag as a display name: "system_design" becomes
// "System Design".
func humanize(tag string) string {
	words := strings.Split(tag, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
