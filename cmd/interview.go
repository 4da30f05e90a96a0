package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sharvarianand/intervuex/internal/interview"
	"github.com/sharvarianand/intervuex/internal/logger"
	"github.com/sharvarianand/intervuex/internal/project"
	"github.com/sharvarianand/intervuex/internal/session"
)

const (
	PromptKeepGoing  = "Answer the question"
	PromptEndSession = "End the interview"

	endKeyword = "/end"
)

var modePrompt = promptui.Select{
	Label: "Choose an interview mode",
	Items: []string{"technical", "behavioral", "project_review"},
}

var personaPrompt = promptui.Select{
	Label: "Choose an interviewer persona",
	Items: []string{"startup_cto", "strict_professor", "skeptical_judge", "friendly_hr"},
}

var turnPrompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptKeepGoing, PromptEndSession},
}

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run an interactive interview session in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		runInterview(cmd)
	},
}

func init() {
	rootCmd.AddCommand(interviewCmd)

	interviewCmd.Flags().StringP("mode", "m", "", "interview mode: technical, behavioral or project_review")
	interviewCmd.Flags().StringP("persona", "p", "", "interviewer persona")
	interviewCmd.Flags().String("github-url", "", "GitHub repository to interview against")
	interviewCmd.Flags().String("deployment-url", "", "live deployment to probe")
}

func runInterview(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(app, viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	mode := cmd.Flag("mode").Value.String()
	if mode == "" {
		if _, mode, err = modePrompt.Run(); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	persona := cmd.Flag("persona").Value.String()
	if persona == "" {
		if _, persona, err = personaPrompt.Run(); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	store := buildStore(config, logger)
	defer store.Close()

	orchestrator := session.NewOrchestrator(
		buildGenerator(ctx, config, logger),
		logger,
		session.WithResolver(project.NewAnalyzer(logger)),
		session.WithStore(store),
	)

	started, err := orchestrator.Start(ctx, session.StartRequest{
		Mode:          mode,
		Persona:       persona,
		GitHubURL:     cmd.Flag("github-url").Value.String(),
		DeploymentURL: cmd.Flag("deployment-url").Value.String(),
	})
	if err != nil {
		logger.Fatal("starting the interview", zap.Error(err))
	}

	fmt.Printf("\nInterviewer: %s\n", started.Persona)
	if started.ProjectSummary != "" {
		fmt.Printf("Project: %s\n", started.ProjectSummary)
	}
	fmt.Printf("\nType your answers. Enter %q to finish.\n", endKeyword)

	question := started.FirstQuestion
	for {
		printQuestion(question)

		answer, err := readAnswer()
		if err != nil {
			if errors.Is(err, errEndRequested) {
				break
			}
			logger.Fatal("reading answer", zap.Error(err))
		}

		question, err = orchestrator.SubmitAnswer(ctx, started.SessionID, answer)
		if err != nil {
			logger.Fatal("submitting answer", zap.Error(err))
		}
	}

	report, err := orchestrator.End(ctx, started.SessionID)
	if err != nil {
		logger.Fatal("ending the interview", zap.Error(err))
	}
	printReport(report)
}

var errEndRequested = errors.New("end requested")

func readAnswer() (string, error) {
	for {
		answerPrompt := promptui.Prompt{Label: "Your answer"}
		answer, err := answerPrompt.Run()
		if err != nil {
			return "", err
		}

		answer = strings.TrimSpace(answer)
		if answer == endKeyword {
			return "", errEndRequested
		}
		if answer != "" {
			return answer, nil
		}

		_, action, err := turnPrompt.Run()
		if err != nil {
			return "", err
		}
		if action == PromptEndSession {
			return "", errEndRequested
		}
	}
}

func printQuestion(q interview.Question) {
	fmt.Printf("\n[%s / %s] %s\n", q.Focus, q.Difficulty, q.Text)
}

func printReport(report interview.Report) {
	pretty, _ := json.MarshalIndent(report, "", "  ")
	fmt.Printf("\n--- FINAL REPORT ---\n%s\n", pretty)
}
