package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/content"
	"github.com/spigell/interview-coach/internal/content/gemini"
	"github.com/spigell/interview-coach/internal/interview"
	"github.com/spigell/interview-coach/internal/logger"
	"github.com/spigell/interview-coach/internal/presenter"
	"github.com/spigell/interview-coach/internal/questionbank"
	"github.com/spigell/interview-coach/internal/secrets"
	"github.com/spigell/interview-coach/internal/session"
	"github.com/spigell/interview-coach/internal/sessionlog"
)

const (
	PromptShowTranscript = "Show full transcript"
	PromptSaveReport     = "Save report to file"
	PromptExit           = "Exit"
)

var errExit = errors.New("exit requested")

var closingPrompt = promptui.Select{
	Label: "Interview finished. What next?",
	Items: []string{PromptShowTranscript, PromptSaveReport, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive mock-interview session",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("role", "", "candidate role, e.g. 'Backend Developer'")
	runCmd.Flags().String("company", "", "target company for company research")
	runCmd.Flags().String("job-description", "", "job description text")
	runCmd.Flags().String("job-description-file", "", "file with the job description text")
	runCmd.Flags().Int("max-questions", 0, "question quota for the session (default 5)")
	runCmd.Flags().Int("time-budget", 0, "time budget in minutes (default 15)")
	runCmd.Flags().String("session", "", "session id for the new session. Default is a generated uuid.")
	runCmd.Flags().String("resume", "", "resume a checkpointed session by id")
	runCmd.Flags().BoolP("no-prompt", "y", false, "skip the closing menu: print the transcript, save the report and exit")

	viper.BindPFlag("interview.role", runCmd.Flags().Lookup("role"))
	viper.BindPFlag("interview.company", runCmd.Flags().Lookup("company"))
	viper.BindPFlag("interview.job-description", runCmd.Flags().Lookup("job-description"))
	viper.BindPFlag("interview.job-description-file", runCmd.Flags().Lookup("job-description-file"))
	viper.BindPFlag("interview.max-questions", runCmd.Flags().Lookup("max-questions"))
	viper.BindPFlag("interview.time-budget-min", runCmd.Flags().Lookup("time-budget"))
}

// run is the main command for the cli: one full human-in-the-loop session.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the interview-coach", zap.String("version", version))

	bank := questionbank.Load(config.BankFile, logger)
	provider := prepareContentProvider(ctx, config.AI, logger)
	store := session.NewStore(config.SessionsDir, logger)
	history := sessionlog.New(config.LogFile, logger)

	state, err := prepareState(ctx, cmd, config, store, bank, provider, logger)
	if err != nil {
		logger.Fatal("preparing the session", zap.Error(err))
	}

	engine := interview.NewEngine(state, bank, provider, logger)

	if err := conduct(engine, store, logger); err != nil {
		logger.Fatal("conducting the interview", zap.Error(err))
	}

	finish(cmd, engine.State(), history, config, logger)
}

// prepareState either resumes a checkpointed session or creates and prepares
// a fresh one.
func prepareState(ctx context.Context, cmd *cobra.Command, config *Config, store *session.Store, bank *questionbank.Bank, provider content.Provider, log *zap.Logger) (*interview.State, error) {
	if resumeID := cmd.Flag("resume").Value.String(); resumeID != "" {
		state, err := store.Resume(resumeID)
		if err != nil {
			return nil, fmt.Errorf("resuming session %q: %w", resumeID, err)
		}
		return state, nil
	}

	jd, err := resolveJobDescription(config.Interview)
	if err != nil {
		return nil, err
	}

	state := interview.NewState("", interview.Settings{
		JobDescription: jd,
		Role:           config.Interview.Role,
		TargetCompany:  config.Interview.Company,
		MaxQuestions:   config.Interview.MaxQuestions,
		TimeBudgetMin:  config.Interview.TimeBudgetMin,
	})

	id := store.Create(cmd.Flag("session").Value.String(), state)
	log.Info("session created", logger.SessionFields(id, state.Role)...)

	engine := interview.NewEngine(state, bank, provider, log)
	if err := engine.Prepare(ctx); err != nil {
		return nil, err
	}

	printPreparation(state)

	return state, nil
}

func resolveJobDescription(cfg *InterviewConfig) (string, error) {
	if cfg.JobDescriptionFile != "" {
		data, err := os.ReadFile(cfg.JobDescriptionFile)
		if err != nil {
			return "", fmt.Errorf("reading job description file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return cfg.JobDescription, nil
}

// conduct drives the state machine until the terminal persist action,
// suspending on the candidate's answers and checkpointing after every step.
func conduct(engine *interview.Engine, store *session.Store, logger *zap.Logger) error {
	state := engine.State()

	answerPrompt := promptui.Prompt{
		Label: "Candidate Answer",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("please give an answer")
			}
			return nil
		},
	}

	for {
		if engine.AwaitingAnswer() {
			answer, err := answerPrompt.Run()
			if err != nil {
				return fmt.Errorf("reading answer: %w", err)
			}

			if rec := engine.Step(answer); rec != nil {
				fmt.Printf("\n%s", rec.Feedback)
				fmt.Printf("Time Taken: %.0f seconds\n", rec.TimeTakenSec)
				fmt.Println(strings.Repeat("-", 50))
			}

			checkpoint(store, state, logger)
			continue
		}

		action := engine.Advance()
		checkpoint(store, state, logger)

		switch action {
		case interview.ActionAskQuestion:
			fmt.Printf("\nQUESTION %d:\n%s\n", state.QuestionCounter, state.CurrentQuestion.Text)
		case interview.ActionFollowUp:
			fmt.Printf("\nFOLLOW-UP:\n%s\n", state.CurrentQuestion.Text)
		case interview.ActionSalaryNegotiation:
			if engine.AwaitingAnswer() {
				fmt.Printf("\nNow, let's discuss salary. %s\n", state.CurrentQuestion.Text)
			}
		case interview.ActionPersist:
			return nil
		}
	}
}

// finish records the terminal session and serves the closing menu.
func finish(cmd *cobra.Command, state *interview.State, history *sessionlog.Log, config *Config, logger *zap.Logger) {
	if err := history.Append(sessionlog.NewEntry(state)); err != nil {
		// Persistence problems are reported but never corrupt the session.
		logger.Error("appending session to log", zap.Error(err))
	}

	view := presenter.New(os.Stdout)

	if cmd.Flag("no-prompt").Value.String() == "true" {
		view.Transcript(state)
		saveReport(view, state, config.ReportFile, logger)
		return
	}

	for {
		_, action, err := closingPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleClosingAction(action, view, state, config, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleClosingAction(action string, view *presenter.Presenter, state *interview.State, config *Config, logger *zap.Logger) error {
	switch action {
	case PromptShowTranscript:
		view.Transcript(state)
		return nil
	case PromptSaveReport:
		saveReport(view, state, config.ReportFile, logger)
		return nil
	case PromptExit:
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func saveReport(view *presenter.Presenter, state *interview.State, path string, logger *zap.Logger) {
	if err := view.SaveReport(path, state); err != nil {
		logger.Error("saving report", zap.Error(err))
		return
	}
	fmt.Printf("\nComplete interview transcript saved to %s\n", path)
}

func checkpoint(store *session.Store, state *interview.State, logger *zap.Logger) {
	if err := store.Checkpoint(state.SessionID); err != nil {
		logger.Warn("checkpointing session", zap.Error(err))
	}
}

func printPreparation(state *interview.State) {
	bar := strings.Repeat("=", 20)

	fmt.Printf("\n%s JOB SUMMARY %s\n", bar, bar)
	fmt.Println(state.JDSummary)
	fmt.Printf("Skills extracted: %s\n", strings.Join(state.RequiredSkills, ", "))
	fmt.Printf("Soft Skills: %s\n", strings.Join(state.SoftSkills, ", "))

	fmt.Printf("\n%s COMPANY INSIGHTS %s\n", bar, bar)
	fmt.Println(state.CompanyInsights)

	fmt.Printf("\n%s ROLE ANALYSIS & REQUIRED COMPETENCIES %s\n", bar, bar)
	fmt.Println(state.RoleAnalysis)
	fmt.Println("Key Competencies:")
	for _, competency := range state.Competencies {
		fmt.Printf("- %s\n", competency)
	}

	fmt.Printf("\n%s INTERVIEW STARTS NOW %s\n", bar, bar)
}

// prepareContentProvider builds the generative provider when AI is enabled,
// falling back to the templated one on any configuration problem.
func prepareContentProvider(ctx context.Context, cfg *AIConfig, log *zap.Logger) content.Provider {
	templated := content.NewTemplateProvider()

	if cfg == nil || !cfg.Enabled {
		return templated
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		log.Warn("unsupported ai provider, using templated content", zap.String("provider", cfg.Provider))
		return templated
	}

	if cfg.Gemini == nil {
		cfg.Gemini = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		log.Warn("skipping generative content provider", zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file or GEMINI_API_KEY"))
		return templated
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		log.Warn("skipping generative content provider", zap.Error(err))
		return templated
	}

	return gemini.NewProvider(generator, templated, log, cfg.Gemini.MaxLogLength)
}
