package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "interview-coach"

	defaultBankFile    = "question_bank.json"
	defaultLogFile     = "interview_log.json"
	defaultSessionsDir = "sessions"
	defaultReportFile  = "final_report.txt"
)

// Config is the application configuration, read from the config file and
// bound flags.
type Config struct {
	BankFile    string           `mapstructure:"bank-file"`
	LogFile     string           `mapstructure:"log-file"`
	SessionsDir string           `mapstructure:"sessions-dir"`
	ReportFile  string           `mapstructure:"report-file"`
	Interview   *InterviewConfig `mapstructure:"interview"`
	AI          *AIConfig        `mapstructure:"ai"`
}

// InterviewConfig carries the session entry point parameters.
type InterviewConfig struct {
	Role               string `mapstructure:"role"`
	Company            string `mapstructure:"company"`
	JobDescription     string `mapstructure:"job-description"`
	JobDescriptionFile string `mapstructure:"job-description-file"`
	MaxQuestions       int    `mapstructure:"max-questions"`
	TimeBudgetMin      int    `mapstructure:"time-budget-min"`
}

// AIConfig enables the generative content provider.
type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig stores Gemini provider configuration.
type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "interview-coach is a cli that runs adaptive mock-interview sessions with rubric-scored feedback",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A .env file is optional; missing files are fine.
	_ = godotenv.Load()

	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is interview-coach.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
		viper.SetConfigType("yaml")
	}

	err := viper.ReadInConfig()
	if err == nil {
		return
	}

	// Every key has a default, so a missing default config file is fine. An
	// explicitly requested file or a broken one is not.
	if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && cfgFile == "" {
		return
	}

	log.Fatal(err)
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.BankFile == "" {
		config.BankFile = defaultBankFile
	}
	if config.LogFile == "" {
		config.LogFile = defaultLogFile
	}
	if config.SessionsDir == "" {
		config.SessionsDir = defaultSessionsDir
	}
	if config.ReportFile == "" {
		config.ReportFile = defaultReportFile
	}
	if config.Interview == nil {
		config.Interview = &InterviewConfig{}
	}

	return config, nil
}
