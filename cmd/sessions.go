package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/logger"
	"github.com/spigell/interview-coach/internal/session"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List checkpointed sessions that can be resumed with 'run --resume'",
	Run: func(_ *cobra.Command, _ []string) {
		listSessions()
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func listSessions() {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	store := session.NewStore(config.SessionsDir, zlog)

	ids, err := store.List()
	if err != nil {
		zlog.Fatal("listing sessions", zap.Error(err))
	}

	if len(ids) == 0 {
		fmt.Println("No checkpointed sessions found.")
		return
	}

	fmt.Printf("Checkpointed sessions (%d):\n", len(ids))
	for _, id := range ids {
		fmt.Printf("- %s\n", id)
	}
}
