package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spigell/talent-screener/internal/logger"
	"github.com/spigell/talent-screener/internal/session"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var questionsCmd = &cobra.Command{
	Use:   "questions <position>",
	Short: "Generate and print the quiz a candidate for the position would get",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		questions(cmd, strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)
}

func questions(cmd *cobra.Command, position string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config := loadConfig(logger)

	generator, err := newQuestionGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("question generation is unavailable, the fallback quiz will be used", zap.Error(err))
	}

	quiz := session.NewMachine(generator, logger).BuildQuiz(ctx, position)

	pretty, err := json.MarshalIndent(quiz, "", "  ")
	if err != nil {
		logger.Fatal("encoding questions", zap.Error(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
	logger.Info("questions generated", zap.String("position", position), zap.Int("count", len(quiz)))
}
