package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spigell/talent-screener/internal/ai"
	"github.com/spigell/talent-screener/internal/ai/gemini"
	"github.com/spigell/talent-screener/internal/chat"
	"github.com/spigell/talent-screener/internal/logger"
	"github.com/spigell/talent-screener/internal/secrets"
	"github.com/spigell/talent-screener/internal/session"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	providerGemini = "gemini"
	providerOpenAI = "openai"
)

var errExit = errors.New("exit requested")

var resetPrompt = promptui.Prompt{
	Label:     "Start over? Everything collected so far will be lost",
	IsConfirm: true,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start a screening conversation with a candidate",
	Run: func(cmd *cobra.Command, _ []string) {
		runChat(cmd)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().BoolP("plain", "p", false, "read plain lines from stdin instead of an interactive prompt")
	chatCmd.Flags().StringP("transcript-dir", "t", "", "write the conversation transcript as json into this directory when the chat ends")

	viper.BindPFlag("transcript-dir", chatCmd.Flags().Lookup("transcript-dir"))
}

// runChat is the main command for the cli.
func runChat(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config := loadConfig(logger)

	logger.Info("starting the talent-screener", zap.String("version", version))

	generator, err := newQuestionGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("question generation is unavailable, the fallback quiz will be used",
			zap.Error(err),
			zap.String("hint", "set GOOGLE_API_KEY or ai.gemini.api-key-file"),
		)
	}

	plain, _ := cmd.Flags().GetBool("plain")

	renderer := chat.NewConsoleRenderer(cmd.OutOrStdout())
	renderer.EchoUser = plain

	conversation := chat.NewConversation(session.NewMachine(generator, logger), renderer, logger)
	conversation.Start()

	read := promptReader()
	if plain {
		read = plainReader(cmd.InOrStdin())
	}

	for {
		line, err := read()
		if err != nil {
			if isEndOfInput(err) {
				logger.Info("exiting", zap.String("reason", "end of input"))
				break
			}
			logger.Fatal("reading input", zap.Error(err))
		}

		if err := handleLine(ctx, cmd.OutOrStdout(), conversation, line, plain, config.TranscriptDir, logger); err != nil {
			if errors.Is(err, errExit) {
				break
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	if err := saveTranscript(conversation.Finish(), config.TranscriptDir, logger); err != nil {
		logger.Error("saving transcript", zap.Error(err))
	}
}

func loadConfig(logger *zap.Logger) *Config {
	config, unused, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	for _, key := range unused {
		logger.Warn("unknown config key", zap.String("key", key))
	}

	return config
}

func handleLine(ctx context.Context, out io.Writer, conversation *chat.Conversation, line string, plain bool, transcriptDir string, logger *zap.Logger) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	command, ok := chat.ParseCommand(line)
	if !ok {
		if done := conversation.Handle(ctx, line); done {
			return errExit
		}
		return nil
	}

	switch command {
	case chat.CommandStatus:
		fmt.Fprintf(out, "%s\n\n", conversation.Status())
	case chat.CommandHelp:
		fmt.Fprintf(out, "%s\n\n", chat.HelpText)
	case chat.CommandReset:
		if !plain {
			if _, err := resetPrompt.Run(); err != nil {
				if errors.Is(err, promptui.ErrAbort) {
					return nil
				}
				return err
			}
		}
		previous := conversation.Reset()
		logger.Info("conversation reset", zap.String("previous_session_id", previous.SessionID))
		if err := saveTranscript(previous, transcriptDir, logger); err != nil {
			logger.Error("saving transcript", zap.Error(err))
		}
	default:
		return fmt.Errorf("invalid command: %s", command)
	}

	return nil
}

func saveTranscript(transcript *chat.Transcript, dir string, logger *zap.Logger) error {
	if dir == "" || transcript.Len() == 0 {
		return nil
	}

	filename, err := transcript.DumpToDir(dir)
	if err != nil {
		return fmt.Errorf("dump transcript: %w", err)
	}

	logger.Info("dumping transcript to file", zap.String("filename", filename))
	return nil
}

type lineReader func() (string, error)

func promptReader() lineReader {
	p := promptui.Prompt{Label: "You"}
	return func() (string, error) {
		return p.Run()
	}
}

func plainReader(in io.Reader) lineReader {
	scanner := bufio.NewScanner(in)
	return func() (string, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return scanner.Text(), nil
	}
}

func isEndOfInput(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrInterrupt)
}

// newQuestionGenerator returns nil together with the error when no
// generator can be built.
func newQuestionGenerator(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.QuestionGenerator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case "", providerGemini:
	case providerOpenAI:
		return nil, errors.New("openai is not supported for question generation, use gemini")
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.OpenAI.APIKey != "" {
		log.Debug("openai api key is configured but not used")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   "GOOGLE_API_KEY",
	})
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, gemini.SystemPrompt)
	if err != nil {
		return nil, err
	}

	genLogger := logger.WithCommonFields(log, providerGemini, generator.Model())

	return gemini.NewQuestioner(generator, cfg.QuestionCount, cfg.Gemini.MaxLogLength, genLogger), nil
}
