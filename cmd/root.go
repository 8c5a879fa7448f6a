package cmd

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "talent-screener"
)

type Config struct {
	Debug         bool      `mapstructure:"debug"`
	JSON          bool      `mapstructure:"json"`
	TranscriptDir string    `mapstructure:"transcript-dir"`
	AI            *AIConfig `mapstructure:"ai"`
}

type AIConfig struct {
	Provider      string        `mapstructure:"provider"`
	QuestionCount int           `mapstructure:"question-count"`
	Gemini        *GeminiConfig `mapstructure:"gemini"`
	OpenAI        *OpenAIConfig `mapstructure:"openai"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

// OpenAIConfig is accepted so existing env files keep working. Questions are
// generated by Gemini only.
type OpenAIConfig struct {
	APIKey string `mapstructure:"api-key"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talent-screener is a chat bot that collects candidate details and runs a short technical quiz",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

var envBindings = map[string]string{
	"ai.gemini.api-key":      "GOOGLE_API_KEY",
	"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
	"ai.openai.api-key":      "OPENAI_API_KEY",
	"transcript-dir":         "SCREENER_TRANSCRIPT_DIR",
}

func init() {
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talent-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// .env is optional; variables already set in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional, but one that exists must parse.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

// getConfig decodes the merged settings. Keys that match no config field
// are returned so the caller can warn about them.
func getConfig() (*Config, []string, error) {
	return decodeConfig(viper.AllSettings())
}

func decodeConfig(settings map[string]any) (*Config, []string, error) {
	config := &Config{}
	var md mapstructure.Metadata

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &md,
		Result:           config,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := decoder.Decode(settings); err != nil {
		return nil, nil, err
	}

	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.AI.OpenAI == nil {
		config.AI.OpenAI = &OpenAIConfig{}
	}

	return config, md.Unused, nil
}
