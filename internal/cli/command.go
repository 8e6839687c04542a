package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/minichat/internal"
	"codeberg.org/snonux/minichat/internal/audio"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "minichat",
		Short: "Mini desktop chatbot with voice input and output",
		Long: `minichat answers questions from a table of question/answer pairs.

Questions can be typed or spoken. Replies are shown in the chat window
and read aloud. A responses file (JSON or YAML) extends the built-in
answers.

Examples:
  minichat                          # Launch the chat window (default)
  minichat -r faq.json --watch      # Use faq.json and reload it on change
  minichat --ask "hello"            # Print a single reply and exit
  minichat --batch checks.txt       # Answer or check many questions`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.minichat.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.ResponsesFile, "responses", "r", flags.ResponsesFile, "Responses file (JSON or YAML)")
	cmd.Flags().BoolVar(&flags.Watch, "watch", false, "Reload the responses file when it changes")
	cmd.Flags().StringVar(&flags.Ask, "ask", "", "Print the reply to a single question and exit")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Answer questions from file (one per line, 'question = expected' to check)")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List OpenAI speech models available for the current API key")
	cmd.Flags().BoolVar(&flags.NoSpeech, "no-speech", false, "Disable spoken replies")

	// Speech output flags
	cmd.Flags().StringVar(&flags.TTSProvider, "tts", flags.TTSProvider, "Speech output: espeak, openai or none")
	cmd.Flags().StringVar(&flags.Voice, "voice", flags.Voice, "espeak-ng voice: "+strings.Join(audio.ListVoices(), ", "))
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, ballad, coral, echo, fable, onyx, nova, sage, shimmer, verse")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0, may be ignored by gpt-4o-mini-tts)")
	cmd.Flags().StringVar(&flags.OpenAIInstruction, "openai-instruction", "", "Voice instructions for gpt-4o-mini-tts model")

	// Speech input flags
	cmd.Flags().StringVar(&flags.STTProvider, "stt", flags.STTProvider, "Speech input: whisper, gemini or none")
	cmd.Flags().StringVar(&flags.Language, "language", flags.Language, "Spoken language hint for speech input")
	cmd.Flags().DurationVar(&flags.ListenTimeout, "listen-timeout", flags.ListenTimeout, "How long to wait for speech to start")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("responses.file", cmd.Flags().Lookup("responses"))
	viper.BindPFlag("responses.watch", cmd.Flags().Lookup("watch"))
	viper.BindPFlag("tts.provider", cmd.Flags().Lookup("tts"))
	viper.BindPFlag("tts.voice", cmd.Flags().Lookup("voice"))
	viper.BindPFlag("tts.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("tts.openai_voice", cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag("tts.openai_speed", cmd.Flags().Lookup("openai-speed"))
	viper.BindPFlag("tts.openai_instruction", cmd.Flags().Lookup("openai-instruction"))
	viper.BindPFlag("stt.provider", cmd.Flags().Lookup("stt"))
	viper.BindPFlag("stt.language", cmd.Flags().Lookup("language"))
	viper.BindPFlag("stt.listen_timeout", cmd.Flags().Lookup("listen-timeout"))
	viper.SetDefault("stt.gemini_model", "gemini-2.0-flash")
}

// InitConfig initializes viper configuration. A .env file in the working
// directory is loaded first so API keys can live next to the binary.
func InitConfig(cfgFile string) {
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".minichat" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".minichat")
	}

	// Environment variables
	viper.SetEnvPrefix("MINICHAT")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("openai.api_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("gemini.api_key")
}
