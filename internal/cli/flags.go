package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile       string
	ResponsesFile string
	Watch         bool
	Ask           string
	BatchFile     string
	ListModels    bool
	NoSpeech      bool

	// Speech output
	TTSProvider       string
	Voice             string
	OpenAIModel       string
	OpenAIVoice       string
	OpenAISpeed       float64
	OpenAIInstruction string

	// Speech input
	STTProvider   string
	Language      string
	ListenTimeout time.Duration
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		ResponsesFile: "responses.json",
		TTSProvider:   "espeak",
		Voice:         "en",
		OpenAIModel:   "gpt-4o-mini-tts",
		OpenAIVoice:   "alloy",
		OpenAISpeed:   1.0,
		STTProvider:   "whisper",
		Language:      "en",
		ListenTimeout: 8 * time.Second,
	}
}
