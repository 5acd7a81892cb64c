package server

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/parleylabs/parley/pkg/chat"
	"github.com/parleylabs/parley/pkg/stt"
	"github.com/parleylabs/parley/pkg/tts"
)

// Environment variables holding the upstream API keys. All three must be
// set; the server refuses to start without them.
const (
	EnvSTTKey  = "DEEPGRAM_API_KEY"
	EnvChatKey = "TOGETHER_API_KEY"
	EnvTTSKey  = "ELEVENLABS_API_KEY"
)

// DefaultPersona is the assistant's identity text, prepended to every
// conversation as the system prompt.
const DefaultPersona = `You are Parley, a friendly and quick-witted voice assistant. ` +
	`You speak the way people talk: plainly, warmly, and without lists or markup.`

// Config is the server configuration.
type Config struct {
	// Address to listen on (e.g., ":8080")
	ListenAddr string

	// Persona is the identity text for the system prompt.
	Persona string

	// JournalPath is the SQLite file for the turn journal.
	// Empty means turns are kept in memory only.
	JournalPath string

	Chat chat.Config
	STT  stt.Config
	TTS  tts.Config
}

// DefaultConfig returns the built-in tunables. API keys are not included;
// they only ever come from the environment.
func DefaultConfig() Config {
	return Config{
		ListenAddr: ":8080",
		Persona:    DefaultPersona,
		Chat: chat.Config{
			Model:             "meta-llama/Llama-3.3-70B-Instruct-Turbo",
			Temperature:       0.6,
			TopP:              0.9,
			TopK:              50,
			RepetitionPenalty: 1.1,
			MaxTokens:         512,
			Stop:              "<|eot_id|>",
		},
		STT: stt.Config{
			Model:    "nova-2",
			Language: "en",
		},
		TTS: tts.Config{
			VoiceID: "21m00Tcm4TlvDq8ikWAM",
			ModelID: "eleven_turbo_v2_5",
		},
	}
}

// fileConfig mirrors the optional TOML tunables file.
type fileConfig struct {
	Listen  string `toml:"listen"`
	Persona string `toml:"persona"`
	Journal string `toml:"journal"`

	Chat struct {
		BaseURL           string   `toml:"base_url"`
		Model             string   `toml:"model"`
		Temperature       *float64 `toml:"temperature"`
		TopP              *float64 `toml:"top_p"`
		TopK              *int     `toml:"top_k"`
		RepetitionPenalty *float64 `toml:"repetition_penalty"`
		MaxTokens         *int     `toml:"max_tokens"`
		Stop              *string  `toml:"stop"`
	} `toml:"chat"`

	STT struct {
		BaseURL  string `toml:"base_url"`
		Model    string `toml:"model"`
		Language string `toml:"language"`
	} `toml:"stt"`

	TTS struct {
		BaseURL string `toml:"base_url"`
		VoiceID string `toml:"voice_id"`
		ModelID string `toml:"model_id"`
	} `toml:"tts"`
}

// LoadConfig builds the runtime configuration: built-in defaults, then the
// optional TOML file at path (empty means none), then the secret API keys
// from the environment. A missing key fails here so a misconfigured
// deployment dies at startup instead of on its first request.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if path != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		applyFile(&config, &fc)
	}

	config.STT.APIKey = os.Getenv(EnvSTTKey)
	config.Chat.APIKey = os.Getenv(EnvChatKey)
	config.TTS.APIKey = os.Getenv(EnvTTSKey)

	for env, key := range map[string]string{
		EnvSTTKey:  config.STT.APIKey,
		EnvChatKey: config.Chat.APIKey,
		EnvTTSKey:  config.TTS.APIKey,
	} {
		if key == "" {
			return Config{}, fmt.Errorf("%s is not set", env)
		}
	}

	return config, nil
}

func applyFile(config *Config, fc *fileConfig) {
	if fc.Listen != "" {
		config.ListenAddr = fc.Listen
	}
	if fc.Persona != "" {
		config.Persona = fc.Persona
	}
	if fc.Journal != "" {
		config.JournalPath = fc.Journal
	}

	if fc.Chat.BaseURL != "" {
		config.Chat.BaseURL = fc.Chat.BaseURL
	}
	if fc.Chat.Model != "" {
		config.Chat.Model = fc.Chat.Model
	}
	if fc.Chat.Temperature != nil {
		config.Chat.Temperature = *fc.Chat.Temperature
	}
	if fc.Chat.TopP != nil {
		config.Chat.TopP = *fc.Chat.TopP
	}
	if fc.Chat.TopK != nil {
		config.Chat.TopK = *fc.Chat.TopK
	}
	if fc.Chat.RepetitionPenalty != nil {
		config.Chat.RepetitionPenalty = *fc.Chat.RepetitionPenalty
	}
	if fc.Chat.MaxTokens != nil {
		config.Chat.MaxTokens = *fc.Chat.MaxTokens
	}
	if fc.Chat.Stop != nil {
		config.Chat.Stop = *fc.Chat.Stop
	}

	if fc.STT.BaseURL != "" {
		config.STT.BaseURL = fc.STT.BaseURL
	}
	if fc.STT.Model != "" {
		config.STT.Model = fc.STT.Model
	}
	if fc.STT.Language != "" {
		config.STT.Language = fc.STT.Language
	}

	if fc.TTS.BaseURL != "" {
		config.TTS.BaseURL = fc.TTS.BaseURL
	}
	if fc.TTS.VoiceID != "" {
		config.TTS.VoiceID = fc.TTS.VoiceID
	}
	if fc.TTS.ModelID != "" {
		config.TTS.ModelID = fc.TTS.ModelID
	}
}
