package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Perplexity struct {
	APIKey           string        `yaml:"api_key" env:"API_KEY"`
	BaseURL          string        `yaml:"base_url" env:"PPLX_BASE_URL" env-default:"https://api.perplexity.ai"`
	ModelCardsURL    string        `yaml:"model_cards_url" env:"PPLX_MODEL_CARDS_URL" env-default:"https://docs.perplexity.ai/docs/model-cards"`
	SystemPrompt     string        `yaml:"system_prompt" env:"PPLX_SYSTEM_PROMPT"`
	MaxContextTokens int           `yaml:"max_context_tokens" env:"PPLX_MAX_CONTEXT_TOKENS"`
	RequestTimeout   time.Duration `yaml:"request_timeout" env:"PPLX_REQUEST_TIMEOUT"`
}

type Web struct {
	Address        string   `yaml:"address" env:"WEB_ADDRESS" env-default:":8000"`
	DefaultModel   string   `yaml:"default_model" env:"WEB_DEFAULT_MODEL" env-default:"codellama-34b-instruct"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"WEB_ALLOWED_ORIGINS" env-separator:","`
}

type Console struct {
	Models         []string `yaml:"models" env:"CONSOLE_MODELS" env-separator:"," env-default:"codellama-34b-instruct,llama-2-70b-chat,mistral-7b-instruct,openhermes-2-mistral-7b,openhermes-2.5-mistral-7b,pplx-7b-chat-alpha,pplx-70b-chat-alpha"`
	QuitToken      string   `yaml:"quit_token" env:"CONSOLE_QUIT_TOKEN" env-default:"/q"`
	RenderMarkdown bool     `yaml:"render_markdown" env:"CONSOLE_RENDER_MARKDOWN"`
	HistoryFile    string   `yaml:"history_file" env:"CONSOLE_HISTORY_FILE" env-default:".pplx_history"`
}

type Storage struct {
	Backend        string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"file"`
	Dir            string `yaml:"dir" env:"STORAGE_DIR" env-default:"."`
	RedisAddr      string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisKeyPrefix string `yaml:"redis_key_prefix" env:"REDIS_KEY_PREFIX" env-default:"pplx_context_"`
}

type Log struct {
	File string `yaml:"file" env:"LOG_FILE" env-default:"app.log"`
}

type Config struct {
	Perplexity Perplexity `yaml:"perplexity"`
	Web        Web        `yaml:"web"`
	Console    Console    `yaml:"console"`
	Storage    Storage    `yaml:"storage"`
	Log        Log        `yaml:"log"`
}

// LoadConfig reads an optional .env file, then the config file at cfgPath
// (skipped when empty), then the environment. Environment values win.
func LoadConfig(cfgPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	var cfg Config
	if cfgPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadConfig(cfgPath, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
