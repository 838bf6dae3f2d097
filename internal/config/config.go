// Package config provides configuration management for agent-hooks.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	// DefaultLocalDir is the per-project log directory, relative to the working directory.
	DefaultLocalDir = "logs"

	// DefaultEnvFile is read when CCAOS_ENV_FILE is not set. A missing file is not an error.
	DefaultEnvFile = ".env"

	// DefaultCompletionTimeout bounds a single completion message request.
	DefaultCompletionTimeout = 10 * time.Second

	// EnvFileVar names the variable that overrides the env file path.
	EnvFileVar = "CCAOS_ENV_FILE"

	// DefaultRoot is the central log root under the home directory when GT_ROOT is unset.
	DefaultRoot = "dev/gastown_olpie101"
)

// Config holds the hook configuration. It is loaded once at process start
// and passed explicitly to everything that needs it.
type Config struct {
	// Central logging
	Role string `env:"GT_ROLE"`
	Root string `env:"GT_ROOT"`

	// Local logging
	LocalDir  string `env:"HOOK_LOG_DIR,default=logs"`
	LockLocal bool   `env:"HOOK_LOG_LOCK,default=true"`
	LogLevel  string `env:"HOOK_LOG_LEVEL,default=info"`

	// Completion message settings
	OpenAIKey         string        `env:"OPENAI_API_KEY"`
	AnthropicKey      string        `env:"ANTHROPIC_API_KEY"`
	GeminiKey         string        `env:"GEMINI_API_KEY"`
	GoogleKey         string        `env:"GOOGLE_API_KEY"`
	OpenAIModel       string        `env:"HOOK_OPENAI_MODEL,default=gpt-4o-mini"`
	AnthropicModel    string        `env:"HOOK_ANTHROPIC_MODEL,default=claude-3-5-haiku-latest"`
	GeminiModel       string        `env:"HOOK_GEMINI_MODEL,default=gemini-2.0-flash"`
	CompletionTimeout time.Duration `env:"HOOK_COMPLETION_TIMEOUT,default=10s"`
	EngineerName      string        `env:"ENGINEER_NAME"`

	// EnvFile is the env file that was consulted, if any.
	EnvFile string
}

// Default returns a Config with default values and nothing read from the environment.
func Default() *Config {
	return &Config{
		LocalDir:          DefaultLocalDir,
		LockLocal:         true,
		LogLevel:          "info",
		OpenAIModel:       "gpt-4o-mini",
		AnthropicModel:    "claude-3-5-haiku-latest",
		GeminiModel:       "gemini-2.0-flash",
		CompletionTimeout: DefaultCompletionTimeout,
	}
}

// Load reads the configuration from the process environment, layered over
// the env file named by CCAOS_ENV_FILE (or ./.env). Process variables win.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith is Load with an explicit lookuper for the process environment.
func LoadWith(ctx context.Context, env envconfig.Lookuper) (*Config, error) {
	path := DefaultEnvFile
	explicit := false
	if v, ok := env.Lookup(EnvFileVar); ok && v != "" {
		path = expandHome(v)
		explicit = true
	}

	fileVars, err := godotenv.Read(path)
	if err != nil {
		// The default .env is optional; an explicit override must exist.
		if explicit || !os.IsNotExist(err) {
			return nil, fmt.Errorf("read env file %s: %w", path, err)
		}
		fileVars = nil
		path = ""
	}

	lookuper := env
	if len(fileVars) > 0 {
		lookuper = envconfig.MultiLookuper(env, envconfig.MapLookuper(fileVars))
	}

	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	cfg.EnvFile = path
	if cfg.CompletionTimeout <= 0 {
		cfg.CompletionTimeout = DefaultCompletionTimeout
	}
	return &cfg, nil
}

// CentralEnabled reports whether records are also written to the central log.
func (c *Config) CentralEnabled() bool {
	return c.Role != ""
}

// GeminiAPIKey returns the Gemini credential. GOOGLE_API_KEY wins over GEMINI_API_KEY.
func (c *Config) GeminiAPIKey() string {
	if c.GoogleKey != "" {
		return c.GoogleKey
	}
	return c.GeminiKey
}

// CentralRoot returns the root of the central log tree: GT_ROOT, or
// ~/dev/gastown_olpie101. It fails rather than fall back to a path relative
// to the working directory when the home directory is needed but unknown.
func (c *Config) CentralRoot() (string, error) {
	root := c.Root
	if root == "" {
		root = filepath.Join("~", DefaultRoot)
	}
	if root != "~" && !strings.HasPrefix(root, "~/") {
		return root, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve central root %s: %w", root, err)
	}
	return filepath.Join(home, strings.TrimPrefix(root, "~")), nil
}

// CentralDir returns the directory holding this role's central logs.
func (c *Config) CentralDir() (string, error) {
	root, err := c.CentralRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "logs", "sessions", c.Role), nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
