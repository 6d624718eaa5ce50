package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config is the root configuration for chatrelay. It is loaded once at
// startup and treated as immutable for the process lifetime: components
// receive the values they need at construction, never ambient lookups.
type Config struct {
	Server   ServerConfig   `json:"server"`
	Relay    RelayConfig    `json:"relay"`
	Slack    SlackConfig    `json:"slack"`
	Chatwork ChatworkConfig `json:"chatwork"`
	Logging  LoggingConfig  `json:"logging"`
}

type ServerConfig struct {
	Host string `json:"host" env:"CHATRELAY_SERVER_HOST"`
	Port int    `json:"port" env:"CHATRELAY_SERVER_PORT"`
}

type RelayConfig struct {
	// DestinationWebhookURL receives every forwarded message. The URL is a
	// pre-shared secret; the POST carries no auth header.
	DestinationWebhookURL  string `json:"destinationWebhookUrl" env:"CHATRELAY_DESTINATION_WEBHOOK_URL"`
	OutboundTimeoutSeconds int    `json:"outboundTimeoutSeconds" env:"CHATRELAY_OUTBOUND_TIMEOUT_SECONDS"`
	SuppressRulesFile      string `json:"suppressRulesFile" env:"CHATRELAY_SUPPRESS_RULES_FILE"`
}

type SlackConfig struct {
	BotToken               string   `json:"botToken" env:"CHATRELAY_SLACK_BOT_TOKEN"`
	SigningSecrets         []string `json:"signingSecrets" env:"CHATRELAY_SLACK_SIGNING_SECRETS"`
	SuppressSenderRefs     []string `json:"suppressSenderRefs" env:"CHATRELAY_SLACK_SUPPRESS_SENDER_REFS"`
	SuppressNameSubstrings []string `json:"suppressNameSubstrings" env:"CHATRELAY_SLACK_SUPPRESS_NAME_SUBSTRINGS"`
}

type ChatworkConfig struct {
	APIToken               string   `json:"apiToken" env:"CHATRELAY_CHATWORK_API_TOKEN"`
	WebhookTokens          []string `json:"webhookTokens" env:"CHATRELAY_CHATWORK_WEBHOOK_TOKENS"`
	SuppressSenderRefs     []string `json:"suppressSenderRefs" env:"CHATRELAY_CHATWORK_SUPPRESS_SENDER_REFS"`
	SuppressNameSubstrings []string `json:"suppressNameSubstrings" env:"CHATRELAY_CHATWORK_SUPPRESS_NAME_SUBSTRINGS"`
}

type LoggingConfig struct {
	Level string `json:"level" env:"CHATRELAY_LOG_LEVEL"`
}

// Load builds the configuration: defaults, then the optional JSON config
// file (with ${VAR} expansion), then environment variable overrides. A
// missing file is only an error when a path was explicitly given.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
		}
		data = []byte(ExpandEnvVars(string(data)))
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("cannot parse environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} in config strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-(.*?))?\}`)

// ExpandEnvVars replaces ${VAR} with the environment variable value.
// ${VAR:-default} uses "default" when VAR is unset or empty.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		varName := groups[1]
		defaultVal := ""
		hasDefault := len(groups) >= 3 && groups[2] != ""
		if hasDefault {
			defaultVal = groups[2]
		}

		val, exists := os.LookupEnv(varName)
		if !exists || val == "" {
			if hasDefault {
				return defaultVal
			}
			return match
		}
		return val
	})
}

// Validate checks that the config has valid values. Missing secrets are
// deliberately not validated here: a stateless handler must detect them per
// request and fail that request alone, never the process.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}
	if cfg.Relay.OutboundTimeoutSeconds < 1 || cfg.Relay.OutboundTimeoutSeconds > 120 {
		errs = append(errs, "relay.outboundTimeoutSeconds must be between 1 and 120")
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		errs = append(errs, "logging.level must be one of: debug, info, warn, error")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// SlogLevel maps the configured level name to a slog level.
func SlogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
