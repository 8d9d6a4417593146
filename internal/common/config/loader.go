// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const placeholderAddress = "your_email@gmail.com"

// envFileNames are tried in every search directory, in order.
var envFileNames = []string{".env", "variables.env"}

// LoadResult carries the configuration plus where it came from.
type LoadResult struct {
	Config     *Config
	ConfigFile string // empty when running on defaults and env only
	EnvFile    string // empty when no env file was found
}

// Load reads configs/config.yaml (or ./config.yaml), merges
// config.<APP_ENVIRONMENT>.yaml and applies environment overrides.
func Load() (*LoadResult, error) {
	envFile := loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}
	configFile := v.ConfigFileUsed()

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	cfg, err := finish(v)
	if err != nil {
		return nil, err
	}
	cfg.App.Environment = env
	return &LoadResult{Config: cfg, ConfigFile: configFile, EnvFile: envFile}, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*LoadResult, error) {
	envFile := loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := finish(v)
	if err != nil {
		return nil, err
	}
	return &LoadResult{Config: cfg, ConfigFile: path, EnvFile: envFile}, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile loads the first env file found next to the binary's working
// directory, its parents or the project root.
func loadEnvFile() string {
	dirs := []string{".", "..", "../.."}
	if rootDir := findProjectRoot(); rootDir != "" {
		dirs = append(dirs, rootDir)
	}

	for _, dir := range dirs {
		for _, name := range envFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// setDefaults registers every key so AutomaticEnv can override it
// (GENAI_API_KEY, MAIL_SMTP_HOST, ...).
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "influencer-outreach")
	v.SetDefault("app.version", "dev")
	v.SetDefault("app.environment", "")

	v.SetDefault("data.path", "influencers.csv")
	v.SetDefault("data.delimiter", ",")
	v.SetDefault("data.max_rows", 0)

	v.SetDefault("genai.api_key", "")
	v.SetDefault("genai.model", "gemini-2.5-flash")
	v.SetDefault("genai.base_url", "")
	v.SetDefault("genai.temperature", 0.7)
	v.SetDefault("genai.json_response", true)
	v.SetDefault("genai.timeout", 120000)

	v.SetDefault("mail.provider", "smtp")
	v.SetDefault("mail.from_address", "")
	v.SetDefault("mail.from_name", "")
	v.SetDefault("mail.timeout", 30000)
	v.SetDefault("mail.smtp.host", "smtp.gmail.com")
	v.SetDefault("mail.smtp.port", 587)
	v.SetDefault("mail.smtp.username", "")
	v.SetDefault("mail.smtp.password", "")
	v.SetDefault("mail.ses.region", "")

	v.SetDefault("template.path", "")
	v.SetDefault("template.sanitize_body", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("metrics.pushgateway_url", "")
	v.SetDefault("metrics.job", "influencer_outreach")
}

// expandEnvVars expands ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			if expanded := os.ExpandEnv(strVal); expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// firstEnv returns the first non-empty value among the named variables.
func firstEnv(names ...string) string {
	for _, name := range names {
		if val := os.Getenv(name); val != "" {
			return val
		}
	}
	return ""
}

// overrideEmptyConfig fills secrets from the env names used by the
// variables.env file the tool has always shipped with.
func overrideEmptyConfig(cfg *Config) {
	if cfg.GenAI.APIKey == "" {
		cfg.GenAI.APIKey = firstEnv("GEMINI_API_KEY", "gemini_api_key", "GENAI_API_KEY")
	}

	address := firstEnv("EMAIL_ADDRESS", "email_address")
	if cfg.Mail.FromAddress == "" {
		cfg.Mail.FromAddress = address
	}
	if cfg.Mail.SMTP.Username == "" {
		if address != "" {
			cfg.Mail.SMTP.Username = address
		} else {
			cfg.Mail.SMTP.Username = cfg.Mail.FromAddress
		}
	}
	if cfg.Mail.SMTP.Password == "" {
		cfg.Mail.SMTP.Password = firstEnv("EMAIL_PASSWORD", "email_password")
	}

	if val := os.Getenv("SMTP_HOST"); val != "" {
		cfg.Mail.SMTP.Host = val
	}
	if val := os.Getenv("SMTP_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.Mail.SMTP.Port = port
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.Data.Delimiter == "" {
		cfg.Data.Delimiter = ","
	}
	if cfg.GenAI.Timeout <= 0 {
		cfg.GenAI.Timeout = 120000
	}
	if cfg.Mail.Timeout <= 0 {
		cfg.Mail.Timeout = 30000
	}
	if cfg.Mail.Provider == "" {
		cfg.Mail.Provider = "smtp"
	}
	cfg.Mail.Provider = strings.ToLower(cfg.Mail.Provider)

	ev := &cfg.Event
	if ev.Name == "" {
		ev.Name = "GAIMfes"
	}
	if ev.Host == "" {
		ev.Host = "IIM Ahmedabad"
	}
	if ev.Location == "" {
		ev.Location = "IIM Ahmedabad Campus, Gujarat, India"
	}
	if ev.Theme == "" {
		ev.Theme = "A confluence of modern digital culture, traditional arts, and intellectual exchange."
	}
	if ev.Tagline == "" {
		ev.Tagline = fmt.Sprintf("Invitation to %s Cultural Festival", ev.Name)
	}
	if ev.HeaderImage == "" {
		ev.HeaderImage = "https://pbs.twimg.com/media/FnOix3MacAEz743.jpg:large"
	}
	if ev.ClosingLine == "" {
		ev.ClosingLine = "We eagerly await the possibility of welcoming you to our campus."
	}
	if len(ev.Signature) == 0 {
		ev.Signature = []string{"Warm regards,", "The Organizing Committee", ev.Name, ev.Host}
	}
	if ev.FooterText == "" {
		ev.FooterText = "Indian Institute of Management Ahmedabad, Vastrapur, Ahmedabad, Gujarat, India"
	}

	if cfg.Mail.FromName == "" {
		cfg.Mail.FromName = fmt.Sprintf("%s Events", ev.Host)
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Metrics.Job == "" {
		cfg.Metrics.Job = "influencer_outreach"
	}
}

// validateConfig validates critical configuration fields. Missing
// credentials are not errors: the stages that need them are skipped.
func validateConfig(cfg *Config) error {
	if cfg.Data.Path == "" {
		return fmt.Errorf("data.path is required")
	}
	if len([]rune(cfg.Data.Delimiter)) != 1 {
		return fmt.Errorf("data.delimiter must be a single character, got %q", cfg.Data.Delimiter)
	}
	if cfg.Data.MaxRows < 0 {
		return fmt.Errorf("data.max_rows must not be negative")
	}
	if cfg.GenAI.Model == "" {
		return fmt.Errorf("genai.model is required")
	}
	if cfg.GenAI.Temperature < 0 || cfg.GenAI.Temperature > 2 {
		return fmt.Errorf("genai.temperature must be between 0 and 2")
	}

	switch cfg.Mail.Provider {
	case "smtp":
		if cfg.Mail.SMTP.Host == "" {
			return fmt.Errorf("mail.smtp.host is required")
		}
		if cfg.Mail.SMTP.Port <= 0 || cfg.Mail.SMTP.Port > 65535 {
			return fmt.Errorf("mail.smtp.port must be between 1 and 65535")
		}
	case "ses":
	default:
		return fmt.Errorf("mail.provider must be smtp or ses, got %q", cfg.Mail.Provider)
	}

	return ValidateLogLevel(cfg.Logging.Level)
}

// ValidateLogLevel accepts the levels the logger understands.
func ValidateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", level)
	}
}
