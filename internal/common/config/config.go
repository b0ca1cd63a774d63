// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Mail          MailConfig         `mapstructure:"mail"`
	GenAI         GenAIConfig        `mapstructure:"genai"`
	Campaign      CampaignConfig     `mapstructure:"campaign"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Metrics       MetricsConfig      `mapstructure:"metrics"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// StorageConfig selects where businesses and campaign reports live.
type StorageConfig struct {
	Backend       string `mapstructure:"backend"`        // file | postgres
	ReportBackend string `mapstructure:"report_backend"` // file | redis
	DataDir       string `mapstructure:"data_dir"`
	BusinessFile  string `mapstructure:"business_file"`
	ResultsFile   string `mapstructure:"results_file"`
	TemplateDir   string `mapstructure:"template_dir"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address   string `mapstructure:"address"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	ReportKey string `mapstructure:"report_key"`
}

// MailConfig holds settings for the outbound mail transport.
type MailConfig struct {
	Provider    string `mapstructure:"provider"` // smtp | ses
	DefaultFrom string `mapstructure:"default_from"`

	SMTP struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		UseTLS   bool   `mapstructure:"use_tls"`
	} `mapstructure:"smtp"`

	SES struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"ses"`
}

// GenAIConfig holds settings for the text-generation API.
type GenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// CampaignConfig holds dispatch settings.
type CampaignConfig struct {
	SendDelay          int    `mapstructure:"send_delay"` // milliseconds
	TrackingEnabled    bool   `mapstructure:"tracking_enabled"`
	TrackingURL        string `mapstructure:"tracking_url"`
	UnsubscribeAddress string `mapstructure:"unsubscribe_address"`
	TemplateName       string `mapstructure:"template_name"`
	Subject            string `mapstructure:"subject"`
}

// NotificationConfig holds settings for the campaign summary notification.
type NotificationConfig struct {
	SNS struct {
		Enabled  bool   `mapstructure:"enabled"`
		Region   string `mapstructure:"region"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sns"`
}

// MetricsConfig controls the optional /metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
