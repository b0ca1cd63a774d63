package saveresults

import "fmt"

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Config struct {
	Backend  string `mapstructure:"backend"`
	FilePath string `mapstructure:"file_path"`
	RedisKey string `mapstructure:"redis_key"`
	TopicARN string `mapstructure:"topic_arn"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:  BackendFile,
		FilePath: "data/campaign-results.json",
		RedisKey: "outreach:campaign-results",
	}
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile:
		if c.FilePath == "" {
			return fmt.Errorf("file_path is required for the file backend")
		}
	case BackendRedis:
		if c.RedisKey == "" {
			return fmt.Errorf("redis_key is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}
