package businessdirectory

import "fmt"

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

type Config struct {
	Backend  string `mapstructure:"backend"`
	FilePath string `mapstructure:"file_path"`
	Table    string `mapstructure:"table"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:  BackendFile,
		FilePath: "data/businesses.json",
		Table:    "businesses",
	}
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile:
		if c.FilePath == "" {
			return fmt.Errorf("file_path is required for the file backend")
		}
	case BackendPostgres:
		if c.Table == "" {
			return fmt.Errorf("table is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}
