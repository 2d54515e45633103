package config

// Config is the root configuration for notch-hook.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Socket  SocketConfig  `yaml:"socket"`
	Preview PreviewConfig `yaml:"preview"`
	History HistoryConfig `yaml:"history"`
	Inspect InspectConfig `yaml:"inspect"`
	// Source is reported in every notification's metadata.
	Source string `yaml:"source"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type SocketConfig struct {
	Path string `yaml:"path"`
}

type PreviewConfig struct {
	// Dir is the root of the preview cache; artifacts go to Dir/<project>.
	Dir string `yaml:"dir"`
}

type HistoryConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retention_days"`
}

type InspectConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Token, when set, must be sent as a Bearer token to read the API.
	Token string `yaml:"token"`
}

// Defaults returns a Config with sensible default values.
func Defaults() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Socket: SocketConfig{
			Path: "~/Library/Containers/com.qingchang.notchnoti/Data/.notch.sock",
		},
		Preview: PreviewConfig{
			Dir: "~/Library/Application Support/NotchNoti/diffs",
		},
		History: HistoryConfig{
			Enabled:       true,
			Path:          "~/.config/notch-hook/history.db",
			RetentionDays: 30,
		},
		Inspect: InspectConfig{
			Host: "127.0.0.1",
			Port: 9877,
		},
		Source: "claude-code",
	}
}
