// Package config reads the ferien-checker YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/klabast/wb-services/ferien-checker/internal/logging"
)

const (
	DefaultConfigFile = "ferien-checker.yml"
	DefaultListenPort = 8080

	SourceStatic = "static"
	SourceRemote = "remote"
)

// Config holds the parsed settings. The zero value is not usable; start from
// Default or Parse.
type Config struct {
	ListenPort int
	LogLevel   logging.Level

	// Reference dataset sources, applied in this order on top of the embedded data.
	DataDir    string
	SQLitePath string
	S3Bucket   string
	S3Prefix   string
	AWSRegion  string
	AWSProfile string

	Source        string
	RemoteBaseURL string
	RemoteTimeout time.Duration
	RemoteRetries int
	RemotePerDay  bool
	RemoteRegions map[string]string
	EditMode      bool
	AuthFile      string
	DefaultFrom   string
	DefaultTo     string
	DefaultRegion string
	DefaultYear   int
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		ListenPort:    DefaultListenPort,
		LogLevel:      logging.INFO,
		Source:        SourceStatic,
		RemoteTimeout: 10 * time.Second,
		RemoteRetries: 2,
		AuthFile:      "auth.secret",
		DefaultFrom:   "15.07.2026",
		DefaultTo:     "31.08.2026",
		DefaultRegion: "NRW",
		DefaultYear:   2026,
	}
}

// Parse applies YAML data on top of the defaults.
func (c *Config) Parse(data []byte) error {
	var aux struct {
		ListenPort           int               `yaml:"listen_port"`
		LogLevel             string            `yaml:"log_level"`
		DataDir              string            `yaml:"data_dir"`
		SQLitePath           string            `yaml:"sqlite_path"`
		S3Bucket             string            `yaml:"s3_bucket"`
		S3Prefix             string            `yaml:"s3_prefix"`
		AWSRegion            string            `yaml:"aws_region"`
		AWSProfile           string            `yaml:"aws_profile"`
		Source               string            `yaml:"source"`
		RemoteBaseURL        string            `yaml:"remote_base_url"`
		RemoteTimeoutSeconds int               `yaml:"remote_timeout_seconds"`
		RemoteMaxRetries     *int              `yaml:"remote_max_retries"`
		RemotePerDay         string            `yaml:"remote_per_day_holidays"`
		RemoteRegions        map[string]string `yaml:"remote_regions"`
		EditMode             string            `yaml:"edit_mode"`
		AuthFile             string            `yaml:"auth_file"`
		Defaults             struct {
			From   string `yaml:"from"`
			To     string `yaml:"to"`
			Region string `yaml:"region"`
			Year   int    `yaml:"year"`
		} `yaml:"defaults"`
	}

	if err := yaml.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if aux.ListenPort < 0 || aux.ListenPort > 65535 {
		return fmt.Errorf("invalid listen port %d", aux.ListenPort)
	}
	if aux.ListenPort != 0 {
		c.ListenPort = aux.ListenPort
	}

	if aux.LogLevel != "" {
		level, err := logging.ParseLevel(aux.LogLevel)
		if err != nil {
			return err
		}
		c.LogLevel = level
	}

	switch strings.ToLower(aux.Source) {
	case "":
	case SourceStatic, SourceRemote:
		c.Source = strings.ToLower(aux.Source)
	default:
		return fmt.Errorf("invalid source %q (want %s or %s)", aux.Source, SourceStatic, SourceRemote)
	}

	if aux.RemoteTimeoutSeconds < 0 {
		return errors.New("remote_timeout_seconds must not be negative")
	}
	if aux.RemoteTimeoutSeconds > 0 {
		c.RemoteTimeout = time.Duration(aux.RemoteTimeoutSeconds) * time.Second
	}
	if aux.RemoteMaxRetries != nil {
		if *aux.RemoteMaxRetries < 0 {
			return errors.New("remote_max_retries must not be negative")
		}
		c.RemoteRetries = *aux.RemoteMaxRetries
	}

	if aux.RemotePerDay != "" {
		perDay, err := strconv.ParseBool(aux.RemotePerDay)
		if err != nil {
			logging.Error("Invalid value: %v for remote_per_day_holidays. Using range requests...", aux.RemotePerDay)
		} else {
			c.RemotePerDay = perDay
		}
	}
	if aux.EditMode != "" {
		edit, err := strconv.ParseBool(aux.EditMode)
		if err != nil {
			logging.Error("Invalid value: %v for edit_mode. Disabling edit mode...", aux.EditMode)
		} else {
			c.EditMode = edit
		}
	}

	c.DataDir = aux.DataDir
	c.SQLitePath = aux.SQLitePath
	c.S3Bucket = aux.S3Bucket
	c.S3Prefix = aux.S3Prefix
	c.AWSRegion = aux.AWSRegion
	c.AWSProfile = aux.AWSProfile
	c.RemoteBaseURL = aux.RemoteBaseURL
	c.RemoteRegions = aux.RemoteRegions
	if aux.AuthFile != "" {
		c.AuthFile = aux.AuthFile
	}

	if aux.Defaults.From != "" {
		c.DefaultFrom = aux.Defaults.From
	}
	if aux.Defaults.To != "" {
		c.DefaultTo = aux.Defaults.To
	}
	if aux.Defaults.Region != "" {
		c.DefaultRegion = aux.Defaults.Region
	}
	if aux.Defaults.Year != 0 {
		c.DefaultYear = aux.Defaults.Year
	}

	if c.S3Bucket != "" && c.AWSRegion == "" {
		return errors.New("aws_region is required when s3_bucket is set")
	}
	return nil
}

// Load reads path (or $FERIEN_CONFIG, or DefaultConfigFile) and applies the
// AUTH_FILE environment override. A missing default file yields Default().
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		if env := os.Getenv("FERIEN_CONFIG"); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultConfigFile
		}
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logging.Info("Loaded configuration from %s", path)
	case errors.Is(err, os.ErrNotExist) && !explicit:
		logging.Debug("No configuration file at %s, using defaults", path)
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if env := os.Getenv("AUTH_FILE"); env != "" {
		cfg.AuthFile = env
	}
	return cfg, nil
}
