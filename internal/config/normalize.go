package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// envOverrides carries the environment surface layered over the TOML file.
// Secrets stay out of config files; deployment-specific values can be set
// without editing them.
type envOverrides struct {
	HFToken         string `env:"HF_TOKEN"`
	HFTokenHub      string `env:"HUGGING_FACE_HUB_TOKEN"`
	NtfyTopic       string `env:"SENTRIM_NTFY_TOPIC"`
	S3Bucket        string `env:"SENTRIM_S3_BUCKET"`
	S3Region        string `env:"SENTRIM_S3_REGION"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	LogLevel        string `env:"SENTRIM_LOG_LEVEL"`
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.applyEnvOverrides(); err != nil {
		return err
	}
	c.normalizePairing()
	c.normalizeWhisperX()
	c.normalizeExport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	var env envOverrides
	if err := envconfig.Process(context.Background(), &env); err != nil {
		return fmt.Errorf("read environment overrides: %w", err)
	}

	if c.WhisperX.HFToken == "" {
		if env.HFToken != "" {
			c.WhisperX.HFToken = strings.TrimSpace(env.HFToken)
		} else if env.HFTokenHub != "" {
			c.WhisperX.HFToken = strings.TrimSpace(env.HFTokenHub)
		}
	}
	if c.Notifications.NtfyTopic == "" {
		c.Notifications.NtfyTopic = strings.TrimSpace(env.NtfyTopic)
	}
	if c.Export.S3Bucket == "" {
		c.Export.S3Bucket = strings.TrimSpace(env.S3Bucket)
	}
	if c.Export.S3Region == "" {
		c.Export.S3Region = strings.TrimSpace(env.S3Region)
	}
	if c.Export.AccessKeyID == "" {
		c.Export.AccessKeyID = strings.TrimSpace(env.AccessKeyID)
	}
	if c.Export.SecretAccessKey == "" {
		c.Export.SecretAccessKey = strings.TrimSpace(env.SecretAccessKey)
	}
	if override := strings.TrimSpace(env.LogLevel); override != "" {
		c.Logging.Level = override
	}
	return nil
}

func (c *Config) normalizePairing() {
	c.Pairing.OriginalMarker = strings.TrimSpace(c.Pairing.OriginalMarker)
	if c.Pairing.OriginalMarker == "" {
		c.Pairing.OriginalMarker = defaultOriginalMarker
	}
	c.Pairing.DiarizedMarker = strings.TrimSpace(c.Pairing.DiarizedMarker)
	if c.Pairing.DiarizedMarker == "" {
		c.Pairing.DiarizedMarker = defaultDiarizedMarker
	}
}

func (c *Config) normalizeWhisperX() {
	c.WhisperX.Model = strings.TrimSpace(c.WhisperX.Model)
	if c.WhisperX.Model == "" {
		c.WhisperX.Model = defaultWhisperXModel
	}
	c.WhisperX.Language = strings.TrimSpace(c.WhisperX.Language)
	c.WhisperX.VADMethod = strings.ToLower(strings.TrimSpace(c.WhisperX.VADMethod))
	if c.WhisperX.VADMethod == "" {
		c.WhisperX.VADMethod = defaultVADMethod
	}
	c.WhisperX.HFToken = strings.TrimSpace(c.WhisperX.HFToken)
}

func (c *Config) normalizeExport() {
	c.Export.Backend = strings.ToLower(strings.TrimSpace(c.Export.Backend))
	if c.Export.Backend == "" {
		c.Export.Backend = defaultExportBackend
	}
	c.Export.S3Bucket = strings.TrimSpace(c.Export.S3Bucket)
	c.Export.S3Region = strings.TrimSpace(c.Export.S3Region)
	c.Export.S3Endpoint = strings.TrimSpace(c.Export.S3Endpoint)
	c.Export.S3Prefix = strings.Trim(strings.TrimSpace(c.Export.S3Prefix), "/")
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyTimeout
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
