package config

import (
	"errors"
	"fmt"
	"strings"
)

var knownVADMethods = map[string]struct{}{
	"silero":   {},
	"pyannote": {},
}

var knownModels = map[string]struct{}{
	"tiny":           {},
	"base":           {},
	"small":          {},
	"medium":         {},
	"large":          {},
	"large-v2":       {},
	"large-v3":       {},
	"large-v3-turbo": {},
}

// Validate checks configuration consistency after normalization.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.InputDir) == "" {
		problems = append(problems, "paths.input_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		problems = append(problems, "paths.output_dir must be set")
	}
	if c.Paths.InputDir != "" && c.Paths.InputDir == c.Paths.OutputDir {
		problems = append(problems, "paths.output_dir must differ from paths.input_dir")
	}

	if err := c.Window().Validate(); err != nil {
		problems = append(problems, fmt.Sprintf("trim: %v", err))
	}

	if c.Pairing.OriginalMarker == c.Pairing.DiarizedMarker {
		problems = append(problems, "pairing markers must differ")
	}

	if _, ok := knownModels[c.WhisperX.Model]; !ok {
		problems = append(problems, fmt.Sprintf("whisperx.model %q is not a known model size", c.WhisperX.Model))
	}
	if _, ok := knownVADMethods[c.WhisperX.VADMethod]; !ok {
		problems = append(problems, fmt.Sprintf("whisperx.vad_method %q must be silero or pyannote", c.WhisperX.VADMethod))
	}
	if c.WhisperX.VADMethod == "pyannote" && c.WhisperX.HFToken == "" {
		problems = append(problems, "whisperx.hf_token required for pyannote VAD (or set HF_TOKEN)")
	}

	switch c.Export.Backend {
	case "local":
	case "s3":
		if c.Export.S3Bucket == "" {
			problems = append(problems, "export.s3_bucket required when export.backend is s3")
		}
		if c.Export.S3Region == "" {
			problems = append(problems, "export.s3_region required when export.backend is s3")
		}
	default:
		problems = append(problems, fmt.Sprintf("export.backend %q must be local or s3", c.Export.Backend))
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q must be console or json", c.Logging.Format))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
