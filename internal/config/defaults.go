package config

const (
	defaultInputDir       = "~/sentrim/input"
	defaultOutputDir      = "~/sentrim/output"
	defaultWorkDir        = "~/.local/share/sentrim/work"
	defaultLogDir         = "~/.local/share/sentrim/logs"
	defaultMinSeconds     = 60.0
	defaultMaxSeconds     = 120.0
	defaultOriginalMarker = "_original"
	defaultDiarizedMarker = "_part1"
	defaultWhisperXModel  = "base"
	defaultLanguage       = "en"
	defaultVADMethod      = "silero"
	defaultExportBackend  = "local"
	defaultNtfyTimeout    = 10
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultRetentionDays  = 60
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
			WorkDir:   defaultWorkDir,
			LogDir:    defaultLogDir,
		},
		Trim: Trim{
			MinSeconds: defaultMinSeconds,
			MaxSeconds: defaultMaxSeconds,
		},
		Pairing: Pairing{
			OriginalMarker: defaultOriginalMarker,
			DiarizedMarker: defaultDiarizedMarker,
		},
		WhisperX: WhisperX{
			Model:     defaultWhisperXModel,
			Language:  defaultLanguage,
			VADMethod: defaultVADMethod,
		},
		Export: Export{
			Backend: defaultExportBackend,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultRetentionDays,
		},
	}
}
