package config

const (
	defaultFallbackDir  = "~/WhisperLite"
	defaultLogDir       = "~/.local/share/whisperlite/logs"
	defaultBind         = "127.0.0.1:7517"
	defaultModelName    = "small"
	defaultDevice       = "auto"
	defaultBeamSize     = 5
	defaultNumWorkers   = 1
	defaultPythonBinary = "python3"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			FallbackDir: defaultFallbackDir,
			LogDir:      defaultLogDir,
			Bind:        defaultBind,
		},
		Model: Model{
			Name:         defaultModelName,
			Device:       defaultDevice,
			BeamSize:     defaultBeamSize,
			NumWorkers:   defaultNumWorkers,
			PythonBinary: defaultPythonBinary,
			VADFilter:    true,
		},
		Outputs: Outputs{
			SRT: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
