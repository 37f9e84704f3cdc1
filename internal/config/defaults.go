package config

const (
	defaultDataDir      = "~/.local/share/readstudy/volumes"
	defaultDatabasePath = "~/.local/share/readstudy/readstudy.db"
	defaultExportDir    = "~/.local/share/readstudy/exports"
	defaultLogDir       = "~/.local/share/readstudy/logs"
	defaultAPIBind      = "127.0.0.1:7860"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"

	// SHA-256 of the placeholder password shipped with the sample config.
	defaultPasswordHash = "8d969eef6ecad3c29a3a629280e686cf0c3f5d5a86aff3ca12020c923adc6c92"

	defaultSessionTTLMinutes = 720
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:      defaultDataDir,
			DatabasePath: defaultDatabasePath,
			ExportDir:    defaultExportDir,
			LogDir:       defaultLogDir,
			APIBind:      defaultAPIBind,
		},
		Auth: Auth{
			// PasswordHash stays empty here so normalize can consult the
			// READSTUDY_PASSWORD_HASH env var before the built-in digest.
			SessionTTLMinutes: defaultSessionTTLMinutes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
