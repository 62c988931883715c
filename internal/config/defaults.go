package config

const (
	defaultConfigPath       = "~/.config/shelve/config.toml"
	defaultStateDirFallback = "~/.local/share/shelve"
	defaultLogDirName       = "logs"
	defaultExtensionsFile   = "extensions.json"
	defaultCollision        = CollisionFail
	defaultWorkers          = 1
	maxWorkers              = 64
	defaultHistoryEnabled   = true
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 30
)

// Collision policies applied when a file with the same name already exists in
// the destination category folder.
const (
	// CollisionFail leaves the file in place and records a per-file failure.
	CollisionFail = "fail"
	// CollisionSuffix moves the file under the first free "name (N).ext".
	CollisionSuffix = "suffix"
)

// Default returns a Config populated with repository defaults. The log
// directory is derived from the state directory during normalization when
// left empty.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir(),
		},
		Organize: Organize{
			Collision:      defaultCollision,
			Workers:        defaultWorkers,
			ExtensionsFile: defaultExtensionsFile,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
