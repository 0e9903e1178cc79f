package flags

// Centralized definitions for CLI flags used across the application

const (
	// Backend flags select which storage backend an operation talks to
	Backend      = "backend"
	BackendShort = "b"

	// Workdir flags select the root of the local file tree that refs resolve against
	Workdir      = "workdir"
	WorkdirShort = "w"

	// Checksum flags control the content-hash comparison; disabling it overwrites unconditionally
	Checksum = "checksum"

	// Backup flags enable buffering the previous destination content before a destructive overwrite
	Backup = "backup"

	// Latest flags request the newest stored version on versioned backends
	Latest = "latest"

	// Prefix flags filter listings and mirror operations
	Prefix = "prefix"

	// Long flags include per-object metadata in listings
	Long = "long"

	// Up flags flip a mirror operation to push local content to the remote side
	Up = "up"

	// Force flags are used to bypass interactive confirmation prompts for destructive operations
	Force      = "force"
	ForceShort = "f"

	// Debug flags are used to enable verbose logging
	Debug      = "debug"
	DebugShort = "d"
)
