package fsutil

// File and directory permission constants used for downloaded data,
// extracted container members and generated catalogues.
const (
	// FileModeDefault is used for downloaded and extracted files: -rw-r--r--.
	FileModeDefault = 0o644
	// FileModeSecure is used for the config file: -rw-r-----.
	FileModeSecure = 0o640

	// DirModeDefault is used for working directories: drwxr-xr-x.
	DirModeDefault = 0o755
	// DirModeSecure is used for the config directory: drwxr-x---.
	DirModeSecure = 0o750
)
