package domain

import (
	"os"
	"path/filepath"
)

const (
	// AppDirName is the name of the per-user cache directory.
	AppDirName = "sho"

	// FallbackDirName is used when no user cache directory is available.
	FallbackDirName = ".sho"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "sho.yaml"

	// NotesFileName is the name of the per-design notes file.
	NotesFileName = "notes.txt"

	// RepresentativeFileName holds the file name of a design's hand-picked model.
	RepresentativeFileName = "representative.txt"

	// ScriptExt is the extension that marks a capability script.
	ScriptExt = ".sho"

	// DefaultModelGlob matches model files inside a design directory.
	DefaultModelGlob = "*.pdb*"

	// DefaultPathsExport is the default output file for the selected-paths listing.
	DefaultPathsExport = "interesting_paths.txt"

	// DefaultFunnelsExport is the default output file for the funnel document.
	DefaultFunnelsExport = "interesting_funnels.html"

	// DebugLogFile is the name of the debug log file written while the TUI owns the terminal.
	DebugLogFile = "debug.log"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// Cache backend names.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendJSON   = "json"
	BackendMemory = "memory"
)

// DefaultAppDir returns the per-user directory holding the metric cache and debug log.
// It falls back to .sho in the working directory when the user cache directory is unknown.
func DefaultAppDir() string {
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		return FallbackDirName
	}
	return filepath.Join(dir, AppDirName)
}

// DefaultCachePath returns the default location of the metric cache for a backend.
// The sqlite backend uses a single file; the others use a directory.
func DefaultCachePath(backend string) string {
	switch backend {
	case BackendSQLite:
		return filepath.Join(DefaultAppDir(), "metrics.db")
	case BackendBadger:
		return filepath.Join(DefaultAppDir(), "badger")
	case BackendJSON:
		return filepath.Join(DefaultAppDir(), "entries")
	default:
		return ""
	}
}

// DefaultDebugLogPath returns the default path for the debug log.
func DefaultDebugLogPath() string {
	return filepath.Join(DefaultAppDir(), DebugLogFile)
}
