package domain

import "path/filepath"

const (
	// GraphCacheDirName is the name of the internal workspace directory.
	GraphCacheDirName = ".graphcache"

	// StoreDirName is the name of the session store directory.
	StoreDirName = "store"

	// SessionFileExt is the extension of encoded session files.
	SessionFileExt = ".bin"

	// ResolutionFileName is the default name of a resolution description file.
	ResolutionFileName = "resolution.yaml"

	// DefaultSessionName is used when no session name is given to the write command.
	DefaultSessionName = "default"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultGraphCachePath returns the default root directory for graphcache metadata.
func DefaultGraphCachePath() string {
	return GraphCacheDirName
}

// DefaultStorePath returns the default path for the session store.
// It joins .graphcache and store.
func DefaultStorePath() string {
	return filepath.Join(GraphCacheDirName, StoreDirName)
}
