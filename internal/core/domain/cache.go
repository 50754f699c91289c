package domain

// CacheEntry is a memoized extraction result for one model file at one
// modification time. It is valid only while the file's modification time
// still equals ModTime.
type CacheEntry struct {
	Path    string  `json:"path"`
	ModTime int64   `json:"mtime"`
	Metrics Metrics `json:"metrics"`
}

// Valid reports whether the entry matches the given on-disk modification time.
func (e *CacheEntry) Valid(modTime int64) bool {
	return e != nil && e.ModTime == modTime
}
