package ports

// Stater reports file modification times.
//
//go:generate mockgen -source=fs.go -destination=mocks/mock_fs.go -package=mocks
type Stater interface {
	// ModTime returns the modification time of path in UnixNano.
	ModTime(path string) (int64, error)
}

// ModelLister enumerates model files inside a design directory.
type ModelLister interface {
	// ListModels returns the absolute paths of the files directly inside dir
	// whose name matches glob, sorted. Subdirectories are not searched.
	ListModels(dir, glob string) ([]string, error)
}
