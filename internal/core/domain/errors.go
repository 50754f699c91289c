package domain

import "go.trai.ch/zerr"

var (
	// ErrNoDirectories is returned when no design directories are given.
	ErrNoDirectories = zerr.New("no design directories specified")

	// ErrDirectoryUnreadable is returned when a design directory cannot be listed.
	ErrDirectoryUnreadable = zerr.New("failed to read design directory")

	// ErrFailedToGetAbsPath is returned when a path cannot be made absolute.
	ErrFailedToGetAbsPath = zerr.New("failed to get absolute path")

	// ErrEmptyDesign is reported when a design directory holds no model files.
	ErrEmptyDesign = zerr.New("design has no models")

	// ErrDesignNotFound is returned when a design id is not loaded.
	ErrDesignNotFound = zerr.New("design not found")

	// ErrNoBestModel is reported when a design has no model carrying the primary metric.
	ErrNoBestModel = zerr.New("design has no best model")

	// ErrModelParseFailed is returned when a model file cannot be read as a structural model.
	ErrModelParseFailed = zerr.New("failed to parse model file")

	// ErrExtractionFailed is returned when a metric extractor fails for a whole batch.
	ErrExtractionFailed = zerr.New("metric extraction failed")

	// ErrExtractorOutputMismatch is returned when a batch extractor returns a different number of results than inputs.
	ErrExtractorOutputMismatch = zerr.New("extractor returned a different number of results than inputs")

	// ErrPathStatFailed is returned when stating a model path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrCacheOpenFailed is returned when the metric cache cannot be opened or created.
	ErrCacheOpenFailed = zerr.New("failed to open metric cache")

	// ErrCacheReadFailed is returned when a cache entry cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read metric cache")

	// ErrCacheWriteFailed is returned when a cache entry cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write metric cache")

	// ErrCacheDeleteFailed is returned when a cache entry cannot be removed.
	ErrCacheDeleteFailed = zerr.New("failed to delete metric cache entry")

	// ErrCacheMarshalFailed is returned when a cache entry cannot be marshaled.
	ErrCacheMarshalFailed = zerr.New("failed to marshal cache entry")

	// ErrCacheUnmarshalFailed is returned when a cache entry cannot be unmarshaled.
	ErrCacheUnmarshalFailed = zerr.New("failed to unmarshal cache entry")

	// ErrUnknownCacheBackend is returned when the configured cache backend is not supported.
	ErrUnknownCacheBackend = zerr.New("unknown cache backend, expected 'sqlite', 'badger', 'json' or 'memory'")

	// ErrCapabilityFailed is returned when a capability script or viewer cannot be started.
	ErrCapabilityFailed = zerr.New("failed to invoke capability")

	// ErrCapabilityNotExecutable is returned when a capability script lacks the executable bit.
	ErrCapabilityNotExecutable = zerr.New("capability is not executable")

	// ErrViewerNotFound is returned when a configured viewer is not on PATH.
	ErrViewerNotFound = zerr.New("viewer not found on PATH")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidLimitPolicy is returned when a metric declares an unknown axis limit policy.
	ErrInvalidLimitPolicy = zerr.New("invalid limit policy, expected 'range', 'percentile85' or 'fraction_of_max'")

	// ErrNotesReadFailed is returned when a design's notes cannot be read.
	ErrNotesReadFailed = zerr.New("failed to read design notes")

	// ErrNotesWriteFailed is returned when a design's notes cannot be written.
	ErrNotesWriteFailed = zerr.New("failed to write design notes")

	// ErrRepresentativeReadFailed is returned when a design's representative cannot be read.
	ErrRepresentativeReadFailed = zerr.New("failed to read design representative")

	// ErrRepresentativeWriteFailed is returned when a design's representative cannot be written.
	ErrRepresentativeWriteFailed = zerr.New("failed to write design representative")

	// ErrModelNotFound is returned when a model path does not belong to a loaded design.
	ErrModelNotFound = zerr.New("model not found in design")

	// ErrNoDesignsSelected is returned when an export is requested with an empty selection.
	ErrNoDesignsSelected = zerr.New("no designs selected")

	// ErrExportWriteFailed is returned when an export file cannot be written.
	ErrExportWriteFailed = zerr.New("failed to write export")

	// ErrChartRenderFailed is returned when a funnel chart cannot be rendered.
	ErrChartRenderFailed = zerr.New("failed to render funnel chart")

	// ErrWatcherFailed is returned when the directory watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to start directory watcher")

	// ErrTraceFileFailed is returned when the trace output file cannot be created.
	ErrTraceFileFailed = zerr.New("failed to create trace file")

	// ErrUnknownMetric is returned when a requested metric is not defined for the loaded designs.
	ErrUnknownMetric = zerr.New("metric not defined for loaded designs")
)
