package storagemodels

// ScanOptions configures how a scan walks the table
type ScanOptions struct {
	PageSize       int32              // Items evaluated per DynamoDB page (0: service default)
	ConsistentRead bool               // Strongly consistent reads
	PageHandler    func(ScanProgress) // Optional callback after every page
}

// ScanProgress tracks scan progress
type ScanProgress struct {
	PagesProcessed int   // Pages read so far
	ItemsScanned   int64 // Items evaluated before filtering
	ItemsMatched   int64 // Items kept by the filter
}

// ScanOption is a functional option for configuring scans
type ScanOption func(*ScanOptions)

// DefaultScanOptions returns default scan options
func DefaultScanOptions() ScanOptions {
	return ScanOptions{}
}

// ApplyScanOptions folds opts over the defaults
func ApplyScanOptions(opts ...ScanOption) ScanOptions {
	options := DefaultScanOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// WithPageSize sets the DynamoDB page size
func WithPageSize(size int32) ScanOption {
	return func(opts *ScanOptions) {
		opts.PageSize = size
	}
}

// WithConsistentRead requests strongly consistent reads
func WithConsistentRead() ScanOption {
	return func(opts *ScanOptions) {
		opts.ConsistentRead = true
	}
}

// WithPageHandler sets a progress callback
func WithPageHandler(handler func(ScanProgress)) ScanOption {
	return func(opts *ScanOptions) {
		opts.PageHandler = handler
	}
}
