package excel

// ReaderConfig holds configuration for reading uploaded tables
type ReaderConfig struct {
	MaxBytes  int64  `json:"max_bytes"`  // 0 means unlimited
	SheetName string `json:"sheet_name"` // empty means the first sheet
	Comma     rune   `json:"comma"`
}

// DefaultReaderConfig returns sensible defaults for table reading
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		MaxBytes: 32 << 20,
		Comma:    ',',
	}
}
