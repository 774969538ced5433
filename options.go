package redline

// CompareOptions holds configuration for a document comparison.
type CompareOptions struct {
	// Tab targeting
	tabID string

	// Segment filtering
	excludeHeaders   bool
	excludeFooters   bool
	excludeFootnotes bool
}

// defaultOptions returns the default comparison options.
func defaultOptions() CompareOptions {
	return CompareOptions{
		tabID:            "", // empty means the documents' own tab
		excludeHeaders:   false,
		excludeFooters:   false,
		excludeFootnotes: false,
	}
}

// clone creates a copy of CompareOptions.
func (o CompareOptions) clone() CompareOptions {
	return CompareOptions{
		tabID:            o.tabID,
		excludeHeaders:   o.excludeHeaders,
		excludeFooters:   o.excludeFooters,
		excludeFootnotes: o.excludeFootnotes,
	}
}
