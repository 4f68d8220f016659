package shared

// Filter represents query filter options shared by list endpoints
type Filter struct {
	Offset  int
	Limit   int
	OrderBy string
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Offset:  0,
		Limit:   100,
		OrderBy: "created_at desc",
	}
}

// WithLimit returns a copy of the filter with the given limit
func (f Filter) WithLimit(limit int) Filter {
	f.Limit = limit
	return f
}
