package models

// SearchParams captures the normalized search inputs passed to a source.
type SearchParams struct {
	Query    string
	Location string
	Limit    int
	Remote   bool
}
