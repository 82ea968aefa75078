package askdex

// Filters narrows retrieval to documents matching the given metadata.
// Empty fields are ignored.
type Filters struct {
	Author   string `json:"author,omitempty"`
	Category string `json:"category,omitempty"`
	Date     string `json:"date,omitempty"`
}

// Document is a retrieved source document returned alongside an answer.
type Document struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Author   string `json:"author,omitempty"`
	Category string `json:"category,omitempty"`
	Date     string `json:"date,omitempty"`
}

// Answer is a generated answer together with the documents it was
// grounded on.
type Answer struct {
	Answer    string     `json:"answer"`
	Documents []Document `json:"documents"`
}

// FilterValues lists the filter values present in the index.
type FilterValues struct {
	Authors    []string `json:"authors"`
	Categories []string `json:"categories"`
}

// HealthStatus reports the service health and the state of each
// dependency check.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type chatRequest struct {
	Query   string  `json:"query"`
	Filters Filters `json:"filters,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}
