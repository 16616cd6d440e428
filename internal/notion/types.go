package notion

// RichText is a fragment of Notion rich text. Only the plain text is used.
type RichText struct {
	PlainText string `json:"plain_text"`
}

// SelectOption is a select, multi-select or status option.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// RawProperty is a page property value as returned by the query endpoint.
// Only the property types that map onto records are decoded.
type RawProperty struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	Status      *SelectOption  `json:"status,omitempty"`
	URL         *string        `json:"url,omitempty"`
	CreatedTime string         `json:"created_time,omitempty"`
}

// RawPage is a database row as returned by the query endpoint.
type RawPage struct {
	ID             string                 `json:"id"`
	CreatedTime    string                 `json:"created_time"`
	LastEditedTime string                 `json:"last_edited_time"`
	URL            string                 `json:"url"`
	Properties     map[string]RawProperty `json:"properties"`
}

// Database is a database visible to the integration.
type Database struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Property describes one column of a database schema.
type Property struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Block is a page content block reduced to its plain text.
type Block struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

// Sort orders database query results.
type Sort struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Direction string `json:"direction"` // "ascending" or "descending"
}

// QueryOptions controls QueryDatabase.
type QueryOptions struct {
	// PageSize is the number of rows requested per call (max 100).
	PageSize int

	// Limit stops pagination once this many rows were collected. Zero means all.
	Limit int

	Sorts []Sort
}

// paginated is the envelope shared by list endpoints.
type paginated[T any] struct {
	Results    []T     `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

type rawDatabase struct {
	ID    string     `json:"id"`
	Title []RichText `json:"title"`
}

type rawSchema struct {
	Properties map[string]struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"properties"`
}

type errorBody struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
