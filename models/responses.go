package models

// LoginResponse is returned by the session login endpoint. Token is the
// transport-edge bearer token wrapping the opaque session token.
type LoginResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// RecordsResponse is returned by the record query endpoints.
type RecordsResponse struct {
	UserID  string   `json:"user_id"`
	Records []Record `json:"records"`

	// Length is the number of entries in Records, provided so clients can
	// validate the response without iterating the slice.
	Length int `json:"length"`
}

// ExportResponse carries the rendered human-readable report.
type ExportResponse struct {
	UserID string `json:"user_id"`
	Report string `json:"report"`
}

// StatusResponse is the generic acknowledgement payload for mutating
// endpoints (add, delete, PIN set, logout).
type StatusResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// Classification is the structured output of the external message
// classifier: a category from the well-known set, the cleaned content, and
// an optional date expression ("today", "yesterday", "12/05/25") that the
// caller resolves to a canonical day string before storing.
type Classification struct {
	Category       string `json:"category"`
	Content        string `json:"content"`
	DateExpression string `json:"date_expression,omitempty"`
}
