package api

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message or code
	Details string `json:"details,omitempty"` // More specific details about the error, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ShareLinkResponse carries a generated deep link for sharing a service
// record with the customer.
type ShareLinkResponse struct {
	URL string `json:"url"`
}

// PasswordResetResponse confirms that a reset link was issued.
type PasswordResetResponse struct {
	Message string `json:"message"`
}
