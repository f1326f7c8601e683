package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// ResolveRequest represents the filename resolution request body.
type ResolveRequest struct {
	Filename string `json:"filename" binding:"required" example:"J1234567_DETAIL.psd"`
}

// OverrideRequest represents the manual part-number override request body.
type OverrideRequest struct {
	PartNumber   string `json:"part_number" binding:"required" example:"J1234567"`
	Reason       string `json:"reason" example:"Filename referenced the superseded number"`
	OverriddenBy string `json:"overridden_by" binding:"required" example:"j.reviewer"`
}

// ReviewRequest represents the approve/reject request body.
type ReviewRequest struct {
	ReviewedBy string `json:"reviewed_by" binding:"required" example:"j.reviewer"`
	Reason     string `json:"reason" example:"Background halo around mounting bracket"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
