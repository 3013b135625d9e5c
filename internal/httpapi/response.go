package httpapi

import "github.com/mesh-intelligence/teashop/internal/render"

// Status is the status field of every response body.
type Status string

const (
	// StatusOK is used for health-check responses.
	StatusOK Status = "OK"

	// StatusSuccess indicates an operation completed successfully.
	StatusSuccess Status = "success"

	// StatusError indicates an operation failed.
	StatusError Status = "error"
)

// Response is the envelope for health, error and single-entity responses.
type Response struct {
	Status Status `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// TableResponse is one rendered page of a listing.
type TableResponse struct {
	Status Status `json:"status"`
	render.Document
}

func NewOKResponse() Response {
	return Response{Status: StatusOK}
}

func NewDataResponse(data any) Response {
	return Response{Status: StatusSuccess, Data: data}
}

func NewErrorResponse(err string) Response {
	return Response{Status: StatusError, Error: err}
}
