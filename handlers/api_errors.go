package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
)

// Error codes returned in the JSON error envelope.
const (
	CodeInvalidUpload    = "invalid_upload"
	CodeUploadTooLarge   = "upload_too_large"
	CodeInvalidRequest   = "invalid_request"
	CodeExtractionFailed = "extraction_failed"
	CodeDetectorAuth     = "detector_unauthorized"
)

// APIErrorDetail represents a single error in the standardized error response.
type APIErrorDetail struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// APIErrorResponse represents the standardized error response body.
type APIErrorResponse struct {
	Errors []APIErrorDetail `json:"errors"`
}

// WriteAPIError writes a standardized error response with the given HTTP status, code, and detail.
func WriteAPIError(w http.ResponseWriter, httpStatus int, code string, detail string) {
	writeJSON(w, httpStatus, APIErrorResponse{
		Errors: []APIErrorDetail{{Code: code, Status: strconv.Itoa(httpStatus), Detail: detail}},
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Error encoding JSON response: %v", err)
		}
	}
}
