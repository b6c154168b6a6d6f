package models

// NotAvailable marks a PII column with no detected entity.
const NotAvailable = "N/A"

// ResultRow is one analyzed card, as shown in the summary table.
type ResultRow struct {
	SerialNumber   int    `json:"serial_number"`
	FileName       string `json:"file_name"`
	Name           string `json:"name"`
	Department     string `json:"department"`
	MaskedMobile   string `json:"mobile_number"`
	MaskedEmail    string `json:"email_id"`
	MaskedText     string `json:"masked_text"`
	ImageDataURI   string `json:"image,omitempty"`
	DetectionError string `json:"detection_error,omitempty"` // set when the service rejected the document
}
