package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/camden-git/datasentinel/media"
	"github.com/camden-git/datasentinel/models"
	"github.com/camden-git/datasentinel/pii"
	"github.com/camden-git/datasentinel/services"
)

// Extractor is the pipeline the handlers drive.
type Extractor interface {
	Process(ctx context.Context, uploads []media.Upload) ([]models.ResultRow, error)
	AnalyzeText(ctx context.Context, text string) (services.TextAnalysis, error)
}

type ExtractHandler struct {
	Service        Extractor
	MaxUploadBytes int64
}

func NewExtractHandler(service Extractor, maxUploadBytes int64) *ExtractHandler {
	return &ExtractHandler{Service: service, MaxUploadBytes: maxUploadBytes}
}

// classify maps a failure to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errUploadTooLarge):
		return http.StatusRequestEntityTooLarge, CodeUploadTooLarge
	case errors.Is(err, media.ErrUnsupportedFormat):
		return http.StatusBadRequest, CodeInvalidUpload
	case errors.Is(err, pii.ErrUnauthorized):
		return http.StatusBadGateway, CodeDetectorAuth
	}
	return http.StatusInternalServerError, CodeExtractionFailed
}

func (h *ExtractHandler) renderPage(w http.ResponseWriter, status int, state PageState) {
	var buf bytes.Buffer
	if err := RenderPage(&buf, state); err != nil {
		log.Printf("Error rendering page: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing page response: %v", err)
	}
}

// ShowPage serves the empty upload page.
func (h *ExtractHandler) ShowPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, http.StatusOK, PageState{})
}

// SubmitPage runs the pipeline over the submitted images and renders the result table.
func (h *ExtractHandler) SubmitPage(w http.ResponseWriter, r *http.Request) {
	form, err := readUploadForm(w, r, h.MaxUploadBytes)
	if err != nil {
		status, _ := classify(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		h.renderPage(w, status, PageState{Error: err.Error()})
		return
	}

	rows, err := h.Service.Process(r.Context(), form.Uploads)
	if err != nil {
		status, _ := classify(err)
		log.Printf("Error processing uploads: %v", err)
		h.renderPage(w, status, PageState{Error: "Failed to analyze images: " + err.Error()})
		return
	}

	h.renderPage(w, http.StatusOK, NewPageState(rows, form.Selected))
}

type extractResponse struct {
	Rows []models.ResultRow `json:"rows"`
}

// ExtractAPI is the JSON form of SubmitPage.
func (h *ExtractHandler) ExtractAPI(w http.ResponseWriter, r *http.Request) {
	form, err := readUploadForm(w, r, h.MaxUploadBytes)
	if err != nil {
		status, code := classify(err)
		if status == http.StatusInternalServerError {
			status, code = http.StatusBadRequest, CodeInvalidUpload
		}
		WriteAPIError(w, status, code, err.Error())
		return
	}

	rows, err := h.Service.Process(r.Context(), form.Uploads)
	if err != nil {
		status, code := classify(err)
		log.Printf("Error processing uploads: %v", err)
		WriteAPIError(w, status, code, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{Rows: rows})
}

type analyzeTextRequest struct {
	Text string `json:"text"`
}

type analyzeTextResponse struct {
	Name           string       `json:"name"`
	Department     string       `json:"department"`
	MobileNumber   string       `json:"mobile_number"`
	EmailID        string       `json:"email_id"`
	MaskedText     string       `json:"masked_text"`
	Entities       pii.Entities `json:"entities"`
	DetectionError string       `json:"detection_error,omitempty"`
}

// AnalyzeTextAPI runs detection, masking and classification over text supplied
// directly, skipping image decoding and OCR.
func (h *ExtractHandler) AnalyzeTextAPI(w http.ResponseWriter, r *http.Request) {
	var req analyzeTextRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body: "+err.Error())
		return
	}

	analysis, err := h.Service.AnalyzeText(r.Context(), req.Text)
	if err != nil {
		status, code := classify(err)
		log.Printf("Error analyzing text: %v", err)
		WriteAPIError(w, status, code, err.Error())
		return
	}

	entities := analysis.Entities
	if entities == nil {
		entities = pii.Entities{}
	}
	writeJSON(w, http.StatusOK, analyzeTextResponse{
		Name:           analysis.Name,
		Department:     analysis.Department,
		MobileNumber:   analysis.MaskedMobile,
		EmailID:        analysis.MaskedEmail,
		MaskedText:     analysis.MaskedText,
		Entities:       entities,
		DetectionError: analysis.DetectionError,
	})
}

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
