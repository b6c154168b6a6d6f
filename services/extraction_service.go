package services

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/camden-git/datasentinel/masking"
	"github.com/camden-git/datasentinel/media"
	"github.com/camden-git/datasentinel/models"
	"github.com/camden-git/datasentinel/ocr"
	"github.com/camden-git/datasentinel/pii"
	"github.com/google/uuid"
)

// Detector is the PII recognition collaborator.
type Detector interface {
	Detect(ctx context.Context, text string) (pii.DocumentResult, error)
}

// Classifier maps raw card text to a department name.
type Classifier interface {
	Classify(text string) string
}

// ImageEncoder produces the inline image reference for a row.
type ImageEncoder interface {
	DataURI(img image.Image) (string, error)
}

// ExtractionService runs the card pipeline: decode, OCR, detect, mask, classify, encode.
type ExtractionService struct {
	ocr        ocr.Extractor
	detector   Detector
	classifier Classifier
	encoder    ImageEncoder
}

// NewExtractionService creates a new extraction service
func NewExtractionService(extractor ocr.Extractor, detector Detector, classifier Classifier, encoder ImageEncoder) *ExtractionService {
	return &ExtractionService{
		ocr:        extractor,
		detector:   detector,
		classifier: classifier,
		encoder:    encoder,
	}
}

// TextAnalysis is the text-only part of a row.
type TextAnalysis struct {
	Name           string
	Department     string
	MaskedMobile   string
	MaskedEmail    string
	MaskedText     string
	Entities       pii.Entities
	DetectionError string
}

// Process analyzes uploads in order and returns one row per upload. Any
// decode, OCR, encoding or transport failure aborts the whole run.
func (s *ExtractionService) Process(ctx context.Context, uploads []media.Upload) ([]models.ResultRow, error) {
	runID := uuid.NewString()
	if len(uploads) > 0 {
		log.Printf("services: run %s analyzing %d upload(s) with %s", runID, len(uploads), s.ocr.Name())
	}

	rows := make([]models.ResultRow, 0, len(uploads))
	for i, u := range uploads {
		row, err := s.processOne(ctx, i+1, u)
		if err != nil {
			log.Printf("services: run %s failed on %s: %v", runID, u.FileName, err)
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *ExtractionService) processOne(ctx context.Context, serial int, u media.Upload) (models.ResultRow, error) {
	img, err := media.LoadImage(u)
	if err != nil {
		return models.ResultRow{}, err
	}

	text, err := s.ocr.ExtractText(ctx, img)
	if err != nil {
		return models.ResultRow{}, fmt.Errorf("text extraction failed for %s: %w", u.FileName, err)
	}

	analysis, err := s.AnalyzeText(ctx, text)
	if err != nil {
		return models.ResultRow{}, fmt.Errorf("pii detection failed for %s: %w", u.FileName, err)
	}

	uri, err := s.encoder.DataURI(img)
	if err != nil {
		return models.ResultRow{}, fmt.Errorf("failed to encode preview for %s: %w", u.FileName, err)
	}

	return models.ResultRow{
		SerialNumber:   serial,
		FileName:       u.FileName,
		Name:           analysis.Name,
		Department:     analysis.Department,
		MaskedMobile:   analysis.MaskedMobile,
		MaskedEmail:    analysis.MaskedEmail,
		MaskedText:     analysis.MaskedText,
		ImageDataURI:   uri,
		DetectionError: analysis.DetectionError,
	}, nil
}

// AnalyzeText runs detection, masking and classification over already-extracted text.
// A per-document rejection is reported in DetectionError with every PII column "N/A".
func (s *ExtractionService) AnalyzeText(ctx context.Context, text string) (TextAnalysis, error) {
	res, err := s.detector.Detect(ctx, text)
	if err != nil {
		return TextAnalysis{}, err
	}

	out := TextAnalysis{
		Name:         models.NotAvailable,
		Department:   s.classifier.Classify(text),
		MaskedMobile: models.NotAvailable,
		MaskedEmail:  models.NotAvailable,
	}
	if !res.OK() {
		log.Printf("services: detector rejected document: %v", res.Err)
		// Unscanned text is never returned as masked.
		out.DetectionError = res.Err.Error()
		return out, nil
	}

	out.Entities = res.Entities
	out.MaskedText = masking.Apply(text, res.Entities)
	for category, found := range res.Entities.ByCategory() {
		log.Printf("services: detected %d %s entit(ies)", len(found), category)
	}
	if e, ok := res.Entities.First(pii.CategoryPerson); ok {
		out.Name = e.Text
	}
	if e, ok := res.Entities.First(pii.CategoryPhoneNumber); ok {
		out.MaskedMobile = masking.MaskPhone(e.Text)
	}
	if e, ok := res.Entities.First(pii.CategoryEmail); ok {
		out.MaskedEmail = masking.MaskEmail(e.Text)
	}
	return out, nil
}
