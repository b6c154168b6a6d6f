package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/camden-git/datasentinel/media"
)

const (
	uploadFieldName   = "images"
	selectedFieldName = "selected"
	maxFieldBytes     = 1024
)

var errUploadTooLarge = errors.New("upload exceeds size limit")

// uploadForm is the parsed multipart submission of the upload page.
type uploadForm struct {
	Uploads  []media.Upload
	Selected string
}

// readUploadForm streams the multipart body, keeping files in the order they
// were sent. Empty file parts, which browsers send when nothing was chosen,
// are skipped.
func readUploadForm(w http.ResponseWriter, r *http.Request, maxBytes int64) (uploadForm, error) {
	var form uploadForm
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	reader, err := r.MultipartReader()
	if err != nil {
		return form, fmt.Errorf("invalid multipart form: %w", err)
	}

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return form, uploadReadError(err)
		}

		switch part.FormName() {
		case selectedFieldName:
			data, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
			if err != nil {
				return form, uploadReadError(err)
			}
			form.Selected = strings.TrimSpace(string(data))
		case uploadFieldName:
			filename := filepath.Base(part.FileName())
			data, err := io.ReadAll(part)
			if err != nil {
				return form, uploadReadError(err)
			}
			if part.FileName() == "" && len(data) == 0 {
				continue
			}
			if !media.IsCardImage(filename) {
				return form, fmt.Errorf("%w: %s (accepted: jpg, jpeg, png)", media.ErrUnsupportedFormat, filename)
			}
			form.Uploads = append(form.Uploads, media.Upload{FileName: filename, Data: data})
		default:
			// ignore unknown fields
		}
		part.Close()
	}

	log.Printf("handlers: received %d upload(s)", len(form.Uploads))
	return form, nil
}

func uploadReadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w (%d bytes)", errUploadTooLarge, maxErr.Limit)
	}
	return fmt.Errorf("malformed upload data: %w", err)
}
