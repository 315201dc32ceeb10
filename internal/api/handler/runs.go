// Package handler implements the HTTP handlers for run management, exports
// and the workflow template download.
package handler

import (
	"errors"
	"net/http"

	"autoseo/internal/api/response"
	"autoseo/internal/ingest"
	"autoseo/internal/seo"
	"autoseo/pkg/models"
)

// maxUploadBytes caps the multipart form size for catalog uploads.
const maxUploadBytes = 32 << 20

// RunService defines the run lifecycle operations the handlers depend on.
type RunService interface {
	Start(headers []string, products []models.ProductInput) (*models.Run, error)
	Reset()
}

// Snapshotter reads the current run snapshot.
type Snapshotter interface {
	Current() (*models.Run, bool)
}

// NewStartRunHandler returns the handler for POST /api/v1/runs: parse the
// uploaded workbook and start a generation run over its rows.
func NewStartRunHandler(svc RunService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"Expected a multipart form with a file field", nil)
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"Missing file upload field \"file\"", nil)
			return
		}
		defer file.Close()

		headers, products, err := ingest.ReadWorkbook(file)
		if err != nil {
			if errors.Is(err, ingest.ErrEmptySheet) {
				response.Error(w, http.StatusBadRequest, "EMPTY_SHEET",
					"The uploaded Excel file is empty.", nil)
				return
			}
			response.Error(w, http.StatusBadRequest, "PARSE_FAILURE",
				"Failed to read the Excel file.", nil)
			return
		}

		run, err := svc.Start(headers, products)
		if err != nil {
			switch {
			case errors.Is(err, seo.ErrRunInProgress):
				response.Error(w, http.StatusConflict, "RUN_IN_PROGRESS",
					"A run is already being processed; reset it first", nil)
			case errors.Is(err, seo.ErrNoRows):
				response.Error(w, http.StatusBadRequest, "EMPTY_SHEET",
					"The uploaded Excel file is empty.", nil)
			default:
				response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
					"An unexpected error occurred", nil)
			}
			return
		}

		response.Accepted(w, run)
	}
}

// NewRunStatusHandler returns the handler for GET /api/v1/runs/current. The
// snapshot carries every row's live status, so the browser polls this for
// the progress view.
func NewRunStatusHandler(snaps Snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, ok := snaps.Current()
		if !ok {
			response.Error(w, http.StatusNotFound, "NO_RUN",
				"No run has been started", nil)
			return
		}
		response.JSON(w, run)
	}
}

// NewResetRunHandler returns the handler for DELETE /api/v1/runs/current:
// the "New Upload" action. Any in-flight generation loop is abandoned; its
// late writes are discarded by the store's run identity check.
func NewResetRunHandler(svc RunService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.Reset()
		response.JSON(w, map[string]any{"reset": true})
	}
}
