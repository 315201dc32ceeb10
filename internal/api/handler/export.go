package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"autoseo/internal/api/response"
	"autoseo/internal/export"
	"autoseo/internal/workflow"
)

// NewSpreadsheetExportHandler returns the handler for
// GET /api/v1/runs/current/export: the generic workbook download.
func NewSpreadsheetExportHandler(snaps Snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, ok := snaps.Current()
		if !ok {
			response.Error(w, http.StatusNotFound, "NO_RUN",
				"No run has been started", nil)
			return
		}

		f, err := export.ToSpreadsheet(run)
		if err != nil {
			slog.Error("spreadsheet export failed", "error", err, "run_id", run.ID)
			response.Error(w, http.StatusInternalServerError, "EXPORT_FAILED",
				"Could not build the spreadsheet", nil)
			return
		}

		filename := export.SpreadsheetFilename(time.Now().UTC())
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if err := f.Write(w); err != nil {
			slog.Error("writing spreadsheet response", "error", err)
		}
	}
}

// NewShopifyExportHandler returns the handler for
// GET /api/v1/runs/current/export/shopify: the Shopify product import CSV.
func NewShopifyExportHandler(snaps Snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, ok := snaps.Current()
		if !ok {
			response.Error(w, http.StatusNotFound, "NO_RUN",
				"No run has been started", nil)
			return
		}

		data, err := export.ToShopifyCSV(run)
		if err != nil {
			slog.Error("shopify export failed", "error", err, "run_id", run.ID)
			response.Error(w, http.StatusInternalServerError, "EXPORT_FAILED",
				"Could not build the CSV", nil)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.ShopifyFilename))
		_, _ = w.Write(data)
	}
}

// NewWorkflowTemplateHandler returns the handler for
// GET /api/v1/workflow/template: the importable n8n workflow JSON.
func NewWorkflowTemplateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := workflow.Template()
		if err != nil {
			slog.Error("workflow template generation failed", "error", err)
			response.Error(w, http.StatusInternalServerError, "EXPORT_FAILED",
				"Could not build the workflow template", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", workflow.Filename))
		_, _ = w.Write(data)
	}
}
