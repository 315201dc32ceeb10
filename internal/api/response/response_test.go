package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoseo/internal/api/response"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	response.JSON(w, map[string]string{"name": "test"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Equal(t, "test", data["name"])
}

func TestAccepted(t *testing.T) {
	w := httptest.NewRecorder()
	response.Accepted(w, map[string]string{"id": "r1"})

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Equal(t, "r1", data["id"])
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	response.Error(w, http.StatusBadRequest, "EMPTY_SHEET", "The uploaded Excel file is empty.", map[string]string{
		"field": "file",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "EMPTY_SHEET", errBody["code"])
	assert.Equal(t, "The uploaded Excel file is empty.", errBody["message"])
	details := errBody["details"].(map[string]any)
	assert.Equal(t, "file", details["field"])
}

func TestError_OmitsEmptyDetails(t *testing.T) {
	w := httptest.NewRecorder()
	response.Error(w, http.StatusNotFound, "NO_RUN", "No run has been started", nil)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	errBody := body["error"].(map[string]any)
	_, hasDetails := errBody["details"]
	assert.False(t, hasDetails)
}
