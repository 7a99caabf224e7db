package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "financetracker/internal/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func render(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	fn(c)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return w, body
}

func TestJSON(t *testing.T) {
	w, body := render(t, func(c *gin.Context) {
		JSON(c, http.StatusCreated, map[string]int{"id": 1}, "Created")
	})

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	if body["success"] != true || body["message"] != "Created" {
		t.Errorf("unexpected envelope: %v", body)
	}
	if _, ok := body["error"]; ok {
		t.Error("success envelope must not carry an error code")
	}
	data, ok := body["data"].(map[string]any)
	if !ok || data["id"] != float64(1) {
		t.Errorf("unexpected data: %v", body["data"])
	}
}

func TestJSON_EmptyListKept(t *testing.T) {
	_, body := render(t, func(c *gin.Context) {
		JSON(c, http.StatusOK, []string{}, "")
	})

	data, ok := body["data"].([]any)
	if !ok || len(data) != 0 {
		t.Errorf("expected empty data array, got %v", body["data"])
	}
}

func TestError_AppError(t *testing.T) {
	w, body := render(t, func(c *gin.Context) {
		Error(c, apperrors.Wrap(apperrors.ErrLinkExists, errors.New("constraint")))
	})

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if body["success"] != false || body["error"] != "LINK_ALREADY_EXISTS" {
		t.Errorf("unexpected envelope: %v", body)
	}
	if body["message"] != apperrors.ErrLinkExists.Message {
		t.Errorf("unexpected message: %v", body["message"])
	}
}

func TestError_UnknownErrorIsHidden(t *testing.T) {
	w, body := render(t, func(c *gin.Context) {
		Error(c, errors.New("pq: password authentication failed"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if body["error"] != "INTERNAL_ERROR" || body["message"] != apperrors.ErrInternalServer.Message {
		t.Errorf("internal details leaked or wrong code: %v", body)
	}
}
