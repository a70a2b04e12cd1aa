package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/chirper-app/chirper/pkg/apperror"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperror.NotFound("post"), http.StatusNotFound},
		{"forbidden", apperror.Forbidden(), http.StatusForbidden},
		{"conflict", apperror.Conflict("ALREADY_LIKED"), http.StatusConflict},
		{"unauthorized", apperror.Unauthorized("MISSING_TOKEN"), http.StatusUnauthorized},
		{"validation", apperror.Validation("bad"), http.StatusBadRequest},
		{"unsupported media", apperror.UnsupportedMedia("gif"), http.StatusUnsupportedMediaType},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusOf(tc.err); got != tc.want {
				t.Errorf("StatusOf = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFromError_ExposesCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	FromError(c, apperror.Conflict("SELF_FOLLOW"))

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			ErrorCode string `json:"error_code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Success {
		t.Error("success should be false")
	}
	if body.Error.ErrorCode != "SELF_FOLLOW" {
		t.Errorf("error_code = %q, want SELF_FOLLOW", body.Error.ErrorCode)
	}
}

func TestFromError_HidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	FromError(c, errors.New("pq: connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if got := w.Body.String(); !json.Valid([]byte(got)) {
		t.Fatalf("body not json: %s", got)
	}
	if strings.Contains(w.Body.String(), "connection refused") {
		t.Error("internal error detail must not leak to clients")
	}
}
