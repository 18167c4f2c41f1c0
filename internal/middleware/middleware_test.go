package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "continuum/internal/errors"
	"continuum/internal/logger"
	"continuum/internal/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	logger.Set(zap.New(core).Sugar())
	t.Cleanup(func() { logger.Set(zap.NewNop().Sugar()) })
	return logs
}

func doRequest(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseBody(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantLogged bool
	}{
		{
			name:       "app_error_without_internal",
			err:        apperrors.ErrAssetNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "ASSET_NOT_FOUND",
		},
		{
			name:       "app_error_with_internal",
			err:        apperrors.Wrap(apperrors.ErrPersistence, errors.New("disk I/O error")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "PERSISTENCE_ERROR",
			wantLogged: true,
		},
		{
			name:       "plain_error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
			wantLogged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := observeLogs(t)
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/test", func(c *gin.Context) {
				_ = c.Error(tt.err)
			})

			rec := doRequest(r, http.MethodGet, "/test", nil)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if code := errorCode(t, rec); code != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, code)
			}
			if got := logs.FilterLevelExact(zapcore.ErrorLevel).Len() > 0; got != tt.wantLogged {
				t.Errorf("expected logged=%v, got %v", tt.wantLogged, got)
			}
		})
	}

	t.Run("leaves_written_responses_alone", func(t *testing.T) {
		observeLogs(t)
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/test", func(c *gin.Context) {
			_ = c.Error(errors.New("late"))
			c.JSON(http.StatusTeapot, gin.H{"status": "written"})
		})

		rec := doRequest(r, http.MethodGet, "/test", nil)

		if rec.Code != http.StatusTeapot {
			t.Fatalf("expected 418, got %d", rec.Code)
		}
		if parseBody(t, rec)["status"] != "written" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("internal_details_are_not_returned", func(t *testing.T) {
		observeLogs(t)
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/test", func(c *gin.Context) {
			_ = c.Error(apperrors.Wrap(apperrors.ErrPersistence, errors.New("no such table: warranties")))
		})

		rec := doRequest(r, http.MethodGet, "/test", nil)

		errObj := parseBody(t, rec)["error"].(map[string]interface{})
		if errObj["message"] != apperrors.ErrPersistence.Message {
			t.Errorf("expected sentinel message, got %v", errObj["message"])
		}
	})
}

func TestRecovery(t *testing.T) {
	logs := observeLogs(t)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/test", func(c *gin.Context) {
		panic("unexpected state")
	})

	rec := doRequest(r, http.MethodGet, "/test", nil)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %q", code)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Errorf("expected one panic log entry, got %d", logs.FilterMessage("panic recovered").Len())
	}
}

func TestRequestLogging(t *testing.T) {
	t.Run("assigns_and_logs_request_id", func(t *testing.T) {
		logs := observeLogs(t)
		var seen string
		r := gin.New()
		r.Use(RequestLogging())
		r.GET("/test", func(c *gin.Context) {
			seen = RequestID(c)
			c.Status(http.StatusNoContent)
		})

		rec := doRequest(r, http.MethodGet, "/test", nil)

		id := rec.Header().Get("X-Request-ID")
		if !uuid.IsValid(id) {
			t.Fatalf("expected a UUID request id, got %q", id)
		}
		if seen != id {
			t.Errorf("context id %q does not match header %q", seen, id)
		}
		entries := logs.FilterMessage("request").All()
		if len(entries) != 1 {
			t.Fatalf("expected one request log entry, got %d", len(entries))
		}
		fields := entries[0].ContextMap()
		if fields["request_id"] != id {
			t.Errorf("expected request_id %q, got %v", id, fields["request_id"])
		}
		if fields["status"] != int64(http.StatusNoContent) {
			t.Errorf("expected status 204, got %v", fields["status"])
		}
		if fields["path"] != "/test" {
			t.Errorf("expected path /test, got %v", fields["path"])
		}
	})

	t.Run("reuses_valid_client_id", func(t *testing.T) {
		observeLogs(t)
		r := gin.New()
		r.Use(RequestLogging())
		r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		clientID := uuid.New()
		rec := doRequest(r, http.MethodGet, "/test", http.Header{"X-Request-Id": {clientID}})

		if got := rec.Header().Get("X-Request-ID"); got != clientID {
			t.Errorf("expected %q, got %q", clientID, got)
		}
	})

	t.Run("replaces_malformed_client_id", func(t *testing.T) {
		observeLogs(t)
		r := gin.New()
		r.Use(RequestLogging())
		r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		rec := doRequest(r, http.MethodGet, "/test", http.Header{"X-Request-Id": {"not-a-uuid"}})

		got := rec.Header().Get("X-Request-ID")
		if got == "not-a-uuid" || !uuid.IsValid(got) {
			t.Errorf("expected a fresh UUID, got %q", got)
		}
	})
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("preflight_short_circuits", func(t *testing.T) {
		rec := doRequest(r, http.MethodOptions, "/test", nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Errorf("missing allow-origin header")
		}
	})

	t.Run("adds_headers_to_requests", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/test", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec.Header().Get("Access-Control-Expose-Headers") == "" {
			t.Errorf("missing expose headers")
		}
	})
}
