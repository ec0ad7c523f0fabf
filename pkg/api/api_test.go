package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/MarquinhoCF/alwabp-solver/pkg/cache"
	apperrors "github.com/MarquinhoCF/alwabp-solver/pkg/errors"
)

func testServer(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	return New(opts...).Router()
}

// solveBody is a small solvable instance with a fixed seed and a short
// iteration budget.
func solveBody() []byte {
	return []byte(`{
		"times": [[2, 3], [4, 2], [3, 3]],
		"precedence": [{"from": 0, "to": 1}],
		"seed": 42,
		"config": {"max_iterations": 50}
	}`)
}

func TestHealth(t *testing.T) {
	router := testServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestSolve(t *testing.T) {
	router := testServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/solve", bytes.NewReader(solveBody())))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp solveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RunID == "" {
		t.Error("response should carry a run ID")
	}
	if resp.Cached {
		t.Error("first solve should not be cached")
	}
	if resp.Summary.CycleTime != 5 {
		t.Errorf("CycleTime = %g, want 5", resp.Summary.CycleTime)
	}
	if len(resp.Summary.Stations) != 2 {
		t.Errorf("got %d stations, want 2", len(resp.Summary.Stations))
	}

	// The run is archived and retrievable.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+resp.RunID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get run status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list runs status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/runs/"+resp.RunID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete run status = %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+resp.RunID, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted run status = %d, want 404", rec.Code)
	}
}

func TestSolveCached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	router := testServer(t, WithCache(fc))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/solve", bytes.NewReader(solveBody())))
	if rec.Code != http.StatusOK {
		t.Fatalf("first solve status = %d: %s", rec.Code, rec.Body.String())
	}
	var first solveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatal(err)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/solve", bytes.NewReader(solveBody())))
	if rec.Code != http.StatusOK {
		t.Fatalf("second solve status = %d", rec.Code)
	}
	var second solveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
		t.Fatal(err)
	}

	if !second.Cached {
		t.Error("second identical solve should hit the cache")
	}
	if second.RunID != first.RunID {
		t.Error("cached response should replay the original run ID")
	}
	if second.Summary.CycleTime != first.Summary.CycleTime {
		t.Error("cached response should match the original summary")
	}
}

func TestSolveInvalid(t *testing.T) {
	router := testServer(t)

	tests := []struct {
		name string
		body string
		want int
		code apperrors.Code
	}{
		{"malformed json", "{", http.StatusBadRequest, apperrors.ErrCodeInvalidFormat},
		{"missing times", "{}", http.StatusBadRequest, apperrors.ErrCodeInvalidInstance},
		{
			"incapable task",
			`{"times": [[null, null]]}`,
			http.StatusUnprocessableEntity,
			apperrors.ErrCodeInfeasibleInstance,
		},
		{
			"cyclic precedence",
			`{"times": [[1, 1], [1, 1]], "precedence": [{"from": 0, "to": 1}, {"from": 1, "to": 0}]}`,
			http.StatusBadRequest,
			apperrors.ErrCodeCyclicPrecedence,
		},
		{
			"bad config",
			`{"times": [[1, 1], [1, 1]], "config": {"cooling_rate": 2}}`,
			http.StatusBadRequest,
			apperrors.ErrCodeInvalidConfig,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/solve", bytes.NewReader([]byte(tt.body)))
			router.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}

			var body errorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error responses should be JSON: %v", err)
			}
			if body.Error.Code != string(tt.code) {
				t.Errorf("error code = %q, want %q", body.Error.Code, tt.code)
			}
		})
	}
}
