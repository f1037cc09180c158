package webhook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeKeyLookup struct {
	hash string
}

func (f fakeKeyLookup) GetByHash(_ context.Context, keyHash string) (APIKey, error) {
	if keyHash == f.hash {
		return APIKey{ID: uuid.New(), Name: "admin", IsActive: true}, nil
	}
	return APIKey{}, ErrAPIKeyNotFound
}

func TestAPIKeyAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	plaintext, hash, _, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey: %v", err)
	}

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantNext   bool
	}{
		{"missing header", "", http.StatusUnauthorized, false},
		{"wrong key", "lq_deadbeef", http.StatusUnauthorized, false},
		{"revoked or unknown hash", plaintext + "x", http.StatusUnauthorized, false},
		{"valid key", plaintext, http.StatusOK, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nextRan := false
			engine := gin.New()
			engine.GET("/admin/leads",
				APIKeyAuthMiddleware(fakeKeyLookup{hash: hash}),
				func(c *gin.Context) {
					nextRan = true
					c.Status(http.StatusOK)
				},
			)

			req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
			if tc.header != "" {
				req.Header.Set("X-API-Key", tc.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if nextRan != tc.wantNext {
				t.Errorf("next handler ran = %v, want %v", nextRan, tc.wantNext)
			}
		})
	}
}
