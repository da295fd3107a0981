package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminBasicAuth(t *testing.T) {
	var reached bool
	handler := AdminBasicAuth("gizli")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		user       string
		pass       string
		noAuth     bool
		wantStatus int
	}{
		{name: "valid credentials", user: "admin", pass: "gizli", wantStatus: http.StatusNoContent},
		{name: "wrong password", user: "admin", pass: "yanlış", wantStatus: http.StatusUnauthorized},
		{name: "wrong username", user: "root", pass: "gizli", wantStatus: http.StatusUnauthorized},
		{name: "no header", noAuth: true, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(http.MethodGet, "/api/admin/tickets", nil)
			if !tt.noAuth {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusNoContent, reached)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, `Basic realm="admin"`, rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
