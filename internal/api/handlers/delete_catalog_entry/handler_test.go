package delete_catalog_entry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-BarberScheduler/internal/service/catalog"
)

type mockService struct{ mock.Mock }

func (m *mockService) Delete(ctx context.Context, kind, id string) error {
	return m.Called(ctx, kind, id).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"not found", catalog.ErrEntryNotFound, http.StatusNotFound},
		{"unknown kind", catalog.ErrUnknownKind, http.StatusNotFound},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Delete", mock.Anything, "staff", "b1").Return(tt.svcErr)

			r := mux.NewRouter()
			r.HandleFunc("/api/v1/catalog/{kind}/{entryId}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodDelete)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/catalog/staff/b1", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
