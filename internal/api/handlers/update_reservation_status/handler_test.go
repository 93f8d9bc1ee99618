package update_reservation_status

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-BarberScheduler/internal/service/reservations"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/reservations/models"
)

type mockService struct{ mock.Mock }

func (m *mockService) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	args := m.Called(ctx, id, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.ReservationResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		resp       *models.ReservationResponse
		svcErr     error
		wantStatus int
	}{
		{"completed", `{"status":"COMPLETED"}`, &models.ReservationResponse{ID: "r1", Status: "COMPLETED"}, nil, http.StatusOK},
		{"not found", `{"status":"COMPLETED"}`, nil, reservations.ErrReservationNotFound, http.StatusNotFound},
		{"invalid transition", `{"status":"PENDING"}`, nil, reservations.ErrInvalidTransition, http.StatusBadRequest},
		{"unknown status", `{"status":"DONE"}`, nil, reservations.ErrInvalidInput, http.StatusBadRequest},
		{"internal", `{"status":"CANCELLED"}`, nil, errors.New("boom"), http.StatusInternalServerError},
		{"malformed body", `status=COMPLETED`, nil, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.resp != nil || tt.svcErr != nil {
				svc.On("UpdateStatus", mock.Anything, "r1", mock.Anything).Return(tt.resp, tt.svcErr)
			}

			r := mux.NewRouter()
			r.HandleFunc("/api/v1/reservations/{reservationId}/status", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPatch)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/r1/status", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
