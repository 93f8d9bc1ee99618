package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	resolveAvailability "github.com/m04kA/SMC-BarberScheduler/internal/usecase/resolve_availability"
	"github.com/m04kA/SMC-BarberScheduler/pkg/types"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *resolveAvailability.Request) (*resolveAvailability.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*resolveAvailability.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/staff/{staffId}/available-slots", h.Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Handle_OK(t *testing.T) {
	uc := &mockUseCase{}
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *resolveAvailability.Request) bool {
		return req.StaffID == "b1" && domain.SameDay(req.Date, date)
	})).
		Return(&resolveAvailability.Response{StaffID: "b1", Date: date, Slots: []types.TimeString{"09:00", "11:00"}}, nil)

	rec := serve(NewHandler(uc, nopLogger{}), "/api/v1/staff/b1/available-slots?date=2024-06-10")

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, AvailableSlotsResponse{StaffID: "b1", Date: "2024-06-10", Slots: []string{"09:00", "11:00"}}, body)
	uc.AssertExpectations(t)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		ucErr      error
		wantStatus int
	}{
		{"missing date", "/api/v1/staff/b1/available-slots", nil, http.StatusBadRequest},
		{"malformed date", "/api/v1/staff/b1/available-slots?date=10-06-2024", nil, http.StatusBadRequest},
		{"unknown staff", "/api/v1/staff/zz/available-slots?date=2024-06-10", resolveAvailability.ErrStaffNotFound, http.StatusNotFound},
		{"past date", "/api/v1/staff/b1/available-slots?date=2024-06-10", resolveAvailability.ErrInvalidDate, http.StatusBadRequest},
		{"too far", "/api/v1/staff/b1/available-slots?date=2024-06-10", resolveAvailability.ErrDateTooFarInFuture, http.StatusBadRequest},
		{"internal", "/api/v1/staff/b1/available-slots?date=2024-06-10", fmt.Errorf("%w: db down", resolveAvailability.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			rec := serve(NewHandler(uc, nopLogger{}), tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.ucErr == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}
