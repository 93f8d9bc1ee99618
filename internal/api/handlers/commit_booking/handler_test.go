package commit_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	commitBooking "github.com/m04kA/SMC-BarberScheduler/internal/usecase/commit_booking"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *commitBooking.Request) (*commitBooking.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*commitBooking.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"staffId": "b1",
	"date": "2024-06-10",
	"time": "10:00",
	"services": [{"id": "s1", "name": "Corte Clássico", "price": 60, "duration": 45}, {"id": "s2"}],
	"addons": [{"id": "a2"}],
	"clientName": "João",
	"clientEmail": "joao@example.com"
}`

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body)))
	return rec
}

func TestHandler_Handle_Created(t *testing.T) {
	uc := &mockUseCase{}
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *commitBooking.Request) bool {
		return req.StaffID == "b1" &&
			domain.SameDay(req.Date, date) &&
			req.Time == "10:00" &&
			len(req.Services) == 2 &&
			req.Services[0].Snapshot != nil && req.Services[0].Snapshot.Price == 60 &&
			req.Services[1].Snapshot == nil &&
			len(req.Addons) == 1 && req.Addons[0].Snapshot == nil
	})).Return(&commitBooking.Response{
		ID:            "r1",
		StaffID:       "b1",
		Date:          date,
		Time:          "10:00",
		Services:      []domain.Service{{ID: "s1", Name: "Corte Clássico", Price: 60, Duration: 45}},
		ClientName:    "João",
		ClientEmail:   "joao@example.com",
		TotalPrice:    60,
		TotalDuration: 45,
		Status:        string(domain.StatusPending),
		CreatedAt:     time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC),
	}, nil)

	rec := post(NewHandler(uc, nopLogger{}), validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "r1", body.ID)
	assert.Equal(t, "2024-06-10", body.Date)
	assert.Equal(t, "PENDING", body.Status)
	assert.NotNil(t, body.Addons)
	uc.AssertExpectations(t)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		ucErr      error
		wantStatus int
	}{
		{"malformed body", `{"staffId":`, nil, http.StatusBadRequest},
		{"bad date", strings.Replace(validBody, "2024-06-10", "10/06/2024", 1), nil, http.StatusBadRequest},
		{"bad time", strings.Replace(validBody, `"10:00"`, `"10h"`, 1), nil, http.StatusBadRequest},
		{"conflict", validBody, commitBooking.ErrBookingConflict, http.StatusConflict},
		{"slot outside schedule", validBody, commitBooking.ErrSlotNotAvailable, http.StatusBadRequest},
		{"invalid input", validBody, commitBooking.ErrInvalidInput, http.StatusBadRequest},
		{"staff not found", validBody, commitBooking.ErrStaffNotFound, http.StatusNotFound},
		{"service not found", validBody, commitBooking.ErrServiceNotFound, http.StatusNotFound},
		{"addon not found", validBody, commitBooking.ErrAddonNotFound, http.StatusNotFound},
		{"past date", validBody, commitBooking.ErrInvalidDate, http.StatusBadRequest},
		{"too far", validBody, commitBooking.ErrDateTooFarInFuture, http.StatusBadRequest},
		{"internal", validBody, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			rec := post(NewHandler(uc, nopLogger{}), tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
