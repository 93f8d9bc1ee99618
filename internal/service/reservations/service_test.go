package reservations

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	reservationRepo "github.com/m04kA/SMC-BarberScheduler/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-BarberScheduler/internal/infra/storage/schema"
	"github.com/m04kA/SMC-BarberScheduler/internal/integrations/notifier"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/reservations/models"
	"github.com/m04kA/SMC-BarberScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BarberScheduler/pkg/ptr"
	"github.com/m04kA/SMC-BarberScheduler/pkg/txmanager"
	"github.com/m04kA/SMC-BarberScheduler/pkg/types"
)

var (
	testDate = time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
	testNow  = time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type recordingPublisher struct {
	mu     sync.Mutex
	events []notifier.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event notifier.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

type recordingMetrics struct {
	transitions []string
}

func (m *recordingMetrics) IncStatusTransition(from, to string) {
	m.transitions = append(m.transitions, from+"->"+to)
}

type fixture struct {
	service   *Service
	repo      *reservationRepo.Repository
	publisher *recordingPublisher
	metrics   *recordingMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, schema.Migrate(context.Background(), db, psqlbuilder.SQLite))

	repo := reservationRepo.NewRepository(db, psqlbuilder.SQLite)
	publisher := &recordingPublisher{}
	metrics := &recordingMetrics{}

	svc := NewService(repo, txmanager.NewTransactionManager(db, false), publisher, metrics, nopLogger{})
	svc.timeProvider = fixedTime{now: testNow}

	return &fixture{service: svc, repo: repo, publisher: publisher, metrics: metrics}
}

func (f *fixture) insert(t *testing.T, id string, slot types.TimeString, status domain.ReservationStatus, email string, price float64, createdAt time.Time) {
	t.Helper()
	require.NoError(t, f.repo.Insert(context.Background(), &domain.Reservation{
		ID:            id,
		StaffID:       "b1",
		StaffName:     "Carlos",
		Date:          testDate,
		Time:          slot,
		Status:        status,
		Services:      []domain.Service{{ID: "s1", Name: "Corte Clássico", Price: price, Duration: 45}},
		ClientName:    "João",
		ClientEmail:   email,
		TotalPrice:    price,
		TotalDuration: 45,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}))
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name       string
		initial    domain.ReservationStatus
		next       string
		wantErr    error
		wantStatus domain.ReservationStatus
		wantEvent  bool
	}{
		{"pending to completed", domain.StatusPending, "COMPLETED", nil, domain.StatusCompleted, true},
		{"pending to cancelled", domain.StatusPending, "cancelled", nil, domain.StatusCancelled, true},
		{"same status is a no-op", domain.StatusPending, "PENDING", nil, domain.StatusPending, false},
		{"completed is terminal", domain.StatusCompleted, "PENDING", ErrInvalidTransition, domain.StatusCompleted, false},
		{"cancelled is terminal", domain.StatusCancelled, "COMPLETED", ErrInvalidTransition, domain.StatusCancelled, false},
		{"completed cannot be cancelled", domain.StatusCompleted, "CANCELLED", ErrInvalidTransition, domain.StatusCompleted, false},
		{"unknown status", domain.StatusPending, "DONE", ErrInvalidInput, domain.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			f.insert(t, "r1", "09:00", tt.initial, "joao@example.com", 60, testNow.Add(-time.Hour))

			resp, err := f.service.UpdateStatus(ctx, "r1", &models.UpdateStatusRequest{Status: tt.next})
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				assert.Equal(t, string(tt.wantStatus), resp.Status)
			}

			stored, err := f.repo.GetByID(ctx, "r1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, stored.Status)

			if tt.wantEvent {
				require.Len(t, f.publisher.events, 1)
				assert.Equal(t, notifier.EventReservationStatusChanged, f.publisher.events[0].Type)
				assert.Equal(t, string(tt.initial), f.publisher.events[0].PreviousStatus)
				assert.Len(t, f.metrics.transitions, 1)
			} else {
				assert.Empty(t, f.publisher.events)
				assert.Empty(t, f.metrics.transitions)
			}
		})
	}
}

func TestService_UpdateStatus_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.UpdateStatus(context.Background(), "missing", &models.UpdateStatusRequest{Status: "COMPLETED"})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestService_UpdateStatus_PublishFailureIgnored(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")
	f.insert(t, "r1", "09:00", domain.StatusPending, "joao@example.com", 60, testNow)

	resp, err := f.service.UpdateStatus(context.Background(), "r1", &models.UpdateStatusRequest{Status: "COMPLETED"})
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", resp.Status)
}

func TestService_CancelledReservationFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.insert(t, "r1", "09:00", domain.StatusPending, "joao@example.com", 60, testNow)

	_, err := f.service.UpdateStatus(ctx, "r1", &models.UpdateStatusRequest{Status: "CANCELLED"})
	require.NoError(t, err)

	active, err := f.repo.ListActiveByStaffAndDate(ctx, "b1", testDate)
	require.NoError(t, err)
	assert.Empty(t, active)

	f.insert(t, "r2", "09:00", domain.StatusPending, "maria@example.com", 60, testNow)
}

func TestService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.insert(t, "r1", "09:00", domain.StatusPending, "joao@example.com", 60, testNow.Add(-3*time.Hour))
	f.insert(t, "r2", "10:00", domain.StatusCompleted, "maria@example.com", 85, testNow.Add(-2*time.Hour))
	f.insert(t, "r3", "11:00", domain.StatusPending, "joao@example.com", 45, testNow.Add(-time.Hour))

	all, err := f.service.List(ctx, &models.ListRequest{Status: ptr.Ptr(models.StatusAll)})
	require.NoError(t, err)
	require.Len(t, all.Reservations, 3)
	assert.Equal(t, "r1", all.Reservations[0].ID)
	assert.Equal(t, "r3", all.Reservations[2].ID)
	assert.NotNil(t, all.Reservations[0].Addons)

	pending, err := f.service.List(ctx, &models.ListRequest{Status: ptr.Ptr("PENDING")})
	require.NoError(t, err)
	assert.Len(t, pending.Reservations, 2)

	mine, err := f.service.List(ctx, &models.ListRequest{ClientEmail: ptr.Ptr("  JOAO@example.com ")})
	require.NoError(t, err)
	assert.Len(t, mine.Reservations, 2)

	_, err = f.service.List(ctx, &models.ListRequest{Status: ptr.Ptr("DONE")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_List_Empty(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.List(context.Background(), &models.ListRequest{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Reservations)
	assert.Empty(t, resp.Reservations)
}

func TestService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.insert(t, "r1", "09:00", domain.StatusCompleted, "joao@example.com", 60, testNow)

	require.NoError(t, f.service.Delete(ctx, "r1"))
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, notifier.EventReservationDeleted, f.publisher.events[0].Type)

	assert.ErrorIs(t, f.service.Delete(ctx, "r1"), ErrReservationNotFound)
}

func TestService_Stats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.insert(t, "r1", "09:00", domain.StatusPending, "joao@example.com", 60, testNow)
	f.insert(t, "r2", "10:00", domain.StatusCompleted, "maria@example.com", 85, testNow)
	f.insert(t, "r3", "11:00", domain.StatusCancelled, "ana@example.com", 45, testNow)

	stats, err := f.service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 145.0, stats.TotalRevenue)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 3, stats.Total)
}
