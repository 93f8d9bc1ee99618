package commit_booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/infra/lock"
	catalogRepo "github.com/m04kA/SMC-BarberScheduler/internal/infra/storage/catalog"
	reservationRepo "github.com/m04kA/SMC-BarberScheduler/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-BarberScheduler/internal/infra/storage/schema"
	"github.com/m04kA/SMC-BarberScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BarberScheduler/pkg/txmanager"
	"github.com/m04kA/SMC-BarberScheduler/pkg/types"
)

func newSQLiteUseCase(t *testing.T) (*UseCase, *reservationRepo.Repository) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, schema.Migrate(ctx, db, psqlbuilder.SQLite))

	catalog := catalogRepo.NewRepository(db, psqlbuilder.SQLite)
	for _, s := range domain.SeedServices() {
		require.NoError(t, catalog.UpsertService(ctx, s))
	}
	for _, s := range domain.SeedStaff() {
		require.NoError(t, catalog.UpsertStaff(ctx, s))
	}

	reservations := reservationRepo.NewRepository(db, psqlbuilder.SQLite)
	uc := NewUseCase(
		catalog,
		reservations,
		txmanager.NewTransactionManager(db, false),
		lock.NewLocalLocker(5*time.Second),
		&recordingPublisher{},
		domain.BookingPolicy{AllowSnapshotFallback: true},
		&recordingMetrics{},
		nopLogger{},
	)
	uc.timeProvider = fixedTime{now: weekAgo}
	return uc, reservations
}

func TestUseCase_Execute_ConcurrentCommitsBookSlotOnce(t *testing.T) {
	uc, reservations := newSQLiteUseCase(t)

	const clients = 12
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
		other     []error
	)

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			req := &Request{
				StaffID:     "b1",
				Date:        monday,
				Time:        "10:00",
				Services:    []SelectedService{{ID: "s1"}},
				ClientName:  fmt.Sprintf("Client %d", i),
				ClientEmail: fmt.Sprintf("client%d@example.com", i),
			}
			_, err := uc.Execute(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrBookingConflict):
				conflicts++
			default:
				other = append(other, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Empty(t, other)
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, clients-1, conflicts)

	active, err := reservations.ListActiveByStaffAndDate(context.Background(), "b1", monday)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, 60.0, active[0].TotalPrice)
}

func TestUseCase_Execute_DifferentSlotsDoNotConflict(t *testing.T) {
	uc, reservations := newSQLiteUseCase(t)

	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i, slot := range []types.TimeString{"09:00", "10:00", "11:00"} {
		wg.Add(1)
		go func(i int, slot types.TimeString) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), &Request{
				StaffID:     "b2",
				Date:        monday,
				Time:        slot,
				Services:    []SelectedService{{ID: "s2"}},
				ClientName:  "Client",
				ClientEmail: "client@example.com",
			})
		}(i, slot)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}

	active, err := reservations.ListActiveByStaffAndDate(context.Background(), "b2", monday)
	require.NoError(t, err)
	assert.Len(t, active, 3)
}
