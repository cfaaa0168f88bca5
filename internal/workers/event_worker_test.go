package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bloodbank_backend/internal/repositories"
)

type fakeEventRepo struct {
	repositories.EventRepository

	mu    sync.Mutex
	calls []time.Time
	n     int64
	err   error
}

func (f *fakeEventRepo) CompletePast(_ *gorm.DB, today time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, today)
	return f.n, f.err
}

func (f *fakeEventRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestWorker(t *testing.T, repo *fakeEventRepo) *EventWorker {
	t.Helper()

	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	w := NewEventWorker(db, repo)
	w.clock = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	return w
}

func TestEventWorker_Sweep(t *testing.T) {
	repo := &fakeEventRepo{n: 3}
	w := newTestWorker(t, repo)

	assert.Equal(t, int64(3), w.sweep(context.Background()))
	assert.Equal(t, []time.Time{time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}, repo.calls)
}

func TestEventWorker_SweepError(t *testing.T) {
	repo := &fakeEventRepo{n: 3, err: errors.New("db down")}
	w := newTestWorker(t, repo)

	assert.Zero(t, w.sweep(context.Background()))
}

func TestEventWorker_StartStops(t *testing.T) {
	repo := &fakeEventRepo{}
	w := newTestWorker(t, repo)
	w.interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	assert.Eventually(t, func() bool { return repo.callCount() >= 2 }, time.Second, time.Millisecond)
	cancel()

	time.Sleep(20 * time.Millisecond)
	stopped := repo.callCount()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, repo.callCount())
}
