package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gentil/internal/models"
	"gentil/internal/notify"
	"gentil/internal/services"
	"gentil/internal/structures"
	"gentil/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReminders struct {
	services.ReminderServiceInterface
	restoreCalls  int
	restoreErr    error
	dispatchCalls int
}

func (s *stubReminders) RestoreAll(context.Context) (int, error) {
	s.restoreCalls++
	return 0, s.restoreErr
}

func (s *stubReminders) Dispatch(context.Context) notify.TickResult {
	s.dispatchCalls++
	return notify.TickResult{Sent: 1}
}

func testConfig(filePath string) *structures.Config {
	return &structures.Config{
		Persistence: structures.Persistence{
			FilePath:     filePath,
			SaveInterval: time.Second,
		},
		Reminder: structures.ReminderConfig{
			TickInterval: time.Second,
		},
	}
}

type schedulerFixture struct {
	drafts    *services.DraftService
	reminders *stubReminders
	metrics   *testutil.MockMetrics
	logger    *testutil.MockLogger
	scheduler *Scheduler
}

func newSchedulerFixture(path string, comp CompressorInterface) *schedulerFixture {
	f := &schedulerFixture{
		drafts:    services.NewDraftService(),
		reminders: &stubReminders{},
		metrics:   &testutil.MockMetrics{},
		logger:    &testutil.MockLogger{},
	}
	fm := NewFileManager(comp, f.drafts, f.logger)
	f.scheduler = NewScheduler(testConfig(path), f.logger, f.drafts, f.reminders, fm, f.metrics).(*Scheduler)
	return f
}

func TestScheduler_PersistAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.dat")
	comp := &testutil.MockCompressor{}

	f := newSchedulerFixture(path, comp)
	f.drafts.SaveResponses("u1", models.OnboardingResponses{Name: "Ana"})
	require.NoError(t, f.scheduler.Persist())
	assert.Equal(t, 1, f.metrics.Persistence)
	assert.Equal(t, 1, f.metrics.DraftsTotal)

	g := newSchedulerFixture(path, comp)
	require.NoError(t, g.scheduler.Restore())
	assert.Equal(t, "Ana", g.drafts.Responses("u1").Name)
	assert.Equal(t, 1, g.reminders.restoreCalls)
	assert.Equal(t, 1, g.metrics.DraftsTotal)
}

func TestScheduler_Restore_FileNotExist(t *testing.T) {
	f := newSchedulerFixture("/nonexistent/drafts.dat", &testutil.MockCompressor{})

	assert.NoError(t, f.scheduler.Restore())
	assert.Equal(t, 1, f.reminders.restoreCalls)
}

func TestScheduler_Restore_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.dat")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	f := newSchedulerFixture(path, &testutil.MockCompressor{})
	assert.Error(t, f.scheduler.Restore())
	assert.Zero(t, f.reminders.restoreCalls)
}

func TestScheduler_Restore_ReminderFailureIsLogged(t *testing.T) {
	f := newSchedulerFixture("/nonexistent/drafts.dat", &testutil.MockCompressor{})
	f.reminders.restoreErr = errors.New("db down")

	assert.NoError(t, f.scheduler.Restore())
	assert.Equal(t, 1, f.logger.Count("error"))
}

func TestScheduler_Persist_WriteError(t *testing.T) {
	comp := &testutil.MockCompressor{
		CompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("compress error")
		},
	}
	f := newSchedulerFixture(filepath.Join(t.TempDir(), "drafts.dat"), comp)

	assert.Error(t, f.scheduler.Persist())
	assert.Equal(t, 1, f.logger.Count("error"))
}

func TestScheduler_Dispatch(t *testing.T) {
	f := newSchedulerFixture(filepath.Join(t.TempDir(), "drafts.dat"), &testutil.MockCompressor{})

	f.scheduler.Dispatch()
	assert.Equal(t, 1, f.reminders.dispatchCalls)
	assert.Equal(t, 1, f.logger.Count("info"))
}

func TestScheduler_StopNilCron(t *testing.T) {
	f := newSchedulerFixture("/tmp/drafts.dat", &testutil.MockCompressor{})
	f.scheduler.Stop()
}

func TestScheduler_InitAndStop(t *testing.T) {
	f := newSchedulerFixture(filepath.Join(t.TempDir(), "drafts.dat"), &testutil.MockCompressor{})
	f.scheduler.Init()
	time.Sleep(50 * time.Millisecond)
	f.scheduler.Stop()
}
