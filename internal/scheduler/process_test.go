package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/applytrack/timing-be/internal/notify"
	"github.com/applytrack/timing-be/internal/timing/domain"
)

var cycleNow = time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

type fakeStore struct {
	mu sync.Mutex

	due      []domain.TimingRecord
	dueErr   error
	jobs     map[string]*domain.Job
	users    map[string]*domain.User
	claimErr error
	applyErr error

	claimed    []domain.TimingRecord
	appliedJob []string
	userPanics bool
}

func newStore() *fakeStore {
	return &fakeStore{
		jobs:  make(map[string]*domain.Job),
		users: make(map[string]*domain.User),
	}
}

func (f *fakeStore) DueRecords(context.Context, time.Time) ([]domain.TimingRecord, error) {
	return f.due, f.dueErr
}

func (f *fakeStore) GetJob(_ context.Context, userID, jobID string) (*domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[userID+"/"+jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return job, nil
}

func (f *fakeStore) GetUser(_ context.Context, userID string) (*domain.User, error) {
	if f.userPanics {
		panic("user lookup blew up")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStore) MarkJobApplied(_ context.Context, userID, jobID string, _ time.Time) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appliedJob = append(f.appliedJob, userID+"/"+jobID)
	return nil
}

func (f *fakeStore) ClaimProcessed(_ context.Context, rec *domain.TimingRecord) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.claimed = append(f.claimed, *rec)
	return nil
}

type fakeSender struct {
	mu       sync.Mutex
	messages []notify.Message
	err      error
}

func (f *fakeSender) Send(_ context.Context, msg notify.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	return f.err
}

func newTestDaemon(store *fakeStore, sender *fakeSender) *Daemon {
	d := NewDaemon(&Config{
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:        store,
		Sender:       sender,
		PollInterval: time.Minute,
		Concurrency:  2,
	})
	d.now = func() time.Time { return cycleNow }
	return d
}

func dueRecord(userID, jobID string, autoSubmit bool) domain.TimingRecord {
	scheduled := cycleNow.Add(-5 * time.Minute)
	return domain.TimingRecord{
		UserID: userID,
		JobID:  jobID,
		ScheduledSubmission: domain.ScheduledSubmission{
			ScheduledTime: &scheduled,
			Status:        domain.ScheduleStatusScheduled,
			AutoSubmit:    autoSubmit,
		},
	}
}

func TestRunOnce_DueQueryFailureAbortsCycle(t *testing.T) {
	store := newStore()
	store.dueErr = errors.New("connection refused")

	err := newTestDaemon(store, &fakeSender{}).RunOnce(context.Background())

	require.Error(t, err)
	assert.Empty(t, store.claimed)
}

func TestRunOnce_AutoSubmit(t *testing.T) {
	store := newStore()
	store.due = []domain.TimingRecord{dueRecord("u1", "j1", true)}
	store.jobs["u1/j1"] = &domain.Job{JobID: "j1", Title: "Backend Engineer", Company: "Acme"}
	store.users["u1"] = &domain.User{UserID: "u1", Email: "ana@example.com", Name: "Ana"}
	sender := &fakeSender{}

	require.NoError(t, newTestDaemon(store, sender).RunOnce(context.Background()))

	require.Len(t, store.claimed, 1)
	claimed := store.claimed[0]
	assert.Equal(t, domain.ScheduleStatusSubmitted, claimed.ScheduledSubmission.Status)
	require.Len(t, claimed.SubmissionHistory, 1)
	assert.True(t, claimed.SubmissionHistory[0].WasScheduled)
	assert.Equal(t, 1, claimed.Metrics.TotalSubmissions)

	assert.Equal(t, []string{"u1/j1"}, store.appliedJob)

	require.Len(t, sender.messages, 1)
	assert.Equal(t, "ana@example.com", sender.messages[0].To)
	assert.Contains(t, sender.messages[0].Subject, "Application submitted")
}

func TestRunOnce_Reminder(t *testing.T) {
	store := newStore()
	store.due = []domain.TimingRecord{dueRecord("u1", "j1", false)}
	store.jobs["u1/j1"] = &domain.Job{JobID: "j1", Title: "Backend Engineer", Company: "Acme", ApplicationURL: "https://acme.example/jobs/1"}
	store.users["u1"] = &domain.User{UserID: "u1", Email: "ana@example.com", Name: "Ana"}
	sender := &fakeSender{}

	require.NoError(t, newTestDaemon(store, sender).RunOnce(context.Background()))

	require.Len(t, store.claimed, 1)
	claimed := store.claimed[0]
	assert.Equal(t, domain.ScheduleStatusReminded, claimed.ScheduledSubmission.Status)
	assert.True(t, claimed.ScheduledSubmission.ReminderSent)
	assert.Empty(t, claimed.SubmissionHistory)
	assert.Empty(t, store.appliedJob)

	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0].Subject, "Time to apply")
}

func TestRunOnce_MissingJobSkips(t *testing.T) {
	store := newStore()
	store.due = []domain.TimingRecord{dueRecord("u1", "j1", true)}
	store.users["u1"] = &domain.User{UserID: "u1", Email: "ana@example.com"}
	sender := &fakeSender{}

	require.NoError(t, newTestDaemon(store, sender).RunOnce(context.Background()))

	// Record stays scheduled for the next cycle
	assert.Empty(t, store.claimed)
	assert.Empty(t, store.appliedJob)
	assert.Empty(t, sender.messages)
}

func TestRunOnce_ClaimConflictSkipsNotification(t *testing.T) {
	store := newStore()
	store.due = []domain.TimingRecord{dueRecord("u1", "j1", true)}
	store.jobs["u1/j1"] = &domain.Job{JobID: "j1"}
	store.users["u1"] = &domain.User{UserID: "u1"}
	store.claimErr = domain.ErrScheduleConflict
	sender := &fakeSender{}

	require.NoError(t, newTestDaemon(store, sender).RunOnce(context.Background()))

	// The job write precedes the claim and is idempotent, so it may land
	// even when another instance wins the transition
	assert.Equal(t, []string{"u1/j1"}, store.appliedJob)
	assert.Empty(t, sender.messages)
}

func TestRunOnce_JobWriteFailureLeavesRecordScheduled(t *testing.T) {
	store := newStore()
	store.due = []domain.TimingRecord{dueRecord("u1", "j1", true)}
	store.jobs["u1/j1"] = &domain.Job{JobID: "j1"}
	store.users["u1"] = &domain.User{UserID: "u1", Email: "ana@example.com"}
	store.applyErr = errors.New("connection reset")
	sender := &fakeSender{}

	require.NoError(t, newTestDaemon(store, sender).RunOnce(context.Background()))

	// No transition persisted: the next cycle retries the submission
	assert.Empty(t, store.claimed)
	assert.Empty(t, store.appliedJob)
	assert.Empty(t, sender.messages)
}

func TestRunOnce_PanicMarksRecordFailed(t *testing.T) {
	store := newStore()
	store.due = []domain.TimingRecord{dueRecord("u1", "j1", true)}
	store.jobs["u1/j1"] = &domain.Job{JobID: "j1"}
	store.userPanics = true
	sender := &fakeSender{}

	require.NoError(t, newTestDaemon(store, sender).RunOnce(context.Background()))

	require.Len(t, store.claimed, 1)
	failed := store.claimed[0]
	assert.Equal(t, domain.ScheduleStatusFailed, failed.ScheduledSubmission.Status)
	assert.Contains(t, failed.ScheduledSubmission.FailureReason, "panic")
	assert.Empty(t, sender.messages)
}

func TestRunOnce_NotificationFailureDoesNotUndoSubmission(t *testing.T) {
	store := newStore()
	store.due = []domain.TimingRecord{dueRecord("u1", "j1", true)}
	store.jobs["u1/j1"] = &domain.Job{JobID: "j1"}
	store.users["u1"] = &domain.User{UserID: "u1", Email: "ana@example.com"}
	sender := &fakeSender{err: errors.New("broker unavailable")}

	require.NoError(t, newTestDaemon(store, sender).RunOnce(context.Background()))

	require.Len(t, store.claimed, 1)
	assert.Equal(t, domain.ScheduleStatusSubmitted, store.claimed[0].ScheduledSubmission.Status)
	assert.Equal(t, []string{"u1/j1"}, store.appliedJob)
}

func TestRunOnce_ProcessesAllDueRecords(t *testing.T) {
	store := newStore()
	for _, id := range []string{"j1", "j2", "j3"} {
		store.due = append(store.due, dueRecord("u1", id, false))
		store.jobs["u1/"+id] = &domain.Job{JobID: id}
	}
	store.users["u1"] = &domain.User{UserID: "u1", Email: "ana@example.com"}
	sender := &fakeSender{}

	require.NoError(t, newTestDaemon(store, sender).RunOnce(context.Background()))

	assert.Len(t, store.claimed, 3)
	assert.Len(t, sender.messages, 3)
}
