package cleaner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	mu       sync.Mutex
	expired  int64
	calls    int
	failWith error
}

func (f *fakeRepo) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failWith != nil {
		return 0, f.failWith
	}
	deleted := f.expired
	f.expired = 0
	return deleted, nil
}

func (f *fakeRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Первый проход выполняется сразу, не дожидаясь тикера
func TestCleanerSweepsImmediately(t *testing.T) {
	repo := &fakeRepo{expired: 3}
	c := New(repo, time.Hour, noopLogger{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return repo.callCount() >= 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

// Проходы повторяются по тикеру без внешних пинков
func TestCleanerSweepsPeriodically(t *testing.T) {
	repo := &fakeRepo{expired: 2}
	c := New(repo, 10*time.Millisecond, noopLogger{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = c.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return repo.callCount() >= 3
	}, time.Second, 5*time.Millisecond)
}

// Сбой хранилища не роняет цикл: следующий тик пробует снова
func TestCleanerSurvivesRepositoryFailure(t *testing.T) {
	repo := &fakeRepo{failWith: errors.New("connection reset")}
	c := New(repo, 10*time.Millisecond, noopLogger{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = c.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return repo.callCount() >= 2
	}, time.Second, 5*time.Millisecond)
}
