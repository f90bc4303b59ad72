package tracker

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/summitlist-backend/internal/domain"
	"sync"
)

var _ progressCache = &progressCacheMock{}

type progressCacheMock struct {
	GetFunc        func(ctx context.Context, userID uuid.UUID, listID uuid.UUID) (domain.ProgressSummary, bool, error)
	GenerationFunc func(ctx context.Context, userID uuid.UUID, listID uuid.UUID) (int64, error)
	SetFunc        func(ctx context.Context, userID uuid.UUID, listID uuid.UUID, generation int64, summary domain.ProgressSummary) (bool, error)
	InvalidateFunc func(ctx context.Context, userID uuid.UUID, listIDs ...uuid.UUID) error

	calls struct {
		Get []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ListID uuid.UUID
		}
		Generation []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ListID uuid.UUID
		}
		Set []struct {
			Ctx        context.Context
			UserID     uuid.UUID
			ListID     uuid.UUID
			Generation int64
			Summary    domain.ProgressSummary
		}
		Invalidate []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			ListIDs []uuid.UUID
		}
	}
	lockGet        sync.RWMutex
	lockGeneration sync.RWMutex
	lockSet        sync.RWMutex
	lockInvalidate sync.RWMutex
}

func (mock *progressCacheMock) Get(ctx context.Context, userID uuid.UUID, listID uuid.UUID) (domain.ProgressSummary, bool, error) {
	if mock.GetFunc == nil {
		panic("progressCacheMock.GetFunc: method is nil but progressCache.Get was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ListID uuid.UUID
	}{Ctx: ctx, UserID: userID, ListID: listID}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, userID, listID)
}

func (mock *progressCacheMock) GetCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ListID uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *progressCacheMock) Generation(ctx context.Context, userID uuid.UUID, listID uuid.UUID) (int64, error) {
	if mock.GenerationFunc == nil {
		panic("progressCacheMock.GenerationFunc: method is nil but progressCache.Generation was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ListID uuid.UUID
	}{Ctx: ctx, UserID: userID, ListID: listID}
	mock.lockGeneration.Lock()
	mock.calls.Generation = append(mock.calls.Generation, callInfo)
	mock.lockGeneration.Unlock()
	return mock.GenerationFunc(ctx, userID, listID)
}

func (mock *progressCacheMock) GenerationCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ListID uuid.UUID
} {
	mock.lockGeneration.RLock()
	calls := mock.calls.Generation
	mock.lockGeneration.RUnlock()
	return calls
}

func (mock *progressCacheMock) Set(ctx context.Context, userID uuid.UUID, listID uuid.UUID, generation int64, summary domain.ProgressSummary) (bool, error) {
	if mock.SetFunc == nil {
		panic("progressCacheMock.SetFunc: method is nil but progressCache.Set was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		UserID     uuid.UUID
		ListID     uuid.UUID
		Generation int64
		Summary    domain.ProgressSummary
	}{Ctx: ctx, UserID: userID, ListID: listID, Generation: generation, Summary: summary}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	return mock.SetFunc(ctx, userID, listID, generation, summary)
}

func (mock *progressCacheMock) SetCalls() []struct {
	Ctx        context.Context
	UserID     uuid.UUID
	ListID     uuid.UUID
	Generation int64
	Summary    domain.ProgressSummary
} {
	mock.lockSet.RLock()
	calls := mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}

func (mock *progressCacheMock) Invalidate(ctx context.Context, userID uuid.UUID, listIDs ...uuid.UUID) error {
	if mock.InvalidateFunc == nil {
		panic("progressCacheMock.InvalidateFunc: method is nil but progressCache.Invalidate was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		ListIDs []uuid.UUID
	}{Ctx: ctx, UserID: userID, ListIDs: listIDs}
	mock.lockInvalidate.Lock()
	mock.calls.Invalidate = append(mock.calls.Invalidate, callInfo)
	mock.lockInvalidate.Unlock()
	return mock.InvalidateFunc(ctx, userID, listIDs...)
}

func (mock *progressCacheMock) InvalidateCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	ListIDs []uuid.UUID
} {
	mock.lockInvalidate.RLock()
	calls := mock.calls.Invalidate
	mock.lockInvalidate.RUnlock()
	return calls
}
