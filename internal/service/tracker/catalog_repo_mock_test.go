package tracker

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/summitlist-backend/internal/domain"
	"sync"
)

var _ catalogRepo = &catalogRepoMock{}

type catalogRepoMock struct {
	GetListFunc         func(ctx context.Context, listID uuid.UUID) (*domain.List, error)
	ListsContainingFunc func(ctx context.Context, objectiveID uuid.UUID) ([]uuid.UUID, error)

	calls struct {
		GetList []struct {
			Ctx    context.Context
			ListID uuid.UUID
		}
		ListsContaining []struct {
			Ctx         context.Context
			ObjectiveID uuid.UUID
		}
	}
	lockGetList         sync.RWMutex
	lockListsContaining sync.RWMutex
}

func (mock *catalogRepoMock) GetList(ctx context.Context, listID uuid.UUID) (*domain.List, error) {
	if mock.GetListFunc == nil {
		panic("catalogRepoMock.GetListFunc: method is nil but catalogRepo.GetList was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ListID uuid.UUID
	}{Ctx: ctx, ListID: listID}
	mock.lockGetList.Lock()
	mock.calls.GetList = append(mock.calls.GetList, callInfo)
	mock.lockGetList.Unlock()
	return mock.GetListFunc(ctx, listID)
}

func (mock *catalogRepoMock) GetListCalls() []struct {
	Ctx    context.Context
	ListID uuid.UUID
} {
	mock.lockGetList.RLock()
	calls := mock.calls.GetList
	mock.lockGetList.RUnlock()
	return calls
}

func (mock *catalogRepoMock) ListsContaining(ctx context.Context, objectiveID uuid.UUID) ([]uuid.UUID, error) {
	if mock.ListsContainingFunc == nil {
		panic("catalogRepoMock.ListsContainingFunc: method is nil but catalogRepo.ListsContaining was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		ObjectiveID uuid.UUID
	}{Ctx: ctx, ObjectiveID: objectiveID}
	mock.lockListsContaining.Lock()
	mock.calls.ListsContaining = append(mock.calls.ListsContaining, callInfo)
	mock.lockListsContaining.Unlock()
	return mock.ListsContainingFunc(ctx, objectiveID)
}

func (mock *catalogRepoMock) ListsContainingCalls() []struct {
	Ctx         context.Context
	ObjectiveID uuid.UUID
} {
	mock.lockListsContaining.RLock()
	calls := mock.calls.ListsContaining
	mock.lockListsContaining.RUnlock()
	return calls
}
