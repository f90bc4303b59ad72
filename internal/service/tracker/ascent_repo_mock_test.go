package tracker

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/summitlist-backend/internal/domain"
	"sync"
)

var _ ascentRepo = &ascentRepoMock{}

type ascentRepoMock struct {
	ListByObjectivesFunc func(ctx context.Context, userID uuid.UUID, objectiveIDs []uuid.UUID) ([]domain.Ascent, error)
	CreateFunc           func(ctx context.Context, a domain.Ascent) (bool, error)
	DeleteFunc           func(ctx context.Context, userID uuid.UUID, objectiveID uuid.UUID, date domain.Date) error
	BulkCreateFunc       func(ctx context.Context, ascents []domain.Ascent) (int, error)

	calls struct {
		ListByObjectives []struct {
			Ctx          context.Context
			UserID       uuid.UUID
			ObjectiveIDs []uuid.UUID
		}
		Create []struct {
			Ctx context.Context
			A   domain.Ascent
		}
		Delete []struct {
			Ctx         context.Context
			UserID      uuid.UUID
			ObjectiveID uuid.UUID
			Date        domain.Date
		}
		BulkCreate []struct {
			Ctx     context.Context
			Ascents []domain.Ascent
		}
	}
	lockListByObjectives sync.RWMutex
	lockCreate           sync.RWMutex
	lockDelete           sync.RWMutex
	lockBulkCreate       sync.RWMutex
}

func (mock *ascentRepoMock) ListByObjectives(ctx context.Context, userID uuid.UUID, objectiveIDs []uuid.UUID) ([]domain.Ascent, error) {
	if mock.ListByObjectivesFunc == nil {
		panic("ascentRepoMock.ListByObjectivesFunc: method is nil but ascentRepo.ListByObjectives was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		UserID       uuid.UUID
		ObjectiveIDs []uuid.UUID
	}{Ctx: ctx, UserID: userID, ObjectiveIDs: objectiveIDs}
	mock.lockListByObjectives.Lock()
	mock.calls.ListByObjectives = append(mock.calls.ListByObjectives, callInfo)
	mock.lockListByObjectives.Unlock()
	return mock.ListByObjectivesFunc(ctx, userID, objectiveIDs)
}

func (mock *ascentRepoMock) ListByObjectivesCalls() []struct {
	Ctx          context.Context
	UserID       uuid.UUID
	ObjectiveIDs []uuid.UUID
} {
	mock.lockListByObjectives.RLock()
	calls := mock.calls.ListByObjectives
	mock.lockListByObjectives.RUnlock()
	return calls
}

func (mock *ascentRepoMock) Create(ctx context.Context, a domain.Ascent) (bool, error) {
	if mock.CreateFunc == nil {
		panic("ascentRepoMock.CreateFunc: method is nil but ascentRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		A   domain.Ascent
	}{Ctx: ctx, A: a}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, a)
}

func (mock *ascentRepoMock) CreateCalls() []struct {
	Ctx context.Context
	A   domain.Ascent
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *ascentRepoMock) Delete(ctx context.Context, userID uuid.UUID, objectiveID uuid.UUID, date domain.Date) error {
	if mock.DeleteFunc == nil {
		panic("ascentRepoMock.DeleteFunc: method is nil but ascentRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		UserID      uuid.UUID
		ObjectiveID uuid.UUID
		Date        domain.Date
	}{Ctx: ctx, UserID: userID, ObjectiveID: objectiveID, Date: date}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, userID, objectiveID, date)
}

func (mock *ascentRepoMock) DeleteCalls() []struct {
	Ctx         context.Context
	UserID      uuid.UUID
	ObjectiveID uuid.UUID
	Date        domain.Date
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *ascentRepoMock) BulkCreate(ctx context.Context, ascents []domain.Ascent) (int, error) {
	if mock.BulkCreateFunc == nil {
		panic("ascentRepoMock.BulkCreateFunc: method is nil but ascentRepo.BulkCreate was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Ascents []domain.Ascent
	}{Ctx: ctx, Ascents: ascents}
	mock.lockBulkCreate.Lock()
	mock.calls.BulkCreate = append(mock.calls.BulkCreate, callInfo)
	mock.lockBulkCreate.Unlock()
	return mock.BulkCreateFunc(ctx, ascents)
}

func (mock *ascentRepoMock) BulkCreateCalls() []struct {
	Ctx     context.Context
	Ascents []domain.Ascent
} {
	mock.lockBulkCreate.RLock()
	calls := mock.calls.BulkCreate
	mock.lockBulkCreate.RUnlock()
	return calls
}
