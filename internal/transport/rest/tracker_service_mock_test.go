package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/summitlist-backend/internal/domain"
	"github.com/heartmarshall/summitlist-backend/internal/service/tracker"
	"sync"
)

var _ trackerService = &trackerServiceMock{}

type trackerServiceMock struct {
	DeleteAscentFunc        func(ctx context.Context, input tracker.DeleteAscentInput) error
	ImportGridFunc          func(ctx context.Context, input tracker.ImportGridInput) (tracker.ImportGridResult, error)
	ListProgressFunc        func(ctx context.Context, input tracker.ListProgressInput) (tracker.ListProgressResult, error)
	ListSummaryFunc         func(ctx context.Context, listID uuid.UUID) (domain.ProgressSummary, error)
	LogAscentFunc           func(ctx context.Context, input tracker.LogAscentInput) (domain.CompletionRecord, error)
	ObjectiveCompletionFunc func(ctx context.Context, listID uuid.UUID, objectiveID uuid.UUID) (tracker.ObjectiveProgress, error)

	calls struct {
		DeleteAscent []struct {
			Ctx   context.Context
			Input tracker.DeleteAscentInput
		}
		ImportGrid []struct {
			Ctx   context.Context
			Input tracker.ImportGridInput
		}
		ListProgress []struct {
			Ctx   context.Context
			Input tracker.ListProgressInput
		}
		ListSummary []struct {
			Ctx    context.Context
			ListID uuid.UUID
		}
		LogAscent []struct {
			Ctx   context.Context
			Input tracker.LogAscentInput
		}
		ObjectiveCompletion []struct {
			Ctx         context.Context
			ListID      uuid.UUID
			ObjectiveID uuid.UUID
		}
	}
	lockDeleteAscent        sync.RWMutex
	lockImportGrid          sync.RWMutex
	lockListProgress        sync.RWMutex
	lockListSummary         sync.RWMutex
	lockLogAscent           sync.RWMutex
	lockObjectiveCompletion sync.RWMutex
}

func (mock *trackerServiceMock) DeleteAscent(ctx context.Context, input tracker.DeleteAscentInput) error {
	if mock.DeleteAscentFunc == nil {
		panic("trackerServiceMock.DeleteAscentFunc: method is nil but trackerService.DeleteAscent was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input tracker.DeleteAscentInput
	}{Ctx: ctx, Input: input}
	mock.lockDeleteAscent.Lock()
	mock.calls.DeleteAscent = append(mock.calls.DeleteAscent, callInfo)
	mock.lockDeleteAscent.Unlock()
	return mock.DeleteAscentFunc(ctx, input)
}

func (mock *trackerServiceMock) DeleteAscentCalls() []struct {
	Ctx   context.Context
	Input tracker.DeleteAscentInput
} {
	mock.lockDeleteAscent.RLock()
	calls := mock.calls.DeleteAscent
	mock.lockDeleteAscent.RUnlock()
	return calls
}

func (mock *trackerServiceMock) ImportGrid(ctx context.Context, input tracker.ImportGridInput) (tracker.ImportGridResult, error) {
	if mock.ImportGridFunc == nil {
		panic("trackerServiceMock.ImportGridFunc: method is nil but trackerService.ImportGrid was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input tracker.ImportGridInput
	}{Ctx: ctx, Input: input}
	mock.lockImportGrid.Lock()
	mock.calls.ImportGrid = append(mock.calls.ImportGrid, callInfo)
	mock.lockImportGrid.Unlock()
	return mock.ImportGridFunc(ctx, input)
}

func (mock *trackerServiceMock) ImportGridCalls() []struct {
	Ctx   context.Context
	Input tracker.ImportGridInput
} {
	mock.lockImportGrid.RLock()
	calls := mock.calls.ImportGrid
	mock.lockImportGrid.RUnlock()
	return calls
}

func (mock *trackerServiceMock) ListProgress(ctx context.Context, input tracker.ListProgressInput) (tracker.ListProgressResult, error) {
	if mock.ListProgressFunc == nil {
		panic("trackerServiceMock.ListProgressFunc: method is nil but trackerService.ListProgress was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input tracker.ListProgressInput
	}{Ctx: ctx, Input: input}
	mock.lockListProgress.Lock()
	mock.calls.ListProgress = append(mock.calls.ListProgress, callInfo)
	mock.lockListProgress.Unlock()
	return mock.ListProgressFunc(ctx, input)
}

func (mock *trackerServiceMock) ListProgressCalls() []struct {
	Ctx   context.Context
	Input tracker.ListProgressInput
} {
	mock.lockListProgress.RLock()
	calls := mock.calls.ListProgress
	mock.lockListProgress.RUnlock()
	return calls
}

func (mock *trackerServiceMock) ListSummary(ctx context.Context, listID uuid.UUID) (domain.ProgressSummary, error) {
	if mock.ListSummaryFunc == nil {
		panic("trackerServiceMock.ListSummaryFunc: method is nil but trackerService.ListSummary was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ListID uuid.UUID
	}{Ctx: ctx, ListID: listID}
	mock.lockListSummary.Lock()
	mock.calls.ListSummary = append(mock.calls.ListSummary, callInfo)
	mock.lockListSummary.Unlock()
	return mock.ListSummaryFunc(ctx, listID)
}

func (mock *trackerServiceMock) ListSummaryCalls() []struct {
	Ctx    context.Context
	ListID uuid.UUID
} {
	mock.lockListSummary.RLock()
	calls := mock.calls.ListSummary
	mock.lockListSummary.RUnlock()
	return calls
}

func (mock *trackerServiceMock) LogAscent(ctx context.Context, input tracker.LogAscentInput) (domain.CompletionRecord, error) {
	if mock.LogAscentFunc == nil {
		panic("trackerServiceMock.LogAscentFunc: method is nil but trackerService.LogAscent was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input tracker.LogAscentInput
	}{Ctx: ctx, Input: input}
	mock.lockLogAscent.Lock()
	mock.calls.LogAscent = append(mock.calls.LogAscent, callInfo)
	mock.lockLogAscent.Unlock()
	return mock.LogAscentFunc(ctx, input)
}

func (mock *trackerServiceMock) LogAscentCalls() []struct {
	Ctx   context.Context
	Input tracker.LogAscentInput
} {
	mock.lockLogAscent.RLock()
	calls := mock.calls.LogAscent
	mock.lockLogAscent.RUnlock()
	return calls
}

func (mock *trackerServiceMock) ObjectiveCompletion(ctx context.Context, listID uuid.UUID, objectiveID uuid.UUID) (tracker.ObjectiveProgress, error) {
	if mock.ObjectiveCompletionFunc == nil {
		panic("trackerServiceMock.ObjectiveCompletionFunc: method is nil but trackerService.ObjectiveCompletion was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		ListID      uuid.UUID
		ObjectiveID uuid.UUID
	}{Ctx: ctx, ListID: listID, ObjectiveID: objectiveID}
	mock.lockObjectiveCompletion.Lock()
	mock.calls.ObjectiveCompletion = append(mock.calls.ObjectiveCompletion, callInfo)
	mock.lockObjectiveCompletion.Unlock()
	return mock.ObjectiveCompletionFunc(ctx, listID, objectiveID)
}

func (mock *trackerServiceMock) ObjectiveCompletionCalls() []struct {
	Ctx         context.Context
	ListID      uuid.UUID
	ObjectiveID uuid.UUID
} {
	mock.lockObjectiveCompletion.RLock()
	calls := mock.calls.ObjectiveCompletion
	mock.lockObjectiveCompletion.RUnlock()
	return calls
}
