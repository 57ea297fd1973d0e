// Package mocks provides centralized mock implementations for testing.
//
// Two styles are offered. Function-field mocks (MockTaskService,
// MockJWTService, ...) return configured defaults unless a Fn field is
// set. Testify mocks (TestifyMockTaskStore) record calls and let tests
// assert on them with AssertExpectations and AssertNotCalled.
//
// Usage:
//
//	tasks := &mocks.MockTaskService{
//	    CreateFn: func(ctx context.Context, actorID int64, d domain.TaskDraft) (int64, error) {
//	        return 7, nil
//	    },
//	}
package mocks
