// Package mocks provides centralized mock implementations for testing.
//
// Two styles are offered. Function-field mocks (MockGroupService,
// MockStudyService, MockEventService) run the matching Fn field when set
// and otherwise return the default fields:
//
//	groups := &mocks.MockGroupService{
//	    CheckAccessFn: func(ctx context.Context, groupID, userID uuid.UUID) error {
//	        return service.ErrGroupNotFound
//	    },
//	}
//
// TestifyMockUserStore is built on testify/mock for tests that assert on
// calls and arguments.
package mocks
