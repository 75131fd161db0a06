package memory

import (
	"fmt"

	"github.com/phrazzld/studygroup-api/internal/store"
)

// invalidEntity reports a failed validation. The result matches both
// store.ErrInvalidEntity and the domain error it wraps.
func invalidEntity(entity, operation string, err error) error {
	return store.NewStoreError(entity, operation, "validation failed",
		fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
}
