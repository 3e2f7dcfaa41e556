package dataset

import "context"

// Source loads the two read-only input datasets. Both are loaded once at startup.
type Source interface {
	LoadAssignments(ctx context.Context) ([]Assignment, error)
	LoadActivity(ctx context.Context) (ActivitySet, error)
}
