package ports

import (
	"context"

	"launchdash/domain/launch"
)

// LaunchSource loads the launch table once at startup
type LaunchSource interface {
	Load(ctx context.Context) (*launch.Dataset, error)
	// Describe names the source for logs and the summary panel
	Describe() string
}

// LaunchWriter persists launch records, used by the import commands
type LaunchWriter interface {
	ReplaceAll(ctx context.Context, records []launch.Record) error
}
