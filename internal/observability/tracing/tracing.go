package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// InjectTraceID returns ctx carrying a logger tagged with a fresh id under key
func InjectTraceID(ctx context.Context, key string) context.Context {
	id := uuid.New().String()
	logger := log.Ctx(ctx).With().Str(key, id).Logger()
	return logger.WithContext(ctx)
}
