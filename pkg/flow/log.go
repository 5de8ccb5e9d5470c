package flow

import (
	"context"
	"log/slog"

	"github.com/zitadel/logging"
)

// logger returns the request scoped logger when the HTTP layer put one into
// the context, the flow wide logger otherwise.
func (f *Flow) loggerFromCtx(ctx context.Context) *slog.Logger {
	logger, ok := logging.FromContext(ctx)
	if !ok {
		return f.logger
	}
	return logger
}
