package apperr

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs an error that could not be handled by the caller. Values
// attached with goerr.V are logged alongside the message.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger := ctxlog.From(ctx)

	var goErr *goerr.Error
	if errors.As(err, &goErr) {
		logger.Error("application error", "error", err, "values", goErr.Values())
		return
	}

	logger.Error("application error", "error", err)
}
