package cli

import (
	"context"
	"io"

	"github.com/matzehuels/pypin/pkg/errors"
)

// Execute runs pypin with args and returns the process exit code: 0 on
// completion (per-package failures included), 1 on any fatal error.
// Fatal errors are logged to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := New(stdout, stderr, LogInfo)
	err := c.run(ctx, args)
	if err == nil {
		return 0
	}
	if ctx.Err() != nil {
		err = ctx.Err()
	}
	switch code := errors.GetCode(err); code {
	case "":
		c.Logger.Error(err.Error())
	case errors.ErrCodeInterrupted:
		c.Logger.Error("interrupted", "code", code)
	default:
		c.Logger.Error(errors.UserMessage(err), "code", code)
	}
	return 1
}
