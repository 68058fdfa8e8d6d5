package mid

import (
	"context"
	"net/http"

	"github.com/velostock/velostock/app/sdk/errs"
	"github.com/velostock/velostock/business/sdk/web"
	"github.com/velostock/velostock/foundation/logger"
)

// Errors handles errors coming out of the call chain. It detects normal
// application errors which are used to respond to the client in a uniform way.
// Unexpected errors (status >= 500) are logged.
func Errors(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := checkIsError(resp)
			if err == nil {
				return resp
			}

			var appErr *errs.Error
			if !errs.IsError(err) {
				appErr = errs.Errorf(errs.Internal, "Internal Server Error")
			} else {
				appErr = errs.GetError(err)
			}

			log.Error(ctx, "handled error during request",
				"err", err,
				"source_err_file", appErr.FileName,
				"source_err_func", appErr.FuncName)

			if appErr.Code == errs.InternalOnlyLog {
				appErr = errs.Errorf(errs.Internal, "Internal Server Error")
			}

			return appErr
		}

		return h
	}

	return m
}
