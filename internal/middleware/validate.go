package middleware

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/spendtrack/pkg/api"
)

// ValidationInterceptor rejects requests whose message fails Validate with
// CodeInvalidArgument before the handler runs.
func ValidationInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if v, ok := req.Any().(api.Validator); ok {
				if err := v.Validate(); err != nil {
					return nil, connect.NewError(connect.CodeInvalidArgument, err)
				}
			}
			return next(ctx, req)
		}
	}
}
