package middleware

import (
	"context"

	"connectrpc.com/connect"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/mmynk/spendtrack/internal/middleware"

// TracingInterceptor starts a server span per RPC, continuing any W3C trace
// context sent by the caller.
func TracingInterceptor(tp trace.TracerProvider) connect.UnaryInterceptorFunc {
	tracer := tp.Tracer(tracerName)
	propagator := propagation.TraceContext{}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			ctx = propagator.Extract(ctx, propagation.HeaderCarrier(req.Header()))
			ctx, span := tracer.Start(ctx, req.Spec().Procedure,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attribute.String("rpc.system", "connect_rpc")),
			)
			defer span.End()

			if id := GetUserID(ctx); id != "" {
				span.SetAttributes(attribute.String("enduser.id", id))
			}

			resp, err := next(ctx, req)
			if err != nil {
				code := connect.CodeOf(err)
				span.SetAttributes(attribute.String("rpc.connect_rpc.error_code", code.String()))
				if code == connect.CodeInternal || code == connect.CodeUnknown {
					span.SetStatus(codes.Error, err.Error())
				}
			}
			return resp, err
		}
	}
}
