package telemetry

import (
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentResty attaches span middleware to a resty client. One span
// per request; request and response headers land as attributes. Bodies
// are deliberately not recorded, fetch artifacts can be large and the
// client may leave the body unparsed.
func InstrumentResty(client *resty.Client, tracerName string) {
	tracer := otel.Tracer(tracerName)

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		ctx, _ := tracer.Start(req.Context(), fmt.Sprintf("http %s", req.Method))
		req.SetContext(ctx)
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		span := trace.SpanFromContext(res.Request.Context())
		defer span.End()

		span.SetAttributes(
			semconv.URLFull(res.Request.URL),
			semconv.HTTPRequestMethodKey.String(res.Request.Method),
			semconv.HTTPResponseStatusCode(res.StatusCode()),
		)
		span.SetAttributes(headerAttributes("request/header", res.Request.Header)...)
		span.SetAttributes(headerAttributes("response/header", res.Header())...)
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		span := trace.SpanFromContext(req.Context())
		defer span.End()

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(
			semconv.URLFull(req.URL),
			semconv.HTTPRequestMethodKey.String(req.Method),
		)
		span.SetAttributes(headerAttributes("request/header", req.Header)...)
	})
}

func headerAttributes(prefix string, headers map[string][]string) []attribute.KeyValue {
	var out []attribute.KeyValue
	for header, values := range headers {
		if len(values) == 1 {
			out = append(out, attribute.String(
				fmt.Sprintf("%s: %s", prefix, header), values[0],
			))
			continue
		}
		for i, v := range values {
			out = append(out, attribute.String(
				fmt.Sprintf("%s: %s (%d)", prefix, header, i), v,
			))
		}
	}
	return out
}
