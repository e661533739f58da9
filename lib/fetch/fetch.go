// Package fetch issues exactly one GET with a replayed header set and
// saves the raw response body as a local artifact.
//
// The body is written as it came off the wire. When the header set names
// its own Accept-Encoding the transport will not negotiate or decompress,
// so a gzip response lands on disk still compressed; without one the
// transport decompresses transparently and the artifact is plain bytes.
// gziputil handles both when reading the artifact back.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/cookiejar"
	"os"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"webtable/lib/headerfile"
	"webtable/lib/telemetry"
)

var tracer = otel.Tracer("webtable/fetch")

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type Options struct {
	// zero means 30s
	Timeout time.Duration
	// fallback user-agent when the header set does not spoof its own
	UserAgent string
	// wrap the transport with browser-like fingerprint headers
	BypassCloudflare bool
}

// NewClient builds the single resty client a run uses: cookie jar so
// Set-Cookie responses round-trip within the run, spoofed user-agent,
// otel span middleware.
func NewClient(opts Options) (*resty.Client, error) {
	client := resty.New()

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)

	if opts.BypassCloudflare {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	client.SetHeader("user-agent", ua)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}
	client.SetTimeout(timeout)

	// the artifact must be the raw body, never resty's parsed copy
	client.SetDoNotParseResponse(true)

	telemetry.InstrumentResty(client, "webtable/fetch")

	return client, nil
}

type Request struct {
	URL        string
	Headers    headerfile.Headers
	OutputPath string
}

// Result reports what the one transfer did, for inspection.
type Result struct {
	URL             string
	StatusCode      int
	BytesWritten    int64
	ContentEncoding string
	Elapsed         time.Duration
	Artifact        string
}

// Do performs the single GET. Every pair from the header set goes on the
// request unmodified. A non-2xx status is not an error here: it comes
// back in the Result and the body is still saved, that is the operator's
// diagnostic to read. Network failures propagate.
func Do(ctx context.Context, client *resty.Client, req Request) (Result, error) {
	ctx, span := tracer.Start(ctx, "Do")
	defer span.End()
	span.SetAttributes(attribute.String("url", req.URL))

	r := client.R().SetContext(ctx)
	req.Headers.Apply(r)

	start := time.Now()
	res, err := r.Get(req.URL)
	if err != nil {
		span.SetStatus(codes.Error, "request failed")
		return Result{}, fmt.Errorf("get %s: %w", req.URL, err)
	}
	body := res.RawBody()
	defer body.Close()

	out, err := os.Create(req.OutputPath)
	if err != nil {
		return Result{}, fmt.Errorf("create artifact: %w", err)
	}

	written, err := io.Copy(out, body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		span.SetStatus(codes.Error, "failed to save body")
		return Result{}, fmt.Errorf("save artifact %s: %w", req.OutputPath, err)
	}

	result := Result{
		URL:             req.URL,
		StatusCode:      res.StatusCode(),
		BytesWritten:    written,
		ContentEncoding: res.Header().Get("Content-Encoding"),
		Elapsed:         time.Since(start),
		Artifact:        req.OutputPath,
	}

	span.SetAttributes(
		attribute.Int("status", result.StatusCode),
		attribute.Int64("bytes", result.BytesWritten),
	)

	if res.IsError() {
		slog.Warn("fetch returned a non-success status",
			"url", req.URL, "status", result.StatusCode)
	}
	slog.Info("saved artifact",
		"url", req.URL,
		"status", result.StatusCode,
		"bytes", result.BytesWritten,
		"content_encoding", result.ContentEncoding,
		"artifact", req.OutputPath,
	)

	return result, nil
}
