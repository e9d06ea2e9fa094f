/*
Package tracing provides lightweight request tracing logged through zap.

# Overview

Every HTTP request and pointer stream connection gets a span. Trace context
travels in the X-Trace-ID and X-Span-ID headers, both on incoming requests
and on outgoing remote catalog fetches, so a catalog server can correlate
its logs with ours.

# Usage

	tracer := tracing.New("webdesk", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "catalog.fetch")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()
	tracing.Inject(ctx, req.Header)

Finished spans are buffered (1000) and logged from one goroutine; spans are
dropped with a warning when the buffer is full.
*/
package tracing
