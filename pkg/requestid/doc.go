// Package requestid assigns every HTTP request a correlation ID. A
// client-supplied X-Request-ID header is reused when it looks sane,
// otherwise a UUID is generated. The ID travels in the request context,
// is echoed in the response header, and a LoggerExtractor injects it
// into every log record so one visitor interaction can be traced across
// the pipeline.
package requestid
