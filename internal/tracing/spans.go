package tracing

// Span names.
const (
	SpanCompile     = "wdl.compile"
	SpanCatalogSave = "catalog.save"
)

// Span attribute keys.
const (
	AttrSourceName  = "wdl.source.name"
	AttrSourceBytes = "wdl.source.bytes"
	AttrSourceHash  = "wdl.source.sha256"
	AttrWidgets     = "wdl.widgets"
	AttrCacheHit    = "wdl.cache.hit"
	AttrOutcome     = "wdl.outcome" // ok or error
	AttrErrorKind   = "wdl.error.kind"
	AttrErrorPos    = "wdl.error.pos"
	AttrLayoutID    = "catalog.layout.id"
)

// Outcome values for AttrOutcome.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
