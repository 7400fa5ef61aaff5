// Package compiler is the service every command goes through to turn source
// into a widget tree. It adds a content-addressed cache, a trace span and a
// broker notification around wdl.Parse.
package compiler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/wdl/internal/cachemanager"
	"github.com/zjrosen/wdl/internal/log"
	"github.com/zjrosen/wdl/internal/pubsub"
	"github.com/zjrosen/wdl/internal/tracing"
	"github.com/zjrosen/wdl/internal/wdl"
)

// Digest is the hex sha256 of a source text.
type Digest string

// DigestOf hashes src.
func DigestOf(src string) Digest {
	sum := sha256.Sum256([]byte(src))
	return Digest(hex.EncodeToString(sum[:]))
}

// Result is the outcome of one compile. Window is nil exactly when Err is
// set. Windows served from the cache are shared and must not be mutated.
type Result struct {
	Name   string
	Source string
	Digest Digest
	Window *wdl.Window
	Stats  wdl.Stats
	Err    error
	Cached bool
}

// Diagnostic returns the parse diagnostic, if Err is one.
func (r Result) Diagnostic() (*wdl.Diagnostic, bool) {
	var d *wdl.Diagnostic
	ok := errors.As(r.Err, &d)
	return d, ok
}

// Options configures a Compiler. The zero value compiles without caching,
// tracing or publishing.
type Options struct {
	CacheEnabled bool
	CacheTTL     time.Duration
	// Refresh restarts a cached entry's expiry on every hit, so a source that
	// keeps being recompiled stays cached.
	Refresh bool
	Tracer  trace.Tracer
	Broker       *pubsub.Broker[Result]
}

// entry is what the cache stores: parse failures are cached as well, since
// the same bytes always fail the same way.
type entry struct {
	window *wdl.Window
	stats  wdl.Stats
	err    error
}

type request struct {
	src    string
	loaded *bool
}

// Compiler is safe for concurrent use.
type Compiler struct {
	cache  *cachemanager.InMemoryCacheManager[Digest, entry]
	reader *cachemanager.ReadThroughCache[Digest, entry, request]
	ttl     time.Duration
	refresh bool
	tracer  trace.Tracer
	broker  *pubsub.Broker[Result]
}

// New returns a Compiler for opts.
func New(opts Options) *Compiler {
	return newCompiler(opts, load)
}

func newCompiler(opts Options, loader cachemanager.Loader[entry, request]) *Compiler {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = cachemanager.DefaultExpiration
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(tracing.DefaultServiceName)
	}

	cache := cachemanager.NewInMemoryCacheManager[Digest, entry]("compile", ttl, cachemanager.DefaultCleanupInterval)
	return &Compiler{
		cache:  cache,
		reader:  cachemanager.NewReadThroughCache[Digest, entry, request](cache, loader, !opts.CacheEnabled),
		ttl:     ttl,
		refresh: opts.Refresh,
		tracer:  tracer,
		broker:  opts.Broker,
	}
}

func load(_ context.Context, req request) (entry, error) {
	*req.loaded = true
	w, err := wdl.Parse(req.src)
	if err != nil {
		return entry{err: err}, nil
	}
	return entry{window: w, stats: wdl.Collect(w)}, nil
}

// Compile parses src. name labels the source in logs, spans and results; it
// is usually a file path. The returned error is Result.Err.
func (c *Compiler) Compile(ctx context.Context, name, src string) (Result, error) {
	digest := DigestOf(src)
	ctx, span := c.tracer.Start(ctx, tracing.SpanCompile, trace.WithAttributes(
		attribute.String(tracing.AttrSourceName, name),
		attribute.Int(tracing.AttrSourceBytes, len(src)),
		attribute.String(tracing.AttrSourceHash, string(digest)),
	))
	defer span.End()

	get := c.reader.Get
	if c.refresh {
		get = c.reader.GetWithRefresh
	}
	var loaded bool
	e, err := get(ctx, digest, request{src: src, loaded: &loaded}, c.ttl)
	if err != nil {
		err = fmt.Errorf("compiling %s: %w", name, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(tracing.AttrOutcome, tracing.OutcomeError))
		log.ErrorErr(log.CatCompiler, "compile failed", err, "name", name)
		res := Result{Name: name, Source: src, Digest: digest, Err: err}
		c.publish(pubsub.FailedEvent, res)
		return res, err
	}

	res := Result{
		Name:   name,
		Source: src,
		Digest: digest,
		Window: e.window,
		Stats:  e.stats,
		Err:    e.err,
		Cached: !loaded,
	}
	span.SetAttributes(attribute.Bool(tracing.AttrCacheHit, res.Cached))

	if d, ok := res.Diagnostic(); ok {
		span.SetAttributes(
			attribute.String(tracing.AttrOutcome, tracing.OutcomeError),
			attribute.String(tracing.AttrErrorKind, d.Kind.String()),
			attribute.String(tracing.AttrErrorPos, d.Pos().String()),
		)
		span.RecordError(d)
		span.SetStatus(codes.Error, d.Error())
		log.Warn(log.CatParser, "parse failed", "name", name, "pos", d.Pos(), "kind", d.Kind, "cached", res.Cached)
		c.publish(pubsub.FailedEvent, res)
		return res, res.Err
	}

	span.SetAttributes(
		attribute.String(tracing.AttrOutcome, tracing.OutcomeOK),
		attribute.Int(tracing.AttrWidgets, res.Stats.Widgets()),
	)
	span.SetStatus(codes.Ok, "")
	log.Debug(log.CatCompiler, "compiled", "name", name, "widgets", res.Stats.Widgets(), "cached", res.Cached)
	c.publish(pubsub.CompiledEvent, res)
	return res, nil
}

// Fail publishes a failed result for a source that never reached the parser,
// such as a file that could not be read.
func (c *Compiler) Fail(name string, err error) Result {
	res := Result{Name: name, Err: err}
	log.ErrorErr(log.CatCompiler, "source unavailable", err, "name", name)
	c.publish(pubsub.FailedEvent, res)
	return res
}

func (c *Compiler) publish(t pubsub.EventType, res Result) {
	if c.broker != nil {
		c.broker.Publish(t, res)
	}
}

// CacheStats reports cache traffic.
func (c *Compiler) CacheStats() cachemanager.Stats {
	return c.cache.Stats()
}

// Flush drops every cached result.
func (c *Compiler) Flush(ctx context.Context) {
	c.cache.Flush(ctx)
}
