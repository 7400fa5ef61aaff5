// Package catalog stores successfully compiled layouts in a sqlite database
// so they can be listed, shown and re-rendered later.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/wdl/internal/compiler"
	"github.com/zjrosen/wdl/internal/log"
	"github.com/zjrosen/wdl/internal/tracing"
	"github.com/zjrosen/wdl/internal/wdl"
)

// timeLayout is fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrNotFound is returned when no layout matches a reference.
var ErrNotFound = errors.New("layout not found")

// Layout is one saved program.
type Layout struct {
	ID        uuid.UUID
	Name      string
	Title     string
	Width     int
	Height    int
	Source    string
	SHA256    string
	Widgets   int
	CreatedAt time.Time
}

// Store is a layout catalog backed by sqlite.
type Store struct {
	db     *sql.DB
	owned  bool
	tracer trace.Tracer
	now    func() time.Time
	newID  func() uuid.UUID
}

// Option configures a Store.
type Option func(*Store)

// WithTracer records a span per Save.
func WithTracer(t trace.Tracer) Option {
	return func(s *Store) { s.tracer = t }
}

// Open opens or creates the catalog at path and migrates it.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}
	log.Debug(log.CatCatalog, "opening catalog", "path", path)

	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		log.ErrorErr(log.CatCatalog, "failed to open catalog", err, "path", path)
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	s, err := New(ctx, db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// New migrates db and wraps it. The caller keeps ownership of db.
func New(ctx context.Context, db *sql.DB, opts ...Option) (*Store, error) {
	if err := migrate(ctx, db); err != nil {
		return nil, err
	}
	s := &Store{
		db:     db,
		tracer: noop.NewTracerProvider().Tracer(tracing.DefaultServiceName),
		now:    time.Now,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database if Open created it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

// Save stores the compiled program under name. Saving the same source under
// the same name again returns the existing entry with created false.
func (s *Store) Save(ctx context.Context, name, src string, w *wdl.Window) (layout Layout, created bool, err error) {
	sum := wdl.Collect(w)
	digest := string(compiler.DigestOf(src))

	ctx, span := s.tracer.Start(ctx, tracing.SpanCatalogSave, trace.WithAttributes(
		attribute.String(tracing.AttrSourceName, name),
		attribute.String(tracing.AttrSourceHash, digest),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
		} else {
			span.SetAttributes(attribute.String(tracing.AttrLayoutID, layout.ID.String()))
		}
		span.End()
	}()

	existing, err := s.scanOne(ctx, `WHERE name = ? AND sha256 = ?`, name, digest)
	if err == nil {
		log.Debug(log.CatCatalog, "layout unchanged", "name", name, "id", existing.ID)
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Layout{}, false, err
	}

	layout = Layout{
		ID:        s.newID(),
		Name:      name,
		Title:     w.Title,
		Width:     w.Width,
		Height:    w.Height,
		Source:    src,
		SHA256:    digest,
		Widgets:   sum.Widgets(),
		CreatedAt: s.now().UTC(),
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO layouts
		(id, name, title, width, height, source, sha256, widgets, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		layout.ID.String(), layout.Name, layout.Title, layout.Width, layout.Height,
		layout.Source, layout.SHA256, layout.Widgets, layout.CreatedAt.Format(timeLayout))
	if err != nil {
		log.ErrorErr(log.CatCatalog, "failed to save layout", err, "name", name)
		return Layout{}, false, fmt.Errorf("saving layout %s: %w", name, err)
	}

	log.Info(log.CatCatalog, "saved layout", "name", name, "id", layout.ID, "widgets", layout.Widgets)
	return layout, true, nil
}

// List returns every layout, by name and then newest first.
func (s *Store) List(ctx context.Context) ([]Layout, error) {
	rows, err := s.db.QueryContext(ctx, selectLayouts+` ORDER BY name, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing layouts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var layouts []Layout
	for rows.Next() {
		l, err := scan(rows)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, l)
	}
	return layouts, rows.Err()
}

// Get resolves ref as a layout id, or else as a name, returning the newest
// layout saved under that name.
func (s *Store) Get(ctx context.Context, ref string) (Layout, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return s.scanOne(ctx, `WHERE id = ?`, id.String())
	}
	return s.scanOne(ctx, `WHERE name = ? ORDER BY created_at DESC LIMIT 1`, ref)
}

// Delete removes the layout with the given id, or every layout saved under
// the given name. It returns the number removed.
func (s *Store) Delete(ctx context.Context, ref string) (int, error) {
	query, arg := `DELETE FROM layouts WHERE name = ?`, ref
	if id, err := uuid.Parse(ref); err == nil {
		query, arg = `DELETE FROM layouts WHERE id = ?`, id.String()
	}

	res, err := s.db.ExecContext(ctx, query, arg)
	if err != nil {
		return 0, fmt.Errorf("deleting %s: %w", ref, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting %s: %w", ref, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("%s: %w", ref, ErrNotFound)
	}
	log.Info(log.CatCatalog, "deleted layouts", "ref", ref, "count", n)
	return int(n), nil
}

const selectLayouts = `SELECT id, name, title, width, height, source, sha256, widgets, created_at FROM layouts`

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanOne(ctx context.Context, where string, args ...any) (Layout, error) {
	l, err := scan(s.db.QueryRowContext(ctx, selectLayouts+" "+where, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return Layout{}, ErrNotFound
	}
	return l, err
}

func scan(row scanner) (Layout, error) {
	var (
		l       Layout
		id      string
		created string
	)
	if err := row.Scan(&id, &l.Name, &l.Title, &l.Width, &l.Height, &l.Source, &l.SHA256, &l.Widgets, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Layout{}, err
		}
		return Layout{}, fmt.Errorf("reading layout: %w", err)
	}

	var err error
	if l.ID, err = uuid.Parse(id); err != nil {
		return Layout{}, fmt.Errorf("reading layout id %q: %w", id, err)
	}
	if l.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return Layout{}, fmt.Errorf("reading layout %s created_at: %w", id, err)
	}
	return l, nil
}
