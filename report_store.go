package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// storedReport is a rendered report document addressed by its own id, so
// concurrent requests never share an output location.
type storedReport struct {
	ID          string    `db:"id"`
	ContentType string    `db:"content_type"`
	Filename    string    `db:"filename"`
	Body        []byte    `db:"body"`
	CreatedAt   time.Time `db:"created_at"`
}

type reportStore interface {
	Save(ctx context.Context, r storedReport) error
	Load(ctx context.Context, id uuid.UUID) (storedReport, error)
}

/* ─── Filesystem store ───────────────────────────────────────────────── */

// contentTypes lists the document kinds the filesystem store can serve back.
var contentTypes = map[string]string{
	".pdf": "application/pdf",
	".png": "image/png",
}

// fsReportStore keeps each report at <dir>/<id><ext>.
type fsReportStore struct {
	dir string
}

func newFSReportStore(dir string) (*fsReportStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	return &fsReportStore{dir: dir}, nil
}

// Save writes through a temp file and renames it, so readers never see a
// half-written document.
func (s *fsReportStore) Save(_ context.Context, r storedReport) error {
	ext := filepath.Ext(r.Filename)
	if _, ok := contentTypes[ext]; !ok {
		return fmt.Errorf("unsupported report extension %q", ext)
	}
	tmp, err := os.CreateTemp(s.dir, ".report-*")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(r.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return os.Rename(tmp.Name(), filepath.Join(s.dir, r.ID+ext))
}

func (s *fsReportStore) Load(_ context.Context, id uuid.UUID) (storedReport, error) {
	for ext, ct := range contentTypes {
		path := filepath.Join(s.dir, id.String()+ext)
		body, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return storedReport{}, fmt.Errorf("read report: %w", err)
		}
		var created time.Time
		if info, err := os.Stat(path); err == nil {
			created = info.ModTime()
		}
		return storedReport{
			ID:          id.String(),
			ContentType: ct,
			Filename:    "diet_report" + ext,
			Body:        body,
			CreatedAt:   created,
		}, nil
	}
	return storedReport{}, errReportNotFound
}

/* ─── Postgres store ─────────────────────────────────────────────────── */

// pgReportStore keeps reports in the diet_reports table (see db/).
type pgReportStore struct {
	db *pgxpool.Pool
}

func (s *pgReportStore) Save(ctx context.Context, r storedReport) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO diet_reports (id, content_type, filename, body)
		 VALUES (@id, @contentType, @filename, @body)`,
		pgx.NamedArgs{"id": r.ID, "contentType": r.ContentType, "filename": r.Filename, "body": r.Body})
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (s *pgReportStore) Load(ctx context.Context, id uuid.UUID) (storedReport, error) {
	r, err := queryOne[storedReport](ctx, s.db,
		"SELECT id::text AS id, content_type, filename, body, created_at FROM diet_reports WHERE id = @id",
		pgx.NamedArgs{"id": id.String()})
	if errors.Is(err, pgx.ErrNoRows) {
		return storedReport{}, errReportNotFound
	}
	return r, err
}

// queryOne runs a query and scans the first row into T using RowToStructByName.
func queryOne[T any](ctx context.Context, pool *pgxpool.Pool, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		var zero T
		return zero, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
}

// getDBPool creates a connection pool for the report store.
func getDBPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse DB URL: %w", err)
	}
	// Simple protocol avoids "cached plan must not change result type" after
	// migrations alter a table under a live pool.
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

/* ─── Handler side ───────────────────────────────────────────────────── */

// saveReport renders r and stores it under a fresh id.
func (h *Handler) saveReport(ctx context.Context, r report) (string, error) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, r); err != nil {
		return "", err
	}
	id := uuid.New().String()
	err := h.reports.Save(ctx, storedReport{
		ID:          id,
		ContentType: h.renderer.ContentType(),
		Filename:    "diet_report" + h.renderer.Extension(),
		Body:        buf.Bytes(),
		CreatedAt:   h.now(),
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// getReport streams a stored report as a download.
// GET /api/reports/:id.
func (h *Handler) getReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusNotFound, "report not found")
		return
	}
	r, err := h.reports.Load(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errReportNotFound) {
			apiError(c, http.StatusNotFound, "report not found")
		} else {
			h.log.Error("report load failed", "handler", "getReport", "id", id, "error", err)
			apiError(c, http.StatusInternalServerError, "failed to load report")
		}
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, r.Filename))
	c.Data(http.StatusOK, r.ContentType, r.Body)
}
