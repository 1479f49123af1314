// Package store persists templates and extracted field definitions in
// PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/plandoc/fieldex-go/internal/config"
	"github.com/plandoc/fieldex-go/pkg/fieldex/models"
)

// ErrTemplateNotFound indicates no active template row matches a file name.
var ErrTemplateNotFound = errors.New("template not found")

// syncBatchSize matches the batch size the field table is written in.
const syncBatchSize = 50

// Store wraps the template and field tables.
type Store struct {
	db *sql.DB
}

// Open connects to Postgres with the pool settings from cfg.
func Open(cfg config.PostgresConfig) (*Store, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &Store{db: db}, nil
}

// New wraps an existing connection; used by tests.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping tests the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Template is one registered document template.
type Template struct {
	ID       string
	Code     string
	Name     string
	FileType string
	FileURL  string
	Active   bool
}

// TemplateIDByFile resolves the template row backing an uploaded file name.
// Exact code or name matches win; otherwise the first fuzzy match is used.
func (s *Store) TemplateIDByFile(ctx context.Context, filename string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	code := CodeFromFilename(filename)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, codigo, nombre FROM plantillas_documento
		 WHERE activa = true AND (codigo ILIKE '%' || $1 || '%' OR nombre ILIKE '%' || $2 || '%')`,
		code, base)
	if err != nil {
		return "", fmt.Errorf("lookup template for %s: %w", filename, err)
	}
	defer rows.Close()

	var firstID string
	for rows.Next() {
		var id, rowCode, rowName string
		if err := rows.Scan(&id, &rowCode, &rowName); err != nil {
			return "", err
		}
		if strings.EqualFold(rowCode, code) || strings.EqualFold(rowName, base) {
			return id, nil
		}
		if firstID == "" {
			firstID = id
		}
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	if firstID == "" {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, filename)
	}
	return firstID, nil
}

// SyncResult reports created vs already-present fields for one run.
type SyncResult struct {
	Created  int
	Existing int
}

// SyncFields writes extracted fields in batches, skipping codes that already
// exist for the template so manually edited field configuration is never
// clobbered. Fields must all belong to the same template.
func (s *Store) SyncFields(ctx context.Context, fields []models.FieldDefinition) (SyncResult, error) {
	var res SyncResult
	for start := 0; start < len(fields); start += syncBatchSize {
		batch := fields[start:min(start+syncBatchSize, len(fields))]

		codes := make([]string, len(batch))
		for i, f := range batch {
			codes[i] = f.Code
		}
		existing, err := s.existingCodes(ctx, batch[0].TemplateID, codes)
		if err != nil {
			return res, err
		}

		for _, f := range batch {
			if existing[f.Code] {
				res.Existing++
				continue
			}
			if err := s.insertField(ctx, f); err != nil {
				return res, err
			}
			res.Created++
		}
	}
	return res, nil
}

func (s *Store) existingCodes(ctx context.Context, templateID string, codes []string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT codigo FROM campos_plantilla WHERE plantilla_id = $1 AND codigo = ANY($2)`,
		templateID, pq.Array(codes))
	if err != nil {
		return nil, fmt.Errorf("check existing codes: %w", err)
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		existing[c] = true
	}
	return existing, rows.Err()
}

func (s *Store) insertField(ctx context.Context, f models.FieldDefinition) error {
	settings, err := json.Marshal(f.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings for %s: %w", f.Code, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO campos_plantilla
		 (plantilla_id, codigo, pregunta, descripcion, hoja_excel, celda_excel, area_seccion, tipo, configuracion, rol_asignado, orden)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		f.TemplateID, f.Code, f.Prompt, f.Description, f.SourceSheet, f.SourceCell,
		f.SectionLabel, string(f.Type), settings, f.AssignedRole, f.Order)
	if err != nil {
		return fmt.Errorf("insert field %s: %w", f.Code, err)
	}
	return nil
}

// UpsertTemplate registers a template row, updating the stored file URL when
// the code already exists, and returns the row id.
func (s *Store) UpsertTemplate(ctx context.Context, tpl Template) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO plantillas_documento (codigo, nombre, tipo_archivo, archivo_url, activa)
		 VALUES ($1, $2, $3, $4, true)
		 ON CONFLICT (codigo) DO UPDATE SET archivo_url = EXCLUDED.archivo_url
		 RETURNING id`,
		tpl.Code, tpl.Name, tpl.FileType, tpl.FileURL).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert template %s: %w", tpl.Code, err)
	}
	return id, nil
}

// ListTemplates returns the active templates ordered by name.
func (s *Store) ListTemplates(ctx context.Context) ([]Template, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, codigo, nombre, tipo_archivo, activa FROM plantillas_documento
		 WHERE activa = true ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		var t Template
		if err := rows.Scan(&t.ID, &t.Code, &t.Name, &t.FileType, &t.Active); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// TemplateSummary aggregates the persisted fields of one template for the
// operator-facing verify report.
type TemplateSummary struct {
	Template  Template
	Total     int
	ByType    map[string]int
	BySection map[string]int
	ByRole    map[string]int
	Sheets    []string
}

// TemplateSummaries counts the persisted fields of every active template,
// grouped by type, section and role.
func (s *Store) TemplateSummaries(ctx context.Context) ([]TemplateSummary, error) {
	templates, err := s.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]TemplateSummary, 0, len(templates))
	for _, tpl := range templates {
		summary, err := s.summarize(ctx, tpl)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *Store) summarize(ctx context.Context, tpl Template) (TemplateSummary, error) {
	summary := TemplateSummary{
		Template:  tpl,
		ByType:    make(map[string]int),
		BySection: make(map[string]int),
		ByRole:    make(map[string]int),
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT tipo, area_seccion, rol_asignado, hoja_excel FROM campos_plantilla
		 WHERE plantilla_id = $1 ORDER BY orden`, tpl.ID)
	if err != nil {
		return summary, fmt.Errorf("fields for template %s: %w", tpl.Code, err)
	}
	defer rows.Close()

	sheets := make(map[string]bool)
	for rows.Next() {
		var fieldType, section, role, sheet string
		if err := rows.Scan(&fieldType, &section, &role, &sheet); err != nil {
			return summary, err
		}
		summary.Total++
		summary.ByType[fieldType]++
		summary.BySection[section]++
		summary.ByRole[role]++
		if !sheets[sheet] {
			sheets[sheet] = true
			summary.Sheets = append(summary.Sheets, sheet)
		}
	}
	return summary, rows.Err()
}

// CodeFromFilename normalizes a file name into the template-code form used
// at upload time, so extraction runs can find the row the upload created.
func CodeFromFilename(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	var b strings.Builder
	for _, r := range strings.ToUpper(base) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
		if b.Len() >= 50 {
			break
		}
	}
	return b.String()
}
