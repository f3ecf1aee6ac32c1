package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"vidaudit/internal/classify"
	"vidaudit/internal/report"
	"vidaudit/internal/tally"
)

// ErrNotFound is returned when no batch matches the requested id.
var ErrNotFound = errors.New("batch not found")

// SaveBatch stores a finished batch. reportPath may be empty when no report
// file was written. Saving the same batch id twice fails.
func (s *Store) SaveBatch(ctx context.Context, model report.Model, reportPath string) error {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(model.BatchID) == "" {
		return errors.New("save batch: batch id is empty")
	}
	t := model.Tally
	if t == nil {
		t = tally.New()
	}
	tallyJSON, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal tally: %w", err)
	}

	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin save tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO batches (
                id, root, started_at, finished_at, total, hdr, other_color,
                warn, skipped, report_path, tally_json
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			model.BatchID,
			model.Root,
			formatTime(model.StartedAt),
			formatTime(model.FinishedAt),
			t.Total,
			t.HDR,
			t.OtherColor,
			t.Buckets[classify.BucketWarn],
			len(model.Skipped),
			nullableString(reportPath),
			string(tallyJSON),
		); err != nil {
			return fmt.Errorf("insert batch: %w", err)
		}

		for i, row := range model.Rows {
			rec := recordFromRow(row)
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO batch_files (
                    batch_id, position, path, dimensions, resolution, framerate,
                    framerate_display, color, color_display, severity, bucket,
                    raw, dolby_vision, iso, note
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				model.BatchID, i, rec.Path, rec.Dimensions, rec.Resolution, rec.Framerate,
				rec.FramerateDisplay, rec.Color, rec.ColorDisplay, rec.Severity, rec.Bucket,
				boolToInt(rec.RAW), boolToInt(rec.DolbyVision), nullableString(rec.ISO), nullableString(rec.Note),
			); err != nil {
				return fmt.Errorf("insert batch file %s: %w", rec.Path, err)
			}
		}

		for i, skipped := range model.Skipped {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO batch_skipped (batch_id, position, path, reason) VALUES (?, ?, ?, ?)`,
				model.BatchID, i, skipped.Path, skipped.Reason,
			); err != nil {
				return fmt.Errorf("insert skipped file %s: %w", skipped.Path, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit batch: %w", err)
		}
		return nil
	})
}

const summaryColumns = `id, root, started_at, finished_at, total, hdr, other_color, warn, skipped, report_path`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(scanner rowScanner) (BatchSummary, error) {
	var (
		summary    BatchSummary
		startedAt  string
		finishedAt string
		reportPath sql.NullString
	)
	if err := scanner.Scan(
		&summary.ID,
		&summary.Root,
		&startedAt,
		&finishedAt,
		&summary.Total,
		&summary.HDR,
		&summary.OtherColor,
		&summary.Warn,
		&summary.Skipped,
		&reportPath,
	); err != nil {
		return BatchSummary{}, err
	}
	summary.StartedAt = parseTime(startedAt)
	summary.FinishedAt = parseTime(finishedAt)
	summary.ReportPath = reportPath.String
	return summary, nil
}

// ListBatches returns the most recent batches first. A limit of zero or
// less returns every batch.
func (s *Store) ListBatches(ctx context.Context, limit int) ([]BatchSummary, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + summaryColumns + ` FROM batches ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var batches []BatchSummary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, summary)
	}
	return batches, rows.Err()
}

// GetBatch loads one batch with its rows. id may be a unique prefix of a
// stored batch id.
func (s *Store) GetBatch(ctx context.Context, id string) (*Batch, error) {
	ctx = ensureContext(ctx)
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+summaryColumns+`, tally_json FROM batches WHERE id = ? OR id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`,
		id, escapeLike(id)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("get batch: %w", err)
	}
	var (
		matches   []Batch
		tallyJSON []string
	)
	for rows.Next() {
		var (
			b         Batch
			raw       string
			startedAt string
			finished  string
			path      sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.Root, &startedAt, &finished, &b.Total, &b.HDR, &b.OtherColor,
			&b.Warn, &b.Skipped, &path, &raw); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		b.StartedAt = parseTime(startedAt)
		b.FinishedAt = parseTime(finished)
		b.ReportPath = path.String
		matches = append(matches, b)
		tallyJSON = append(tallyJSON, raw)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("get batch: %w", err)
	}
	rows.Close()

	idx := -1
	for i := range matches {
		if matches[i].ID == id {
			idx = i
		}
	}
	switch {
	case idx >= 0:
	case len(matches) == 1:
		idx = 0
	case len(matches) == 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	default:
		return nil, fmt.Errorf("batch id prefix %q is ambiguous", id)
	}

	batch := matches[idx]
	batch.Tally = tally.New()
	if err := json.Unmarshal([]byte(tallyJSON[idx]), batch.Tally); err != nil {
		return nil, fmt.Errorf("decode tally for %s: %w", batch.ID, err)
	}
	if batch.Files, err = s.loadFiles(ctx, batch.ID); err != nil {
		return nil, err
	}
	if batch.SkippedFiles, err = s.loadSkipped(ctx, batch.ID); err != nil {
		return nil, err
	}
	return &batch, nil
}

func (s *Store) loadFiles(ctx context.Context, batchID string) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, dimensions, resolution, framerate, framerate_display, color, color_display,
                severity, bucket, raw, dolby_vision, iso, note
         FROM batch_files WHERE batch_id = ? ORDER BY position`, batchID)
	if err != nil {
		return nil, fmt.Errorf("load batch files: %w", err)
	}
	defer rows.Close()

	files := []FileRecord{}
	for rows.Next() {
		var (
			rec       FileRecord
			raw, dv   int
			iso, note sql.NullString
		)
		if err := rows.Scan(&rec.Path, &rec.Dimensions, &rec.Resolution, &rec.Framerate, &rec.FramerateDisplay,
			&rec.Color, &rec.ColorDisplay, &rec.Severity, &rec.Bucket, &raw, &dv, &iso, &note); err != nil {
			return nil, fmt.Errorf("scan batch file: %w", err)
		}
		rec.RAW = raw != 0
		rec.DolbyVision = dv != 0
		rec.ISO = iso.String
		rec.Note = note.String
		files = append(files, rec)
	}
	return files, rows.Err()
}

func (s *Store) loadSkipped(ctx context.Context, batchID string) ([]report.Skipped, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, reason FROM batch_skipped WHERE batch_id = ? ORDER BY position`, batchID)
	if err != nil {
		return nil, fmt.Errorf("load skipped files: %w", err)
	}
	defer rows.Close()

	skipped := []report.Skipped{}
	for rows.Next() {
		var entry report.Skipped
		if err := rows.Scan(&entry.Path, &entry.Reason); err != nil {
			return nil, fmt.Errorf("scan skipped file: %w", err)
		}
		skipped = append(skipped, entry)
	}
	return skipped, rows.Err()
}

// Prune deletes all but the keep most recent batches and returns how many
// were removed. keep <= 0 keeps everything.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	ctx = ensureContext(ctx)
	if keep <= 0 {
		return 0, nil
	}
	var removed int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx,
			`DELETE FROM batches WHERE id NOT IN (
                SELECT id FROM batches ORDER BY started_at DESC, id LIMIT ?
            )`, keep)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("prune batches: %w", err)
	}
	return int(removed), nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
