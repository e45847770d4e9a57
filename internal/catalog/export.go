package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/meridian-data/schemactl/internal/avro"
	"github.com/meridian-data/schemactl/internal/manifest"
)

// Summary counts what an export wrote.
type Summary struct {
	Entries int `json:"entries"`
	Fields  int `json:"fields"`
	Skipped int `json:"skipped"` // entries whose schema file was missing or malformed
}

// Export replaces the catalog contents with the given manifest's entries
// and the fields of every referenced record. Entries whose schema file
// cannot be read are written without field rows and counted as skipped.
// The whole export runs in one transaction.
func (c *Client) Export(ctx context.Context, m *manifest.Manifest, repoRoot string) (Summary, error) {
	var sum Summary

	if err := c.ensureTables(ctx); err != nil {
		return sum, fmt.Errorf("failed to create catalog tables: %w", err)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return sum, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{"DELETE FROM schema_fields", "DELETE FROM schema_entries"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return sum, err
		}
	}

	for _, group := range m.Groups() {
		for _, e := range m.Schemas[group] {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO schema_entries
					(table_name, name, group_name, namespace, file, version, compatibility, description)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				e.TableName, e.Name, group, e.Namespace, e.File, e.Version, e.Compatibility, e.Description,
			); err != nil {
				return sum, fmt.Errorf("failed to insert entry %s.%s: %w", group, e.Name, err)
			}
			sum.Entries++

			path := filepath.Join(repoRoot, filepath.FromSlash(e.File))
			doc, err := avro.ReadFile(path)
			if err != nil {
				sum.Skipped++
				continue
			}
			rec, ok := avro.PrimaryRecord(&doc, path)
			if !ok {
				sum.Skipped++
				continue
			}

			n, err := insertFields(ctx, tx, e.TableName, rec)
			if err != nil {
				return sum, fmt.Errorf("failed to insert fields for %s: %w", e.TableName, err)
			}
			sum.Fields += n
		}
	}

	if err := tx.Commit(); err != nil {
		return sum, err
	}
	return sum, nil
}

func insertFields(ctx context.Context, tx *sql.Tx, tableName string, rec *avro.Value) (int, error) {
	fields := avro.Fields(rec)
	if fields == nil {
		return 0, nil
	}

	n := 0
	for i := 0; i < fields.Len(); i++ {
		field := fields.At(i)
		fieldType := field.Field("type")
		if fieldType == nil {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO schema_fields (table_name, field_name, field_type, nullable, has_default)
			VALUES (?, ?, ?, ?, ?)`,
			tableName,
			field.StringField("name"),
			avro.TypeString(*fieldType),
			avro.IsNullable(*fieldType),
			field.Has("default"),
		); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
