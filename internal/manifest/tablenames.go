package manifest

import (
	"strings"

	"github.com/meridian-data/schemactl/internal/report"
)

// TableNameReport summarizes a table-name validation pass.
type TableNameReport struct {
	Total         int              `json:"total"`
	WithTableName int              `json:"with_table_name"`
	Problems      []report.Problem `json:"problems,omitempty"`
}

// Clean reports whether validation found no problems.
func (r TableNameReport) Clean() bool { return len(r.Problems) == 0 }

// ValidateTableNames checks the invariant that every entry declares a
// non-empty table_name and that table names are unique across the whole
// manifest. The manifest is the single source of truth for table naming,
// so both violations fail the run.
func ValidateTableNames(m *Manifest) TableNameReport {
	var r TableNameReport

	owners := map[string][]string{}
	var order []string

	for _, group := range m.Groups() {
		for _, e := range m.Schemas[group] {
			r.Total++
			if e.Name == "" {
				r.Problems = append(r.Problems, report.Problemf(
					report.KindStructuralViolation, group, "schema entry missing name"))
				continue
			}
			qualified := group + "." + e.Name
			if e.TableName == "" {
				r.Problems = append(r.Problems, report.Problemf(
					report.KindStructuralViolation, qualified, "missing table_name"))
				continue
			}
			r.WithTableName++
			if _, ok := owners[e.TableName]; !ok {
				order = append(order, e.TableName)
			}
			owners[e.TableName] = append(owners[e.TableName], qualified)
		}
	}

	for _, tableName := range order {
		if holders := owners[tableName]; len(holders) > 1 {
			r.Problems = append(r.Problems, report.Problemf(
				report.KindStructuralViolation, tableName,
				"duplicate table_name used by: %s", strings.Join(holders, ", ")))
		}
	}
	return r
}
