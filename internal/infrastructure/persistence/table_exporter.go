package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/flower8718/backend/internal/application/backup"
)

// exportTables is the fixed set of tables included in CSV exports,
// in dependency order for easier reimport.
var exportTables = []string{
	"stores",
	"suppliers",
	"items",
	"supplies",
	"price_changes",
	"supply_price_changes",
	"inventory",
	"arrivals",
	"transfers",
	"supply_transfers",
	"disposals",
	"inventory_adjustments",
	"invoices",
	"invoice_items",
	"payments",
	"expenses",
	"error_alerts",
	"settings",
}

// GormTableExporter implements backup.TableExporter by dumping whole
// tables through the raw SQL connection.
type GormTableExporter struct {
	db *gorm.DB
}

// NewGormTableExporter creates a new GormTableExporter
func NewGormTableExporter(db *gorm.DB) *GormTableExporter {
	return &GormTableExporter{db: db}
}

// TableNames lists the exportable tables
func (e *GormTableExporter) TableNames(ctx context.Context) ([]string, error) {
	names := make([]string, len(exportTables))
	copy(names, exportTables)
	return names, nil
}

// DumpTable returns a table's column names and all of its rows as strings
func (e *GormTableExporter) DumpTable(ctx context.Context, name string) ([]string, [][]string, error) {
	allowed := false
	for _, t := range exportTables {
		if t == name {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, nil, fmt.Errorf("table %q is not exportable", name)
	}

	rows, err := e.db.WithContext(ctx).Raw("SELECT * FROM " + name + " ORDER BY id").Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var result [][]string
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, nil, err
		}

		record := make([]string, len(columns))
		for i, v := range values {
			if v.Valid {
				record[i] = v.String
			}
		}
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return columns, result, nil
}

var _ backup.TableExporter = (*GormTableExporter)(nil)
