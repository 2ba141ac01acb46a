package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// diagnosticsRepository implements DiagnosticsRepository interface
type diagnosticsRepository struct {
	db *gorm.DB
}

// NewDiagnosticsRepository creates a new diagnostics repository
func NewDiagnosticsRepository(db *gorm.DB) DiagnosticsRepository {
	return &diagnosticsRepository{db: db}
}

// TableInfo probes one table and returns its column names. A query error
// (missing table, permission problem) surfaces to the handler as-is.
func (r *diagnosticsRepository) TableInfo(ctx context.Context, table string) ([]string, error) {
	migrator := r.db.WithContext(ctx).Migrator()
	if !migrator.HasTable(table) {
		return nil, fmt.Errorf("table %s does not exist", table)
	}

	columnTypes, err := migrator.ColumnTypes(table)
	if err != nil {
		return nil, err
	}

	columns := make([]string, 0, len(columnTypes))
	for _, ct := range columnTypes {
		columns = append(columns, ct.Name())
	}
	return columns, nil
}
