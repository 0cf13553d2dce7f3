// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// schemaLockKey identifies the advisory lock serializing schema runs
// across processes sharing one database.
const schemaLockKey int64 = 0x65636f6d6d // "ecomm"

// Migration creates, inspects and drops the e-commerce schema
type Migration struct {
	db     *gorm.DB
	log    *logrus.Logger
	schema *Schema
}

// TableInfo is a table name with its row count
type TableInfo struct {
	Name string
	Rows int64
}

// NewMigration creates a new migration instance for the default schema
func NewMigration(db *gorm.DB, log *logrus.Logger) *Migration {
	return &Migration{
		db:     db,
		log:    log,
		schema: DefaultSchema(),
	}
}

// Schema returns the schema this migration applies
func (m *Migration) Schema() *Schema {
	return m.schema
}

// Run creates every enum type, table, foreign key, index and trigger that
// does not exist yet. Running it again against an up to date database is a
// no-op. All statements run in one transaction, so a failure leaves the
// database as it was.
func (m *Migration) Run(ctx context.Context) error {
	if err := m.schema.Validate(); err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}

	m.log.Info("🔄 Creating database schema...")

	stmts := m.schema.Statements()
	counts := make(map[string]int)

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", schemaLockKey).Error; err != nil {
			return fmt.Errorf("failed to acquire schema lock: %w", err)
		}

		for _, stmt := range stmts {
			m.log.WithFields(logrus.Fields{
				"phase":  stmt.Phase,
				"object": stmt.Name,
			}).Debug("Applying schema statement")

			if err := tx.Exec(stmt.SQL).Error; err != nil {
				return fmt.Errorf("failed to apply %s %s: %w", stmt.Phase, stmt.Name, err)
			}
			counts[stmt.Phase]++
		}
		return nil
	})
	if err != nil {
		m.log.WithError(err).Error("❌ Database schema creation failed")
		return err
	}

	m.log.WithFields(logrus.Fields{
		"enums":        counts[PhaseEnums],
		"tables":       counts[PhaseTables],
		"foreign_keys": counts[PhaseForeignKeys],
		"indexes":      counts[PhaseIndexes],
		"triggers":     counts[PhaseTriggers],
	}).Info("✅ Database tables created successfully")

	return nil
}

// Tables returns the tables in the public schema, sorted by name
func (m *Migration) Tables(ctx context.Context) ([]string, error) {
	var tables []string

	err := m.db.WithContext(ctx).
		Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").
		Scan(&tables).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	return tables, nil
}

// GetTableInfo returns and logs the row count of every public table
func (m *Migration) GetTableInfo(ctx context.Context) ([]TableInfo, error) {
	tables, err := m.Tables(ctx)
	if err != nil {
		return nil, err
	}

	info := make([]TableInfo, 0, len(tables))
	var total int64

	for _, table := range tables {
		var count int64
		if err := m.db.WithContext(ctx).Table(quoteIdent(table)).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count rows in %s: %w", table, err)
		}
		total += count
		info = append(info, TableInfo{Name: table, Rows: count})

		m.log.WithFields(logrus.Fields{"table": table, "rows": count}).Info("📊 Table")
	}

	m.log.WithFields(logrus.Fields{"tables": len(tables), "rows": total}).Info("📈 Database summary")
	return info, nil
}

// DropAllTables drops every table, enum type and trigger function of the schema
func (m *Migration) DropAllTables(ctx context.Context) error {
	m.log.Warn("⚠️ Dropping all database tables...")

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", schemaLockKey).Error; err != nil {
			return fmt.Errorf("failed to acquire schema lock: %w", err)
		}

		for _, stmt := range m.schema.DropStatements() {
			if err := tx.Exec(stmt.SQL).Error; err != nil {
				return fmt.Errorf("failed to drop %s %s: %w", stmt.Phase, stmt.Name, err)
			}
			m.log.WithField("object", stmt.Name).Info("🗑️ Dropped")
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.log.Info("✅ All tables dropped successfully")
	return nil
}
