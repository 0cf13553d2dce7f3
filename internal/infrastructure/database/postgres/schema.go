// internal/infrastructure/database/postgres/schema.go
package postgres

import (
	"fmt"
	"strings"

	"github.com/your-org/ecommerce-platform/internal/domain/offer"
	"github.com/your-org/ecommerce-platform/internal/domain/order"
)

// Phases of a schema run, in execution order
const (
	PhaseEnums       = "enums"
	PhaseFunctions   = "functions"
	PhaseTables      = "tables"
	PhaseForeignKeys = "foreign_keys"
	PhaseIndexes     = "indexes"
	PhaseTriggers    = "triggers"
)

// FKAction is a referential action taken when the referenced row is deleted
type FKAction string

const (
	Cascade FKAction = "CASCADE"
	SetNull FKAction = "SET NULL"
)

// EnumType is a postgres enum type backing a fixed value set
type EnumType struct {
	Name   string
	Values []string
}

// Column is a column name plus its SQL type and inline constraints
type Column struct {
	Name       string
	Definition string
}

// Table is a table declared without any foreign keys
type Table struct {
	Name    string
	Columns []Column
}

// ForeignKey is attached after every table exists, so declaration order
// never has to follow reference order.
type ForeignKey struct {
	Table     string
	Column    string
	RefTable  string
	RefColumn string
	OnDelete  FKAction
}

// Index is a secondary, non-unique index
type Index struct {
	Name    string
	Table   string
	Columns []string
}

// Schema describes the full relational model
type Schema struct {
	Enums       []EnumType
	Tables      []Table
	ForeignKeys []ForeignKey
	Indexes     []Index
	// Tables whose updated_at column is maintained by a trigger
	UpdatedAtTables []string
}

// Statement is one idempotent DDL statement
type Statement struct {
	Phase string
	Name  string
	SQL   string
}

const updatedAtFunction = "set_updated_at"

// Name returns the constraint name, fk_<table>_<column>
func (fk ForeignKey) Name() string {
	return fmt.Sprintf("fk_%s_%s", fk.Table, fk.Column)
}

// Table returns the named table
func (s *Schema) Table(name string) (Table, bool) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// TableNames returns table names in declaration order
func (s *Schema) TableNames() []string {
	names := make([]string, 0, len(s.Tables))
	for _, t := range s.Tables {
		names = append(names, t.Name)
	}
	return names
}

// HasColumn reports whether the table declares the column
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Validate checks that every foreign key, index and trigger points at a
// declared table and column.
func (s *Schema) Validate() error {
	seen := make(map[string]bool, len(s.Tables))
	for _, t := range s.Tables {
		if seen[t.Name] {
			return fmt.Errorf("table %s declared twice", t.Name)
		}
		seen[t.Name] = true
	}

	for _, fk := range s.ForeignKeys {
		t, ok := s.Table(fk.Table)
		if !ok || !t.HasColumn(fk.Column) {
			return fmt.Errorf("foreign key %s: unknown column %s.%s", fk.Name(), fk.Table, fk.Column)
		}
		ref, ok := s.Table(fk.RefTable)
		if !ok || !ref.HasColumn(fk.RefColumn) {
			return fmt.Errorf("foreign key %s: unknown referenced column %s.%s", fk.Name(), fk.RefTable, fk.RefColumn)
		}
		if fk.OnDelete != Cascade && fk.OnDelete != SetNull {
			return fmt.Errorf("foreign key %s: unsupported action %q", fk.Name(), fk.OnDelete)
		}
	}

	for _, idx := range s.Indexes {
		t, ok := s.Table(idx.Table)
		if !ok {
			return fmt.Errorf("index %s: unknown table %s", idx.Name, idx.Table)
		}
		for _, col := range idx.Columns {
			if !t.HasColumn(col) {
				return fmt.Errorf("index %s: unknown column %s.%s", idx.Name, idx.Table, col)
			}
		}
	}

	for _, name := range s.UpdatedAtTables {
		t, ok := s.Table(name)
		if !ok || !t.HasColumn("updated_at") {
			return fmt.Errorf("updated_at trigger: table %s has no updated_at column", name)
		}
	}

	return nil
}

// Statements renders the schema as an ordered list of statements that can be
// executed any number of times.
func (s *Schema) Statements() []Statement {
	var stmts []Statement

	for _, e := range s.Enums {
		stmts = append(stmts, Statement{Phase: PhaseEnums, Name: e.Name, SQL: createEnumSQL(e)})
	}

	if len(s.UpdatedAtTables) > 0 {
		stmts = append(stmts, Statement{Phase: PhaseFunctions, Name: updatedAtFunction, SQL: updatedAtFunctionSQL})
	}

	for _, t := range s.Tables {
		stmts = append(stmts, Statement{Phase: PhaseTables, Name: t.Name, SQL: createTableSQL(t)})
	}

	for _, fk := range s.ForeignKeys {
		stmts = append(stmts, Statement{Phase: PhaseForeignKeys, Name: fk.Name(), SQL: addForeignKeySQL(fk)})
	}

	for _, idx := range s.Indexes {
		stmts = append(stmts, Statement{Phase: PhaseIndexes, Name: idx.Name, SQL: createIndexSQL(idx)})
	}

	for _, table := range s.UpdatedAtTables {
		name := triggerName(table)
		stmts = append(stmts, Statement{Phase: PhaseTriggers, Name: name, SQL: createTriggerSQL(table)})
	}

	return stmts
}

// DropStatements renders statements removing everything Statements creates
func (s *Schema) DropStatements() []Statement {
	var stmts []Statement

	for i := len(s.Tables) - 1; i >= 0; i-- {
		name := s.Tables[i].Name
		stmts = append(stmts, Statement{
			Phase: PhaseTables,
			Name:  name,
			SQL:   fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", quoteIdent(name)),
		})
	}

	if len(s.UpdatedAtTables) > 0 {
		stmts = append(stmts, Statement{
			Phase: PhaseFunctions,
			Name:  updatedAtFunction,
			SQL:   fmt.Sprintf("DROP FUNCTION IF EXISTS %s()", updatedAtFunction),
		})
	}

	for i := len(s.Enums) - 1; i >= 0; i-- {
		name := s.Enums[i].Name
		stmts = append(stmts, Statement{
			Phase: PhaseEnums,
			Name:  name,
			SQL:   fmt.Sprintf("DROP TYPE IF EXISTS %s", quoteIdent(name)),
		})
	}

	return stmts
}

func createEnumSQL(e EnumType) string {
	values := make([]string, len(e.Values))
	for i, v := range e.Values {
		values[i] = quoteLiteral(v)
	}

	return fmt.Sprintf(`DO $$
BEGIN
    IF to_regtype(%s) IS NULL THEN
        CREATE TYPE %s AS ENUM (%s);
    END IF;
END
$$`, quoteLiteral(e.Name), quoteIdent(e.Name), strings.Join(values, ", "))
}

func createTableSQL(t Table) string {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = fmt.Sprintf("    %s %s", quoteIdent(c.Name), c.Definition)
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)", quoteIdent(t.Name), strings.Join(cols, ",\n"))
}

func addForeignKeySQL(fk ForeignKey) string {
	return fmt.Sprintf(`DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint
        WHERE conname = %s AND conrelid = to_regclass(%s)
    ) THEN
        ALTER TABLE %s ADD CONSTRAINT %s
            FOREIGN KEY (%s) REFERENCES %s (%s)
            ON DELETE %s ON UPDATE CASCADE;
    END IF;
END
$$`,
		quoteLiteral(fk.Name()), quoteLiteral(fk.Table),
		quoteIdent(fk.Table), quoteIdent(fk.Name()),
		quoteIdent(fk.Column), quoteIdent(fk.RefTable), quoteIdent(fk.RefColumn),
		fk.OnDelete)
}

func createIndexSQL(idx Index) string {
	cols := make([]string, len(idx.Columns))
	for i, c := range idx.Columns {
		cols[i] = quoteIdent(c)
	}

	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
		quoteIdent(idx.Name), quoteIdent(idx.Table), strings.Join(cols, ", "))
}

const updatedAtFunctionSQL = `CREATE OR REPLACE FUNCTION set_updated_at() RETURNS TRIGGER AS $$
BEGIN
    NEW.updated_at = CURRENT_TIMESTAMP;
    RETURN NEW;
END;
$$ LANGUAGE plpgsql`

func triggerName(table string) string {
	return fmt.Sprintf("trg_%s_updated_at", table)
}

func createTriggerSQL(table string) string {
	name := triggerName(table)

	return fmt.Sprintf(`DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_trigger
        WHERE tgname = %s AND tgrelid = to_regclass(%s)
    ) THEN
        CREATE TRIGGER %s BEFORE UPDATE ON %s
            FOR EACH ROW EXECUTE FUNCTION %s();
    END IF;
END
$$`, quoteLiteral(name), quoteLiteral(table), quoteIdent(name), quoteIdent(table), updatedAtFunction)
}

// reserved holds the identifiers used by the schema that postgres only
// accepts quoted in every position.
var reserved = map[string]bool{
	"timestamp": true,
}

func quoteIdent(name string) string {
	if reserved[name] {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return name
}

func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// DefaultSchema returns the e-commerce schema
func DefaultSchema() *Schema {
	return &Schema{
		Enums: []EnumType{
			{Name: "order_status", Values: enumValues(order.OrderStatuses())},
			{Name: "payment_status", Values: enumValues(order.PaymentStatuses())},
			{Name: "payment_type", Values: enumValues(order.PaymentTypes())},
			{Name: "discount_type", Values: enumValues(offer.DiscountTypes())},
			{Name: "offer_status", Values: enumValues(offer.Statuses())},
		},
		Tables: []Table{
			{Name: "users", Columns: []Column{
				identity("user_id"),
				{"first_name", "VARCHAR(50) NOT NULL"},
				{"last_name", "VARCHAR(50) NOT NULL"},
				{"email", "VARCHAR(100) UNIQUE NOT NULL"},
				{"password_hash", "VARCHAR(255) NOT NULL"},
				{"phone_number", "VARCHAR(15)"},
				{"date_created", "TIMESTAMP DEFAULT CURRENT_TIMESTAMP"},
				{"last_login", "TIMESTAMP NULL"},
				{"deleted_at", "TIMESTAMP NULL"},
			}},
			{Name: "categories", Columns: []Column{
				identity("category_id"),
				{"category_name", "VARCHAR(100) NOT NULL"},
				{"description", "TEXT"},
				{"parent_category_id", "INTEGER"},
				{"deleted_at", "TIMESTAMP NULL"},
			}},
			{Name: "brands", Columns: []Column{
				identity("brand_id"),
				{"brand_name", "VARCHAR(100) NOT NULL"},
				{"description", "TEXT"},
				{"deleted_at", "TIMESTAMP NULL"},
			}},
			{Name: "products", Columns: []Column{
				identity("product_id"),
				{"product_name", "VARCHAR(100) NOT NULL"},
				{"category_id", "INTEGER"},
				{"brand_id", "INTEGER"},
				{"status", "BOOLEAN NOT NULL DEFAULT TRUE"},
				{"created_at", "TIMESTAMP DEFAULT CURRENT_TIMESTAMP"},
				{"updated_at", "TIMESTAMP DEFAULT CURRENT_TIMESTAMP"},
				{"deleted_at", "TIMESTAMP NULL"},
			}},
			{Name: "product_variants", Columns: []Column{
				identity("variant_id"),
				{"product_id", "INTEGER NOT NULL"},
				{"size", "VARCHAR(50)"},
				{"color", "VARCHAR(50)"},
				money("price", "NOT NULL"),
				{"stock_quantity", "INTEGER NOT NULL"},
			}},
			{Name: "orders", Columns: []Column{
				identity("order_id"),
				{"order_number", "VARCHAR(50) UNIQUE NOT NULL"},
				{"user_id", "INTEGER"},
				{"order_date", "TIMESTAMP DEFAULT CURRENT_TIMESTAMP"},
				money("total_amount", "NOT NULL"),
				money("discount_amount", "DEFAULT 0"),
				money("gross_amount", "NOT NULL"),
				money("shipping_amount", "DEFAULT 0"),
				money("net_amount", "NOT NULL"),
				{"order_status", "order_status NOT NULL"},
				{"payment_status", "payment_status NOT NULL"},
				{"payment_type", "payment_type NOT NULL"},
				{"payment_transaction_id", "VARCHAR(100)"},
				{"shipping_address_id", "INTEGER"},
				{"payment_id", "INTEGER"},
			}},
			{Name: "order_items", Columns: []Column{
				identity("order_item_id"),
				{"order_id", "INTEGER"},
				{"variant_id", "INTEGER"},
				money("price_at_purchase", "NOT NULL"),
				{"quantity", "INTEGER NOT NULL CHECK (quantity > 0)"},
				money("total_amount", "NOT NULL"),
			}},
			{Name: "payments", Columns: []Column{
				identity("payment_id"),
				{"order_id", "INTEGER"},
				{"payment_method", "VARCHAR(50) NOT NULL"},
				{"payment_date", "TIMESTAMP DEFAULT CURRENT_TIMESTAMP"},
				money("amount", "NOT NULL"),
				{"status", "VARCHAR(50) NOT NULL"},
			}},
			{Name: "shipping_addresses", Columns: []Column{
				identity("address_id"),
				{"user_id", "INTEGER"},
				{"street_address", "VARCHAR(255) NOT NULL"},
				{"city", "VARCHAR(100) NOT NULL"},
				{"province", "VARCHAR(100)"},
				{"country", "VARCHAR(100) NOT NULL"},
			}},
			{Name: "cart_items", Columns: []Column{
				identity("cart_item_id"),
				{"variant_id", "INTEGER"},
				{"quantity", "INTEGER NOT NULL CHECK (quantity > 0)"},
			}},
			{Name: "reviews", Columns: []Column{
				identity("review_id"),
				{"product_id", "INTEGER"},
				{"user_id", "INTEGER"},
				{"rating", "INTEGER CHECK (rating >= 1 AND rating <= 5)"},
				{"comment", "TEXT"},
				{"created_at", "TIMESTAMP DEFAULT CURRENT_TIMESTAMP"},
			}},
			{Name: "wishlist", Columns: []Column{
				identity("wishlist_item_id"),
				{"user_id", "INTEGER"},
				{"variant_id", "INTEGER"},
				{"created_at", "TIMESTAMP DEFAULT CURRENT_TIMESTAMP"},
			}},
			{Name: "offers", Columns: []Column{
				identity("offer_id"),
				{"coupon_code", "VARCHAR(50) UNIQUE NOT NULL"},
				{"discount_type", "discount_type NOT NULL"},
				money("discount_value", "NOT NULL"),
				{"start_date", "DATE NOT NULL"},
				{"end_date", "DATE NOT NULL"},
				{"description", "TEXT"},
				{"status", "offer_status NOT NULL DEFAULT 'active'"},
			}},
			{Name: "product_images", Columns: []Column{
				identity("image_id"),
				{"product_id", "INTEGER"},
				{"image_url", "VARCHAR(255) NOT NULL"},
				{"alt_text", "VARCHAR(255)"},
			}},
			{Name: "analytics", Columns: []Column{
				identity("analytics_id"),
				{"user_id", "INTEGER"},
				{"variant_id", "INTEGER"},
				{"view_count", "INTEGER NOT NULL"},
				{"timestamp", "TIMESTAMP DEFAULT CURRENT_TIMESTAMP"},
			}},
		},
		ForeignKeys: []ForeignKey{
			{"categories", "parent_category_id", "categories", "category_id", SetNull},
			{"products", "category_id", "categories", "category_id", SetNull},
			{"products", "brand_id", "brands", "brand_id", SetNull},
			{"product_variants", "product_id", "products", "product_id", Cascade},
			{"orders", "user_id", "users", "user_id", Cascade},
			{"orders", "shipping_address_id", "shipping_addresses", "address_id", SetNull},
			{"orders", "payment_id", "payments", "payment_id", SetNull},
			{"order_items", "order_id", "orders", "order_id", Cascade},
			{"order_items", "variant_id", "product_variants", "variant_id", SetNull},
			{"payments", "order_id", "orders", "order_id", Cascade},
			{"shipping_addresses", "user_id", "users", "user_id", Cascade},
			{"cart_items", "variant_id", "product_variants", "variant_id", SetNull},
			{"reviews", "product_id", "products", "product_id", Cascade},
			{"reviews", "user_id", "users", "user_id", Cascade},
			{"wishlist", "user_id", "users", "user_id", Cascade},
			{"wishlist", "variant_id", "product_variants", "variant_id", SetNull},
			{"product_images", "product_id", "products", "product_id", Cascade},
			{"analytics", "user_id", "users", "user_id", Cascade},
			{"analytics", "variant_id", "product_variants", "variant_id", Cascade},
		},
		Indexes: []Index{
			{"idx_users_email", "users", []string{"email"}},
			{"idx_products_category", "products", []string{"category_id"}},
			{"idx_product_variants_product", "product_variants", []string{"product_id"}},
			{"idx_orders_user", "orders", []string{"user_id"}},
			{"idx_order_items_order", "order_items", []string{"order_id"}},
			{"idx_cart_items_variant", "cart_items", []string{"variant_id"}},
			{"idx_reviews_product", "reviews", []string{"product_id"}},
			{"idx_analytics_user", "analytics", []string{"user_id"}},
			{"idx_analytics_variant", "analytics", []string{"variant_id"}},
		},
		UpdatedAtTables: []string{"products"},
	}
}

func identity(name string) Column {
	return Column{Name: name, Definition: "INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"}
}

func money(name, constraints string) Column {
	return Column{Name: name, Definition: "NUMERIC(10, 2) " + constraints}
}

func enumValues[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
