package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSchemaIsValid(t *testing.T) {
	require.NoError(t, DefaultSchema().Validate())
}

func TestDefaultSchemaTables(t *testing.T) {
	assert.Equal(t, []string{
		"users", "categories", "brands", "products", "product_variants",
		"orders", "order_items", "payments", "shipping_addresses", "cart_items",
		"reviews", "wishlist", "offers", "product_images", "analytics",
	}, DefaultSchema().TableNames())
}

func TestStatementsArePhaseOrdered(t *testing.T) {
	order := map[string]int{
		PhaseEnums:       0,
		PhaseFunctions:   1,
		PhaseTables:      2,
		PhaseForeignKeys: 3,
		PhaseIndexes:     4,
		PhaseTriggers:    5,
	}

	last := -1
	for _, stmt := range DefaultSchema().Statements() {
		rank, ok := order[stmt.Phase]
		require.True(t, ok, "unknown phase %s", stmt.Phase)
		require.GreaterOrEqual(t, rank, last, "%s %s out of order", stmt.Phase, stmt.Name)
		last = rank
	}
}

func TestTablesCarryNoForeignKeys(t *testing.T) {
	for _, stmt := range DefaultSchema().Statements() {
		if stmt.Phase != PhaseTables {
			continue
		}
		assert.True(t, strings.HasPrefix(stmt.SQL, "CREATE TABLE IF NOT EXISTS "), stmt.Name)
		assert.NotContains(t, strings.ToUpper(stmt.SQL), "REFERENCES", stmt.Name)
	}
}

func TestEveryStatementIsGuarded(t *testing.T) {
	for _, stmt := range DefaultSchema().Statements() {
		sql := stmt.SQL
		guarded := strings.Contains(sql, "IF NOT EXISTS") ||
			strings.Contains(sql, "IS NULL THEN") ||
			strings.HasPrefix(sql, "CREATE OR REPLACE")
		assert.True(t, guarded, "%s %s is not idempotent:\n%s", stmt.Phase, stmt.Name, sql)
	}
}

func TestEnumStatement(t *testing.T) {
	sql := createEnumSQL(EnumType{Name: "payment_status", Values: []string{"paid", "not paid"}})

	assert.Contains(t, sql, "IF to_regtype('payment_status') IS NULL THEN")
	assert.Contains(t, sql, "CREATE TYPE payment_status AS ENUM ('paid', 'not paid');")
}

func TestEnumValuesComeFromDomain(t *testing.T) {
	values := map[string][]string{}
	for _, e := range DefaultSchema().Enums {
		values[e.Name] = e.Values
	}

	assert.Equal(t, []string{"placed", "processing", "shipping", "delivered"}, values["order_status"])
	assert.Equal(t, []string{"paid", "not paid"}, values["payment_status"])
	assert.Equal(t, []string{"netbanking", "upi", "cod"}, values["payment_type"])
	assert.Equal(t, []string{"fixed", "rate"}, values["discount_type"])
	assert.Equal(t, []string{"active", "inactive"}, values["offer_status"])
}

func TestForeignKeyStatement(t *testing.T) {
	fk := ForeignKey{Table: "orders", Column: "payment_id", RefTable: "payments", RefColumn: "payment_id", OnDelete: SetNull}
	sql := addForeignKeySQL(fk)

	assert.Equal(t, "fk_orders_payment_id", fk.Name())
	assert.Contains(t, sql, "WHERE conname = 'fk_orders_payment_id' AND conrelid = to_regclass('orders')")
	assert.Contains(t, sql, "ALTER TABLE orders ADD CONSTRAINT fk_orders_payment_id")
	assert.Contains(t, sql, "FOREIGN KEY (payment_id) REFERENCES payments (payment_id)")
	assert.Contains(t, sql, "ON DELETE SET NULL ON UPDATE CASCADE;")
}

func TestForeignKeyActions(t *testing.T) {
	actions := map[string]FKAction{}
	for _, fk := range DefaultSchema().ForeignKeys {
		actions[fk.Name()] = fk.OnDelete
	}

	cascades := []string{
		"fk_orders_user_id", "fk_shipping_addresses_user_id", "fk_reviews_user_id",
		"fk_wishlist_user_id", "fk_analytics_user_id",
		"fk_product_variants_product_id", "fk_product_images_product_id", "fk_reviews_product_id",
		"fk_order_items_order_id", "fk_payments_order_id", "fk_analytics_variant_id",
	}
	for _, name := range cascades {
		assert.Equal(t, Cascade, actions[name], name)
	}

	nullifies := []string{
		"fk_categories_parent_category_id", "fk_products_category_id", "fk_products_brand_id",
		"fk_order_items_variant_id", "fk_cart_items_variant_id", "fk_wishlist_variant_id",
		"fk_orders_shipping_address_id", "fk_orders_payment_id",
	}
	for _, name := range nullifies {
		assert.Equal(t, SetNull, actions[name], name)
	}

	assert.Len(t, actions, len(cascades)+len(nullifies))
}

func TestCheckConstraints(t *testing.T) {
	s := DefaultSchema()

	definition := func(table, column string) string {
		tbl, ok := s.Table(table)
		require.True(t, ok, table)
		for _, c := range tbl.Columns {
			if c.Name == column {
				return c.Definition
			}
		}
		t.Fatalf("column %s.%s not found", table, column)
		return ""
	}

	assert.Contains(t, definition("order_items", "quantity"), "CHECK (quantity > 0)")
	assert.Contains(t, definition("cart_items", "quantity"), "CHECK (quantity > 0)")
	assert.Contains(t, definition("reviews", "rating"), "CHECK (rating >= 1 AND rating <= 5)")
	assert.Contains(t, definition("offers", "status"), "DEFAULT 'active'")
}

func TestReservedColumnIsQuoted(t *testing.T) {
	tbl, ok := DefaultSchema().Table("analytics")
	require.True(t, ok)

	assert.Contains(t, createTableSQL(tbl), `"timestamp" TIMESTAMP DEFAULT CURRENT_TIMESTAMP`)
}

func TestIndexStatement(t *testing.T) {
	sql := createIndexSQL(Index{Name: "idx_orders_user", Table: "orders", Columns: []string{"user_id"}})

	assert.Equal(t, "CREATE INDEX IF NOT EXISTS idx_orders_user ON orders (user_id)", sql)
}

func TestValidateRejectsDanglingReferences(t *testing.T) {
	base := func() *Schema {
		return &Schema{Tables: []Table{
			{Name: "a", Columns: []Column{identity("a_id"), {"b_id", "INTEGER"}}},
			{Name: "b", Columns: []Column{identity("b_id")}},
		}}
	}

	s := base()
	s.ForeignKeys = []ForeignKey{{"a", "b_id", "b", "b_id", Cascade}}
	assert.NoError(t, s.Validate())

	s = base()
	s.ForeignKeys = []ForeignKey{{"a", "b_id", "c", "c_id", Cascade}}
	assert.ErrorContains(t, s.Validate(), "unknown referenced column c.c_id")

	s = base()
	s.ForeignKeys = []ForeignKey{{"a", "missing", "b", "b_id", Cascade}}
	assert.ErrorContains(t, s.Validate(), "unknown column a.missing")

	s = base()
	s.ForeignKeys = []ForeignKey{{"a", "b_id", "b", "b_id", FKAction("RESTRICT")}}
	assert.ErrorContains(t, s.Validate(), "unsupported action")

	s = base()
	s.Indexes = []Index{{"idx_a_x", "a", []string{"x"}}}
	assert.ErrorContains(t, s.Validate(), "unknown column a.x")

	s = base()
	s.UpdatedAtTables = []string{"b"}
	assert.ErrorContains(t, s.Validate(), "no updated_at column")

	s = base()
	s.Tables = append(s.Tables, Table{Name: "a"})
	assert.ErrorContains(t, s.Validate(), "declared twice")
}

func TestDropStatementsReverseOrder(t *testing.T) {
	stmts := DefaultSchema().DropStatements()
	require.NotEmpty(t, stmts)

	assert.Equal(t, "DROP TABLE IF EXISTS analytics CASCADE", stmts[0].SQL)
	assert.Equal(t, "DROP TYPE IF EXISTS order_status", stmts[len(stmts)-1].SQL)

	var hasFunction bool
	for _, stmt := range stmts {
		if stmt.SQL == "DROP FUNCTION IF EXISTS set_updated_at()" {
			hasFunction = true
		}
	}
	assert.True(t, hasFunction)
}

func TestQuoteLiteralEscapes(t *testing.T) {
	assert.Equal(t, "'it''s'", quoteLiteral("it's"))
}

func TestQuoteIdentOnlyQuotesReserved(t *testing.T) {
	assert.Equal(t, `"timestamp"`, quoteIdent("timestamp"))
	assert.Equal(t, "orders", quoteIdent("orders"))
	assert.Equal(t, "users", quoteIdent("users"))
}
