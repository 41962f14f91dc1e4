package postgres

import (
	"context"
	"fmt"
)

// schemaDDL tablas de ventas, inventario y traza de acciones. Idempotente.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS sales_data (
    id              BIGSERIAL PRIMARY KEY,
    date            DATE          NOT NULL,
    city            VARCHAR(100)  NOT NULL,
    product         VARCHAR(100)  NOT NULL,
    category        VARCHAR(100)  NOT NULL DEFAULT '',
    units_sold      INTEGER       NOT NULL CHECK (units_sold >= 0),
    revenue         NUMERIC(14,2) NOT NULL DEFAULT 0,
    avg_order_value NUMERIC(12,2) NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sales_product_date ON sales_data (product, date);
CREATE INDEX IF NOT EXISTS idx_sales_city_product ON sales_data (city, product);

CREATE TABLE IF NOT EXISTS inventory_data (
    city           VARCHAR(100)  NOT NULL,
    product        VARCHAR(100)  NOT NULL,
    category       VARCHAR(100)  NOT NULL DEFAULT '',
    current_stock  INTEGER       NOT NULL CHECK (current_stock >= 0),
    reorder_level  INTEGER       NOT NULL DEFAULT 0,
    max_capacity   INTEGER       NOT NULL DEFAULT 0,
    cost_per_unit  NUMERIC(12,2) NOT NULL DEFAULT 0,
    supplier       VARCHAR(100)  NOT NULL DEFAULT '',
    lead_time_days INTEGER       NOT NULL DEFAULT 0,
    last_restocked TIMESTAMPTZ,
    PRIMARY KEY (city, product)
);

CREATE TABLE IF NOT EXISTS action_log (
    id          UUID PRIMARY KEY,
    timestamp   TIMESTAMPTZ  NOT NULL DEFAULT now(),
    action_type VARCHAR(50)  NOT NULL,
    details     TEXT         NOT NULL DEFAULT '',
    status      VARCHAR(20)  NOT NULL DEFAULT 'pending',
    endpoint    VARCHAR(500) NOT NULL DEFAULT '',
    response    TEXT         NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_action_log_timestamp ON action_log (timestamp DESC);
`

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("aplicar schema: %w", err)
	}
	return nil
}
