// Package db owns schema bootstrap. Every statement is idempotent
// (CREATE TABLE IF NOT EXISTS), so InitSchema can run on every startup
// without any process-local "initialized" flag.
package db

import (
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		role_id INT NOT NULL DEFAULT 20,
		organization_id TEXT NOT NULL DEFAULT 'org_1',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS properties (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		unit_count INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		organization_id TEXT NOT NULL DEFAULT 'org_1'
	)`,
	`CREATE TABLE IF NOT EXISTS tenants (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		organization_id TEXT NOT NULL DEFAULT 'org_1'
	)`,
	`CREATE TABLE IF NOT EXISTS leases (
		id TEXT PRIMARY KEY,
		property_id TEXT NOT NULL,
		tenant_id TEXT NOT NULL,
		unit_label TEXT NOT NULL DEFAULT '',
		rent_amount_cents BIGINT NOT NULL,
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ,
		status TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		organization_id TEXT NOT NULL DEFAULT 'org_1'
	)`,
	`CREATE TABLE IF NOT EXISTS payment_schedules (
		id TEXT PRIMARY KEY,
		lease_id TEXT NOT NULL,
		rent_amount_cents BIGINT NOT NULL,
		due_day INT NOT NULL DEFAULT 1,
		start_date TIMESTAMPTZ,
		end_date TIMESTAMPTZ,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		organization_id TEXT NOT NULL DEFAULT 'org_1'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_payment_schedules_lease
		ON payment_schedules (organization_id, lease_id)`,
	`CREATE TABLE IF NOT EXISTS proration_rules (
		lease_id TEXT PRIMARY KEY,
		proration_method TEXT NOT NULL DEFAULT 'daily',
		days_in_month INT NOT NULL DEFAULT 30,
		organization_id TEXT NOT NULL DEFAULT 'org_1'
	)`,
	`CREATE TABLE IF NOT EXISTS schedule_change_requests (
		id TEXT PRIMARY KEY,
		schedule_id TEXT NOT NULL,
		tenant_id TEXT,
		requested_due_day INT,
		requested_start_date TIMESTAMPTZ,
		reason TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		manager_note TEXT NOT NULL DEFAULT '',
		effective_date TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		organization_id TEXT NOT NULL DEFAULT 'org_1'
	)`,
	`CREATE TABLE IF NOT EXISTS dunning_settings (
		organization_id TEXT PRIMARY KEY,
		first_notice_days INT NOT NULL DEFAULT 3,
		second_notice_days INT NOT NULL DEFAULT 7,
		third_notice_days INT NOT NULL DEFAULT 14,
		final_notice_days INT NOT NULL DEFAULT 30,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id TEXT PRIMARY KEY,
		lease_id TEXT NOT NULL,
		amount_cents BIGINT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		due_date TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL DEFAULT 'open',
		paid_at TIMESTAMPTZ,
		notice_stage INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		organization_id TEXT NOT NULL DEFAULT 'org_1'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_due
		ON invoices (organization_id, status, due_date)`,
	`CREATE TABLE IF NOT EXISTS vendors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		trade TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		organization_id TEXT NOT NULL DEFAULT 'org_1'
	)`,
	`CREATE TABLE IF NOT EXISTS work_orders (
		id TEXT PRIMARY KEY,
		property_id TEXT NOT NULL,
		lease_id TEXT,
		vendor_id TEXT,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT 'normal',
		status TEXT NOT NULL DEFAULT 'open',
		completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		organization_id TEXT NOT NULL DEFAULT 'org_1'
	)`,
}

// InitSchema creates all tables and indexes that do not yet exist.
func InitSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
