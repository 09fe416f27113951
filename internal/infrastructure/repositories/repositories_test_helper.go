package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'USER',
		is_active BOOLEAN NOT NULL DEFAULT 1,
		stripe_customer_id TEXT,
		reset_password_token TEXT,
		reset_password_expires DATETIME,
		phone TEXT,
		street TEXT,
		city TEXT,
		state TEXT,
		postal_code TEXT,
		country TEXT,
		currency TEXT NOT NULL DEFAULT 'USD',
		email_notifications BOOLEAN NOT NULL DEFAULT 1,
		sms_notifications BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createDomainTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE domains (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		extension TEXT NOT NULL,
		full_domain TEXT NOT NULL,
		status TEXT NOT NULL,
		owner_id TEXT,
		registrar TEXT NOT NULL DEFAULT 'namecheap',
		cost REAL NOT NULL,
		markup REAL NOT NULL DEFAULT 0,
		selling_price REAL NOT NULL,
		currency TEXT NOT NULL DEFAULT 'USD',
		dns_records TEXT DEFAULT '[]',
		registration_date DATETIME,
		expiration_date DATETIME,
		auto_renew BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX idx_domains_active_full_domain
		ON domains (full_domain)
		WHERE status IN ('registered', 'pending', 'payment_completed')
		  AND deleted_at IS NULL;`)
}

func createTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		domain_id TEXT NOT NULL,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		amount_value REAL NOT NULL,
		amount_currency TEXT NOT NULL DEFAULT 'USD',
		payment_method TEXT NOT NULL DEFAULT 'stripe',
		stripe_payment_intent_id TEXT,
		stripe_charge_id TEXT,
		card_brand TEXT,
		card_last4 TEXT,
		years INTEGER NOT NULL DEFAULT 1,
		notes TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createConversationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE ai_conversations (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		session_id TEXT NOT NULL UNIQUE,
		messages TEXT DEFAULT '[]',
		recommendations TEXT DEFAULT '[]',
		status TEXT NOT NULL DEFAULT 'active',
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}
