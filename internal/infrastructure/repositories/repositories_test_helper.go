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
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
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
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		is_active BOOLEAN NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createLeadTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE leads (
		id TEXT PRIMARY KEY,
		name TEXT,
		mobile TEXT NOT NULL,
		loan_type_interest TEXT,
		source TEXT,
		status TEXT NOT NULL,
		customer_id TEXT,
		created_at DATETIME
	);`)
}

func createCustomerTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE customers (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		customer_code TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL,
		nic_number TEXT,
		mobile TEXT,
		address TEXT,
		business_type TEXT,
		status TEXT NOT NULL,
		lead_status TEXT NOT NULL,
		kyc_status TEXT NOT NULL,
		eligibility_status TEXT NOT NULL,
		created_at DATETIME
	);`)
}

func createLoanTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE loans (
		id TEXT PRIMARY KEY,
		loan_number TEXT NOT NULL UNIQUE,
		customer_id TEXT NOT NULL,
		principal_amount TEXT NOT NULL,
		interest_rate TEXT NOT NULL,
		total_days INTEGER NOT NULL,
		daily_installment TEXT NOT NULL,
		total_payable TEXT NOT NULL,
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		status TEXT NOT NULL,
		created_by_id TEXT NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		loan_id TEXT NOT NULL,
		collection_date DATETIME NOT NULL,
		amount_collected TEXT NOT NULL,
		collected_by_id TEXT NOT NULL,
		payment_method TEXT NOT NULL,
		remarks TEXT,
		created_at DATETIME
	);`)
}

func createApplicationTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE loan_applications (
		id TEXT PRIMARY KEY,
		application_number TEXT NOT NULL UNIQUE,
		customer_id TEXT NOT NULL,
		loan_type TEXT NOT NULL,
		status TEXT NOT NULL,
		applied_amount TEXT NOT NULL,
		tenure_months INTEGER NOT NULL,
		interest_rate TEXT,
		approved_amount TEXT,
		approved_tenure INTEGER,
		review_notes TEXT,
		reject_reason TEXT,
		full_name TEXT,
		nic_number TEXT,
		mobile_number TEXT,
		email TEXT,
		address_line1 TEXT,
		address_line2 TEXT,
		city TEXT,
		district TEXT,
		province TEXT,
		date_of_birth DATETIME,
		monthly_income TEXT,
		monthly_expenses TEXT,
		has_existing_loans BOOLEAN NOT NULL DEFAULT 0,
		existing_loan_info TEXT,
		extra_data TEXT DEFAULT '{}',
		submitted_at DATETIME,
		staff_approved_at DATETIME,
		staff_approved_by_id TEXT,
		approved_at DATETIME,
		created_by_id TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE loan_application_documents (
		id TEXT PRIMARY KEY,
		loan_application_id TEXT NOT NULL,
		document_type TEXT NOT NULL,
		file_path TEXT NOT NULL,
		uploaded_at DATETIME
	);`)
}
