package validate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/domain"
)

func validStatement(t *testing.T) *domain.Statement {
	t.Helper()
	txn, err := domain.NewTransaction(
		time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
		"SWIGGY ORDER",
		decimal.RequireFromString("-350.00"),
		domain.CategoryFood,
	)
	if err != nil {
		t.Fatalf("NewTransaction() error = %v", err)
	}
	stmt, err := domain.NewStatement("stmt-1", []domain.Transaction{*txn}, domain.Provenance{
		Strategy:     "tabular",
		RowsSeen:     1,
		RowsAccepted: 1,
	})
	if err != nil {
		t.Fatalf("NewStatement() error = %v", err)
	}
	return stmt
}

func TestValidateStatementValid(t *testing.T) {
	result := ValidateStatement(validStatement(t))
	if !result.IsValid() {
		t.Errorf("expected valid statement, got errors: %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got: %v", result.Warnings)
	}
}

func TestValidateStatementEmptyID(t *testing.T) {
	stmt := validStatement(t)
	stmt.ID = ""

	result := ValidateStatement(stmt)
	if result.IsValid() {
		t.Fatal("expected errors for empty statement ID")
	}
	if result.Errors[0].Field != "ID" {
		t.Errorf("error field = %q, want ID", result.Errors[0].Field)
	}
}

func TestValidateStatementBadCategory(t *testing.T) {
	stmt := validStatement(t)
	stmt.Transactions[0].Category = "snacks"

	result := ValidateStatement(stmt)
	if result.IsValid() {
		t.Fatal("expected errors for invalid category")
	}
	found := false
	for _, e := range result.Errors {
		if e.Entity == "transaction" && e.Field == "Category" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing category error, got: %v", result.Errors)
	}
}

func TestValidateProvenanceArithmetic(t *testing.T) {
	stmt := validStatement(t)
	stmt.Provenance.RowsSeen = 5

	result := ValidateStatement(stmt)
	if result.IsValid() {
		t.Fatal("expected errors for inconsistent provenance")
	}
	if result.Errors[0].Entity != "provenance" {
		t.Errorf("error entity = %q, want provenance", result.Errors[0].Entity)
	}
}

func TestValidateProvenanceAcceptedMismatch(t *testing.T) {
	stmt := validStatement(t)
	stmt.Transactions = nil

	result := ValidateStatement(stmt)
	if result.IsValid() {
		t.Fatal("expected errors when accepted count disagrees with transactions")
	}
}

func TestValidateHighRejectionWarning(t *testing.T) {
	stmt := validStatement(t)
	stmt.Provenance.RowsSeen = 10
	stmt.Provenance.RowsRejected = 9

	result := ValidateStatement(stmt)
	if !result.IsValid() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(result.Warnings))
	}
	if result.Warnings[0].Field != "RowsRejected" {
		t.Errorf("warning field = %q, want RowsRejected", result.Warnings[0].Field)
	}
}

func TestValidateZeroAmountWarning(t *testing.T) {
	stmt := validStatement(t)
	stmt.Transactions[0].Amount = decimal.Zero

	result := ValidateStatement(stmt)
	if !result.IsValid() {
		t.Fatalf("zero amount should warn, not error: %v", result.Errors)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %d", len(result.Warnings))
	}
}
