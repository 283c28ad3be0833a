package dedup

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/domain"
)

func txn(t *testing.T, date, description, amount string) domain.Transaction {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	v, err := domain.NewTransaction(d, description, decimal.RequireFromString(amount), domain.CategoryOther)
	if err != nil {
		t.Fatalf("NewTransaction() error = %v", err)
	}
	return *v
}

func TestFingerprintStable(t *testing.T) {
	a := txn(t, "2023-02-01", "SWIGGY ORDER", "-350.00")
	b := txn(t, "2023-02-01", "swiggy  order", "-350.00")

	if Fingerprint(&a) != Fingerprint(&b) {
		t.Error("fingerprints should ignore casing and spacing")
	}
}

func TestFingerprintDistinguishes(t *testing.T) {
	a := txn(t, "2023-02-01", "SWIGGY ORDER", "-350.00")
	b := txn(t, "2023-02-02", "SWIGGY ORDER", "-350.00")
	c := txn(t, "2023-02-01", "SWIGGY ORDER", "-351.00")

	if Fingerprint(&a) == Fingerprint(&b) {
		t.Error("different dates should produce different fingerprints")
	}
	if Fingerprint(&a) == Fingerprint(&c) {
		t.Error("different amounts should produce different fingerprints")
	}
}

func TestFindDuplicates(t *testing.T) {
	txns := []domain.Transaction{
		txn(t, "2023-02-01", "SWIGGY ORDER", "-350.00"),
		txn(t, "2023-02-02", "UBER RIDE", "-250.00"),
		txn(t, "2023-02-01", "SWIGGY ORDER", "-350.00"),
	}

	dups := FindDuplicates(txns)
	if len(dups) != 1 {
		t.Fatalf("FindDuplicates() found %d, want 1", len(dups))
	}
	if dups[0].Index != 2 || dups[0].FirstIndex != 0 {
		t.Errorf("duplicate = %+v, want index 2 repeating 0", dups[0])
	}
}

func TestFindDuplicatesNone(t *testing.T) {
	txns := []domain.Transaction{
		txn(t, "2023-02-01", "SWIGGY ORDER", "-350.00"),
		txn(t, "2023-02-02", "UBER RIDE", "-250.00"),
	}
	if dups := FindDuplicates(txns); dups != nil {
		t.Errorf("FindDuplicates() = %v, want none", dups)
	}
}
