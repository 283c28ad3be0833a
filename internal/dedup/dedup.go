// Package dedup flags repeated transactions within one statement via
// SHA256 fingerprinting. Overlapping page extraction is the usual
// source of repeats.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/domain"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/transform"
)

// Fingerprint hashes the fields that identify a transaction.
// Format: SHA256("{date}|{amount}|{merchantKey}"). The merchant key
// absorbs casing and spacing differences between repeats.
func Fingerprint(txn *domain.Transaction) string {
	input := fmt.Sprintf("%s|%s|%s",
		txn.Date.Format("2006-01-02"),
		txn.Amount.StringFixed(2),
		transform.MerchantKey(txn.Description))
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])
}

// Duplicate is one transaction that repeats an earlier one.
type Duplicate struct {
	Index       int    // position of the repeat in the statement
	FirstIndex  int    // position of the first occurrence
	Description string // description of the repeat
}

// FindDuplicates reports transactions whose fingerprint was already
// seen earlier in the slice. Legitimate same-day repeat purchases will
// match too, so callers should surface these as warnings, never drop
// them silently.
func FindDuplicates(transactions []domain.Transaction) []Duplicate {
	seen := make(map[string]int)
	var dups []Duplicate
	for i := range transactions {
		fp := Fingerprint(&transactions[i])
		if first, ok := seen[fp]; ok {
			dups = append(dups, Duplicate{
				Index:       i,
				FirstIndex:  first,
				Description: transactions[i].Description,
			})
			continue
		}
		seen[fp] = i
	}
	return dups
}
