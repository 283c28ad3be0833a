package validate

import (
	"fmt"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/domain"
)

// highRejectionRate is the fraction of seen rows above which a
// statement's extraction quality gets flagged.
const highRejectionRate = 0.5

// ValidationResult contains all validation errors and warnings for an
// analyzed statement
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// ValidationError represents a validation error
type ValidationError struct {
	Entity  string // "statement", "transaction", "provenance"
	ID      string
	Field   string
	Value   string
	Message string
}

// ValidationWarning represents a non-critical validation issue
type ValidationWarning struct {
	Entity  string
	ID      string
	Field   string
	Value   string
	Message string
}

// IsValid reports whether no errors were found. Warnings do not affect
// validity.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// ValidateStatement checks an analyzed statement's internal consistency:
// entity constraints on each transaction, provenance arithmetic, and
// extraction-quality warnings.
func ValidateStatement(stmt *domain.Statement) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationWarning{},
	}

	if stmt.ID == "" {
		result.Errors = append(result.Errors, ValidationError{
			Entity:  "statement",
			ID:      stmt.ID,
			Field:   "ID",
			Value:   "",
			Message: "statement ID cannot be empty",
		})
	}

	for i, txn := range stmt.Transactions {
		id := fmt.Sprintf("%s/%d", stmt.ID, i)

		if txn.Date.IsZero() {
			result.Errors = append(result.Errors, ValidationError{
				Entity:  "transaction",
				ID:      id,
				Field:   "Date",
				Value:   "",
				Message: "transaction date cannot be zero",
			})
		}
		if txn.Description == "" {
			result.Errors = append(result.Errors, ValidationError{
				Entity:  "transaction",
				ID:      id,
				Field:   "Description",
				Value:   "",
				Message: "transaction description cannot be empty",
			})
		}
		if !domain.ValidateCategory(txn.Category) {
			result.Errors = append(result.Errors, ValidationError{
				Entity:  "transaction",
				ID:      id,
				Field:   "Category",
				Value:   string(txn.Category),
				Message: fmt.Sprintf("invalid category: %s", txn.Category),
			})
		}
		if txn.Amount.IsZero() {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Entity:  "transaction",
				ID:      id,
				Field:   "Amount",
				Value:   "0",
				Message: "transaction amount is zero",
			})
		}
	}

	validateProvenance(stmt, result)
	return result
}

func validateProvenance(stmt *domain.Statement, result *ValidationResult) {
	p := stmt.Provenance

	if p.Strategy == "" {
		result.Errors = append(result.Errors, ValidationError{
			Entity:  "provenance",
			ID:      stmt.ID,
			Field:   "Strategy",
			Value:   "",
			Message: "provenance strategy cannot be empty",
		})
	}
	if p.RowsSeen != p.RowsAccepted+p.RowsRejected {
		result.Errors = append(result.Errors, ValidationError{
			Entity:  "provenance",
			ID:      stmt.ID,
			Field:   "RowsSeen",
			Value:   fmt.Sprintf("%d", p.RowsSeen),
			Message: fmt.Sprintf("rows seen %d does not equal accepted %d plus rejected %d", p.RowsSeen, p.RowsAccepted, p.RowsRejected),
		})
	}
	if p.RowsAccepted != len(stmt.Transactions) {
		result.Errors = append(result.Errors, ValidationError{
			Entity:  "provenance",
			ID:      stmt.ID,
			Field:   "RowsAccepted",
			Value:   fmt.Sprintf("%d", p.RowsAccepted),
			Message: fmt.Sprintf("accepted count %d does not match %d transactions", p.RowsAccepted, len(stmt.Transactions)),
		})
	}

	if p.RowsSeen > 0 && p.RejectionRate() > highRejectionRate {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Entity:  "provenance",
			ID:      stmt.ID,
			Field:   "RowsRejected",
			Value:   fmt.Sprintf("%d", p.RowsRejected),
			Message: fmt.Sprintf("%d of %d rows were rejected; extraction quality is suspect", p.RowsRejected, p.RowsSeen),
		})
	}
}
