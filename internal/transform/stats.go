package transform

// maxExamples caps how many rejection examples a stats value retains.
const maxExamples = 5

// Stats carries per-request extraction bookkeeping. Values are local to
// a single call chain and returned as part of the result, so concurrent
// uploads cannot observe each other.
type Stats struct {
	RowsSeen       int
	RowsAccepted   int
	RowsRejected   int
	RulesMatched   int
	RulesUnmatched int

	rejectionExamples []string
}

// RecordAccepted notes a row that produced a valid transaction.
func (s *Stats) RecordAccepted() {
	s.RowsSeen++
	s.RowsAccepted++
}

// RecordRejected notes a dropped row, keeping a few examples for
// diagnostics.
func (s *Stats) RecordRejected(example string) {
	s.RowsSeen++
	s.RowsRejected++
	if example != "" && len(s.rejectionExamples) < maxExamples {
		s.rejectionExamples = append(s.rejectionExamples, example)
	}
}

// RejectionExamples returns a copy of the retained examples.
func (s *Stats) RejectionExamples() []string {
	return append([]string(nil), s.rejectionExamples...)
}

// Merge folds other into s (used when a strategy accumulates per-page
// stats before returning).
func (s *Stats) Merge(other Stats) {
	s.RowsSeen += other.RowsSeen
	s.RowsAccepted += other.RowsAccepted
	s.RowsRejected += other.RowsRejected
	s.RulesMatched += other.RulesMatched
	s.RulesUnmatched += other.RulesUnmatched
	for _, ex := range other.rejectionExamples {
		if len(s.rejectionExamples) >= maxExamples {
			break
		}
		s.rejectionExamples = append(s.rejectionExamples, ex)
	}
}
