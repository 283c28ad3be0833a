// Package summary aggregates extracted transactions into the figures
// shown to the user: totals, category breakdown, top merchants, and a
// spend time series.
package summary

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/domain"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/transform"
)

// DefaultTopMerchants is how many merchants the breakdown keeps when the
// caller does not say.
const DefaultTopMerchants = 5

// Granularity is the bucket width of the spend series, chosen from the
// statement's date range.
type Granularity string

const (
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
	GranularityYearly  Granularity = "yearly"
)

// Date-range thresholds for picking the series granularity, in days.
const (
	weeklyMaxDays  = 60
	monthlyMaxDays = 400
)

// MerchantTotal is one merchant's aggregated debit amount. Name is the
// first-seen original description for the merchant's normalized key.
type MerchantTotal struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

// TimePoint is one bucket of the spend series. Total is the debit sum
// for the bucket, as a positive magnitude.
type TimePoint struct {
	Bucket string          `json:"bucket"`
	Total  decimal.Decimal `json:"total"`
}

// Summary is the aggregate view of one statement.
type Summary struct {
	TotalDebit     decimal.Decimal                    `json:"totalDebit"`
	TotalCredit    decimal.Decimal                    `json:"totalCredit"`
	Net            decimal.Decimal                    `json:"net"`
	CategoryTotals map[domain.Category]decimal.Decimal `json:"categoryTotals"`
	TopMerchants   []MerchantTotal                    `json:"topMerchants"`
	Series         []TimePoint                        `json:"series"`
	Granularity    Granularity                        `json:"granularity"`
}

// Build aggregates transactions. Debit figures are reported as positive
// magnitudes; Net keeps its sign (credits minus debits). topN caps the
// merchant breakdown, with values below 1 falling back to the default.
func Build(transactions []domain.Transaction, topN int) *Summary {
	if topN < 1 {
		topN = DefaultTopMerchants
	}

	s := &Summary{
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
		Net:            decimal.Zero,
		CategoryTotals: make(map[domain.Category]decimal.Decimal),
	}
	if len(transactions) == 0 {
		return s
	}

	type merchantAgg struct {
		name  string
		total decimal.Decimal
	}
	merchants := make(map[string]*merchantAgg)

	for _, txn := range transactions {
		s.Net = s.Net.Add(txn.Amount)
		if !txn.IsDebit() {
			s.TotalCredit = s.TotalCredit.Add(txn.Amount)
			continue
		}

		magnitude := txn.Amount.Abs()
		s.TotalDebit = s.TotalDebit.Add(magnitude)
		s.CategoryTotals[txn.Category] = s.CategoryTotals[txn.Category].Add(magnitude)

		key := transform.MerchantKey(txn.Description)
		if key == "" {
			continue
		}
		agg, ok := merchants[key]
		if !ok {
			agg = &merchantAgg{name: txn.Description}
			merchants[key] = agg
		}
		agg.total = agg.total.Add(magnitude)
	}

	ranked := make([]MerchantTotal, 0, len(merchants))
	for _, agg := range merchants {
		ranked = append(ranked, MerchantTotal{Name: agg.name, Total: agg.total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Total.Equal(ranked[j].Total) {
			return ranked[i].Total.GreaterThan(ranked[j].Total)
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	s.TopMerchants = ranked

	s.Granularity, s.Series = buildSeries(transactions)
	return s
}

// buildSeries buckets debit magnitudes over the statement's date range.
// Gap buckets inside the range are emitted with a zero total so charts
// do not silently skip quiet periods.
func buildSeries(transactions []domain.Transaction) (Granularity, []TimePoint) {
	earliest, latest := dateRange(transactions)
	granularity := pickGranularity(earliest, latest)

	totals := make(map[string]decimal.Decimal)
	for _, txn := range transactions {
		if !txn.IsDebit() {
			continue
		}
		b := bucketOf(txn.Date, granularity)
		totals[b] = totals[b].Add(txn.Amount.Abs())
	}

	var series []TimePoint
	for cursor := earliest; !cursor.After(latest); cursor = advance(cursor, granularity) {
		b := bucketOf(cursor, granularity)
		if len(series) > 0 && series[len(series)-1].Bucket == b {
			continue
		}
		total, ok := totals[b]
		if !ok {
			total = decimal.Zero
		}
		series = append(series, TimePoint{Bucket: b, Total: total})
	}
	return granularity, series
}

func dateRange(transactions []domain.Transaction) (time.Time, time.Time) {
	earliest, latest := transactions[0].Date, transactions[0].Date
	for _, txn := range transactions[1:] {
		if txn.Date.Before(earliest) {
			earliest = txn.Date
		}
		if txn.Date.After(latest) {
			latest = txn.Date
		}
	}
	return earliest, latest
}

func pickGranularity(earliest, latest time.Time) Granularity {
	days := int(latest.Sub(earliest).Hours() / 24)
	switch {
	case days <= weeklyMaxDays:
		return GranularityWeekly
	case days <= monthlyMaxDays:
		return GranularityMonthly
	default:
		return GranularityYearly
	}
}

func bucketOf(t time.Time, g Granularity) string {
	switch g {
	case GranularityWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case GranularityMonthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006")
	}
}

// advance steps the cursor to the start of the next bucket. Weekly
// steps pin to the ISO week's Monday before adding seven days, and
// monthly and yearly steps pin day one, so the cursor never overshoots
// a bucket that the latest transaction still falls into.
func advance(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityWeekly:
		return mondayOf(t).AddDate(0, 0, 7)
	case GranularityMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	default:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC).AddDate(1, 0, 0)
	}
}

// mondayOf returns the Monday starting t's ISO week.
func mondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
