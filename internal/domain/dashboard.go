package domain

// ExpiryBucket identifies an SKT window relative to today.
type ExpiryBucket string

const (
	ExpiryOverdue       ExpiryBucket = "overdue"
	ExpiryWithin3Months ExpiryBucket = "within_3_months"
	Expiry3To6Months    ExpiryBucket = "3_to_6_months"
	ExpiryOver6Months   ExpiryBucket = "over_6_months"
)

// ExpiryBuckets lists the buckets from most to least urgent.
func ExpiryBuckets() []ExpiryBucket {
	return []ExpiryBucket{ExpiryOverdue, ExpiryWithin3Months, Expiry3To6Months, ExpiryOver6Months}
}

// ExpiryItem is one product inside an expiry bucket.
type ExpiryItem struct {
	Name       string  `json:"name"`
	ExpiryDate string  `json:"expiry_date"`
	TotalUnits float64 `json:"total_units"`
}

// ExpiryBucketReport holds the products of one bucket and its share of total stock.
type ExpiryBucketReport struct {
	Bucket     ExpiryBucket `json:"bucket"`
	Items      []ExpiryItem `json:"items"`
	TotalUnits float64      `json:"total_units"`
	Percent    float64      `json:"percent"`
}

// ExpiryReport is the full four-window categorization.
type ExpiryReport struct {
	Overdue       ExpiryBucketReport `json:"overdue"`
	Within3Months ExpiryBucketReport `json:"within_3_months"`
	Between3And6  ExpiryBucketReport `json:"between_3_and_6_months"`
	Over6Months   ExpiryBucketReport `json:"over_6_months"`
	StockTotal    float64            `json:"stock_total"`
}

// ExpiryDashboard is the reduced view shown on the overview page.
type ExpiryDashboard struct {
	Overdue       ExpiryBucketReport `json:"overdue"`
	Within3Months ExpiryBucketReport `json:"within_3_months"`
	StockTotal    float64            `json:"stock_total"`
}

// Dashboard projects the report onto the two urgent buckets.
func (r ExpiryReport) Dashboard() ExpiryDashboard {
	return ExpiryDashboard{
		Overdue:       r.Overdue,
		Within3Months: r.Within3Months,
		StockTotal:    r.StockTotal,
	}
}

// Bucket returns the report of b.
func (r ExpiryReport) Bucket(b ExpiryBucket) ExpiryBucketReport {
	switch b {
	case ExpiryOverdue:
		return r.Overdue
	case ExpiryWithin3Months:
		return r.Within3Months
	case Expiry3To6Months:
		return r.Between3And6
	default:
		return r.Over6Months
	}
}

// EntityRow is one line of an entity table.
type EntityRow struct {
	Name           string        `json:"name"`
	TotalUnits     float64       `json:"total_units"`
	MonthlyAverage float64       `json:"monthly_average"`
	MonthlySeries  MonthlySeries `json:"monthly_series"`
}

// MonthlyTotal is the units of one month summed over a collection.
type MonthlyTotal = MonthlyPoint

// Preview summarizes the top entities of one collection.
type Preview struct {
	EntityType    EntityType     `json:"entity_type"`
	Top           []EntityRow    `json:"top"`
	MonthlyTotals []MonthlyTotal `json:"monthly_totals"`
	GrandTotal    float64        `json:"grand_total"`
	Count         int            `json:"count"`
}

// PeriodEntry is the sales of one product over a period.
type PeriodEntry struct {
	Name  string  `json:"name"`
	Sales float64 `json:"sales"`
}

// StockLevel is the estimated remaining stock of one product.
type StockLevel struct {
	Name      string  `json:"name"`
	Sales     float64 `json:"sales"`
	Remaining float64 `json:"remaining"`
}
