package types

import "time"

// ReportDateLayout is the date format of report lines.
const ReportDateLayout = "2006-01-02"

// ReportLine is one product's sales on one day.
type ReportLine struct {
	LineID   string    `json:"line_id" yaml:"line_id"`
	Date     time.Time `json:"date" yaml:"date"`
	Product  string    `json:"product" yaml:"product"`
	Category string    `json:"category" yaml:"category"`
	Quantity int       `json:"quantity" yaml:"quantity"`
	Revenue  float64   `json:"revenue" yaml:"revenue"`
	Profit   float64   `json:"profit" yaml:"profit"`
}

// Validate checks the fields required to persist the line.
func (r *ReportLine) Validate() error {
	if r.Product == "" {
		return ErrInvalidName
	}
	if r.Quantity < 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// ReportSummary holds the totals of a set of report lines.
type ReportSummary struct {
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Profit   float64 `json:"profit"`
}

// SummarizeReport totals quantity, revenue and profit over lines.
func SummarizeReport(lines []*ReportLine) ReportSummary {
	var s ReportSummary
	for _, l := range lines {
		s.Quantity += l.Quantity
		s.Revenue += l.Revenue
		s.Profit += l.Profit
	}
	return s
}
