// Package billing derives internet-month totals from the base plan and
// purchased addons. Totals are computed on read, never stored.
package billing

import "github.com/hward/assetdesk/internal/models"

// MonthSummary is an InternetMonth with derived totals attached.
type MonthSummary struct {
	models.InternetMonth
	AddonsTotalGB   float64 `json:"addonsTotalGB"`
	AddonsTotalCost float64 `json:"addonsTotalCost"`
	TotalGB         float64 `json:"totalGB"`
	TotalCost       float64 `json:"totalCost"`
	ExtraGB         float64 `json:"extraGB"` // usage beyond the total purchased volume
}

// Summarize computes derived totals for one month.
func Summarize(m models.InternetMonth) MonthSummary {
	s := MonthSummary{InternetMonth: m}
	for _, a := range m.Addons {
		s.AddonsTotalGB += a.GB
		s.AddonsTotalCost += a.Cost
	}
	s.TotalGB = m.BasePlanGB + s.AddonsTotalGB
	s.TotalCost = m.BaseCost + s.AddonsTotalCost
	if over := m.TotalUsedGB - s.TotalGB; over > 0 {
		s.ExtraGB = over
	}
	return s
}

// SummarizeAll computes derived totals for a list of months.
func SummarizeAll(months []models.InternetMonth) []MonthSummary {
	out := make([]MonthSummary, 0, len(months))
	for _, m := range months {
		out = append(out, Summarize(m))
	}
	return out
}
