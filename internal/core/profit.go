package core

// Profit is the canonical per-record profit: mica fee plus service fee.
// Every view (dashboard, form, statistics) uses this formula.
func Profit(r VehicleRecord) Money {
	return r.MicaFee.Add(r.ServiceFee)
}

// NetMargin is the alternate projection seen on older report surfaces:
// expected revenue minus all fees and costs. It is kept as a named variant
// only; no current view derives totals from it.
func NetMargin(r VehicleRecord) Money {
	costs := r.MicaFee.Add(r.ServiceFee).Add(r.EntryCost).Add(r.WithdrawalCost)
	return r.ExpectedRevenue.Sub(costs)
}

// Stats are aggregate figures over a record collection.
type Stats struct {
	TotalRevenue Money
	TotalCosts   Money // entry + withdrawal costs
	TotalProfit  Money
	// ProfitByCategory always carries all three categories; zero when no
	// record matches, never absent.
	ProfitByCategory map[Category]Money
	ProcessingCount  int // records not yet completed
}

// Summarize computes aggregate statistics over records.
func Summarize(records []VehicleRecord) Stats {
	s := Stats{ProfitByCategory: make(map[Category]Money, 3)}
	for _, c := range Categories() {
		s.ProfitByCategory[c] = Money{}
	}
	for _, r := range records {
		p := Profit(r)
		s.TotalRevenue = s.TotalRevenue.Add(r.ExpectedRevenue)
		s.TotalCosts = s.TotalCosts.Add(r.EntryCost).Add(r.WithdrawalCost)
		s.TotalProfit = s.TotalProfit.Add(p)
		s.ProfitByCategory[r.Category] = s.ProfitByCategory[r.Category].Add(p)
		if r.Status != StatusCompleted {
			s.ProcessingCount++
		}
	}
	return s
}

// Share returns the category's rounded percentage of total profit,
// 0 when total profit is zero.
func (s Stats) Share(c Category) int {
	if s.TotalProfit.Dong == 0 {
		return 0
	}
	p := s.ProfitByCategory[c].Dong
	return int((p*100 + s.TotalProfit.Dong/2) / s.TotalProfit.Dong)
}
