package http

import (
	"log/slog"
	"net/http"

	"hoso/internal/core"
)

// handleStats renders the statistics partial: revenue, cost and profit
// totals plus the per-category profit breakdown.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	stats := core.Summarize(s.records.List())

	type categoryRow struct {
		Name   string
		Profit string
		Share  int
	}
	data := struct {
		TotalRevenue    string
		TotalCosts      string
		TotalProfit     string
		ProcessingCount int
		Categories      []categoryRow
	}{
		TotalRevenue:    formatDong(stats.TotalRevenue),
		TotalCosts:      formatDong(stats.TotalCosts),
		TotalProfit:     formatDong(stats.TotalProfit),
		ProcessingCount: stats.ProcessingCount,
	}
	for _, c := range core.Categories() {
		data.Categories = append(data.Categories, categoryRow{
			Name:   string(c),
			Profit: formatDong(stats.ProfitByCategory[c]),
			Share:  stats.Share(c),
		})
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="stats"><div class="placeholder">Lợi nhuận: ` + data.TotalProfit + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "stats.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Stats template execution failed", "error", err, "template", "stats.html")
		_, _ = w.Write([]byte(`<section id="stats"><div class="placeholder">Lỗi hiển thị thống kê</div></section>`))
	}
}

// handleExport asks the report worker to rewrite the spreadsheet report.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}

	s.records.RequestExport(r.Context())

	NewHTMXResponse().
		TriggerNotification(NotificationInfo, "Đang xuất báo cáo...", 3000).
		BodyHTML(`<div class="success">Đã gửi yêu cầu xuất báo cáo</div>`).
		Write(w)
}
