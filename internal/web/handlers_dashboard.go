package web

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/storeadmin/internal/logging"
	"github.com/JonMunkholm/storeadmin/internal/web/templates"
)

// healthTimeout bounds the store ping of the health check.
const healthTimeout = 2 * time.Second

// handleOverview renders the dashboard figures and the latest invoices.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := s.service.Overview(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	latest := make([]templates.LatestRow, len(ov.Latest))
	for i, inv := range ov.Latest {
		latest[i] = templates.LatestRow{
			Name:     inv.Name,
			Email:    inv.Email,
			ImageURL: inv.ImageURL,
			Amount:   formatCurrency(decimal.New(inv.AmountCents, -2)),
		}
	}

	s.render(w, r, http.StatusOK, templates.DashboardPage(templates.DashboardView{
		Page: s.page("Dashboard", "/dashboard"),
		Cards: []templates.Card{
			{Title: "Collected", Value: formatCurrency(decimal.New(ov.PaidCents, -2))},
			{Title: "Pending", Value: formatCurrency(decimal.New(ov.PendingCents, -2))},
			{Title: "Total Invoices", Value: printer.Sprintf("%d", ov.Invoices)},
			{Title: "Total Customers", Value: printer.Sprintf("%d", ov.Customers)},
			{Title: "Total Categories", Value: printer.Sprintf("%d", ov.Categories)},
			{Title: "Total Products", Value: printer.Sprintf("%d", ov.Products)},
		},
		Latest: latest,
	}))
}

// handleHealth reports whether the store is reachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.service.Ping(ctx); err != nil {
		logging.FromContext(ctx).Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
