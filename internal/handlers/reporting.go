package handlers

import (
	"context"
	"net/http"
	"strings"

	"taskBoard/internal/handlers/dto"
	"taskBoard/internal/pages"
)

const defaultReportRange = "last-month"

func (h *Handler) LoadReport() http.HandlerFunc {
	return serve(h, "load_report", func(ctx context.Context, p *pages.Reporting, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		var req dto.ReportRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		rng := strings.TrimSpace(req.Range)
		if rng == "" {
			rng = defaultReportRange
		}
		return p.Load(ctx, rng)
	})
}

func (h *Handler) ExportReport() http.HandlerFunc {
	return serve(h, "export_report", func(ctx context.Context, p *pages.Reporting, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		return p.Export()
	})
}

func (h *Handler) CalendarEvents() http.HandlerFunc {
	return serve(h, "calendar_events", func(ctx context.Context, p *pages.Calendar, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		return p.Events(ctx)
	})
}
