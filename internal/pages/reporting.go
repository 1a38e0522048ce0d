package pages

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"taskBoard/internal/backend"
	"taskBoard/internal/models/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Charts - ряды двух графиков отчёта. Пара, загрузка которой не удалась, остаётся пустой.
type Charts struct {
	Range            string         `json:"range"`
	TasksPerMonth    *report.Series `json:"tasksPerMonth,omitempty"`
	RevenuePerMonth  *report.Series `json:"revenuePerMonth,omitempty"`
	TasksPerClient   *report.Series `json:"tasksPerClient,omitempty"`
	RevenuePerClient *report.Series `json:"revenuePerClient,omitempty"`
}

// Reporting - страница отчётов.
type Reporting struct {
	env *Env

	mu   sync.Mutex
	last *Charts
}

func NewReporting(env *Env) *Reporting {
	return &Reporting{env: env}
}

// pair загружает два ряда одного графика; отказ любого из них - отказ графика.
func (p *Reporting) pair(ctx context.Context, rng, tasksName, revenueName string) (tasks, revenue *report.Series, err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = p.env.API.ReportSeries(ctx, tasksName, rng)
		return err
	})
	g.Go(func() error {
		var err error
		revenue, err = p.env.API.ReportSeries(ctx, revenueName, rng)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return tasks, revenue, nil
}

// Load загружает оба графика за период rng. Графики грузятся независимо.
func (p *Reporting) Load(ctx context.Context, rng string) (*Result, error) {
	charts := &Charts{Range: rng}
	var monthErr, clientErr error

	var g errgroup.Group
	g.Go(func() error {
		charts.TasksPerMonth, charts.RevenuePerMonth, monthErr =
			p.pair(ctx, rng, backend.ReportTasksPerMonth, backend.ReportRevenuePerMonth)
		return nil
	})
	g.Go(func() error {
		charts.TasksPerClient, charts.RevenuePerClient, clientErr =
			p.pair(ctx, rng, backend.ReportTasksPerClient, backend.ReportRevenuePerClient)
		return nil
	})
	_ = g.Wait()

	res := newResult()
	for _, err := range []error{monthErr, clientErr} {
		if err != nil {
			failed := p.env.fail(backend.OpReport, err)
			res.Failed = true
			res.Reload = res.Reload || failed.Reload
		}
	}
	if monthErr == nil || clientErr == nil {
		p.mu.Lock()
		p.last = charts
		p.mu.Unlock()
	}
	res.Data = charts
	return res, nil
}

// ErrNoReport - выгрузка до первой загрузки отчёта.
var ErrNoReport = errors.New("отчёт ещё не загружен")

// Export выгружает последний загруженный отчёт в xlsx, по листу на ряд.
func (p *Reporting) Export() (*Result, error) {
	p.mu.Lock()
	charts := p.last
	p.mu.Unlock()
	if charts == nil {
		return nil, ErrNoReport
	}
	content, err := workbook(charts)
	if err != nil {
		return nil, err
	}
	res := newResult()
	res.Download = &backend.Invoice{
		Filename:    "report_" + charts.Range + ".xlsx",
		ContentType: xlsxContentType,
		Content:     content,
	}
	return res, nil
}

func workbook(c *Charts) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name   string
		series *report.Series
	}{
		{backend.ReportTasksPerMonth, c.TasksPerMonth},
		{backend.ReportRevenuePerMonth, c.RevenuePerMonth},
		{backend.ReportTasksPerClient, c.TasksPerClient},
		{backend.ReportRevenuePerClient, c.RevenuePerClient},
	}
	first := true
	for _, s := range sheets {
		if s.series == nil {
			continue
		}
		if first {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return nil, err
			}
			first = false
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, err
		}
		if err := writeSeries(f, s.name, s.series); err != nil {
			return nil, fmt.Errorf("лист %s: %w", s.name, err)
		}
	}
	if first {
		return nil, ErrNoReport
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSeries(f *excelize.File, sheet string, s *report.Series) error {
	if err := f.SetSheetRow(sheet, "A1", &[]any{"label", "value"}); err != nil {
		return err
	}
	for i, label := range s.Labels {
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &[]any{label, s.Values[i]}); err != nil {
			return err
		}
	}
	return nil
}
