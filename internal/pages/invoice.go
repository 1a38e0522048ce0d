package pages

import (
	"context"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"taskBoard/internal/backend"
	"taskBoard/internal/logger"
)

const lookupWorkers = 4

// InvoiceGroup - выбранные задачи одного клиента.
type InvoiceGroup struct {
	ClientID int64   `json:"clientId"`
	Name     string  `json:"name"`
	TaskIDs  []int64 `json:"taskIds"`
	Email    string  `json:"email,omitempty"`
	CanSend  bool    `json:"canSend"`

	first int
}

// InvoiceChoice - клиентов несколько, браузер показывает список для выбора.
type InvoiceChoice struct {
	Clients []InvoiceGroup `json:"clients"`
}

// groupInvoices раскладывает выбранные задачи по клиентам в порядке первого появления.
// Задачи без клиента и неоплачиваемые пропускаются.
func (d *Dashboard) groupInvoices(selected []int64) []InvoiceGroup {
	byClient := make(map[int64]*InvoiceGroup)
	for i, id := range selected {
		if !d.board.Billable(id) {
			continue
		}
		c, ok := d.board.ClientOf(id)
		if !ok {
			continue
		}
		g, exists := byClient[c.ID]
		if !exists {
			g = &InvoiceGroup{ClientID: c.ID, Name: c.Name, first: i}
			byClient[c.ID] = g
		}
		g.TaskIDs = append(g.TaskIDs, id)
	}
	groups := make([]InvoiceGroup, 0, len(byClient))
	for _, g := range byClient {
		groups = append(groups, *g)
	}
	sortGroups(groups)
	return groups
}

func sortGroups(groups []InvoiceGroup) {
	sort.Slice(groups, func(i, j int) bool { return groups[i].first < groups[j].first })
}

func (d *Dashboard) nothingSelected() *Result {
	d.env.Banners.Error(d.env.text("dashboard.alert.selectBillableTask"), d.env.now())
	res := newResult()
	res.Failed = true
	return res
}

// DownloadInvoice - счёт по выбранным задачам. Один клиент - сразу файл, несколько - выбор клиента.
func (d *Dashboard) DownloadInvoice(ctx context.Context, selected []int64) (*Result, error) {
	if len(selected) == 0 {
		return d.nothingSelected(), nil
	}
	groups := d.groupInvoices(selected)
	switch len(groups) {
	case 0:
		return newResult(), nil
	case 1:
		return d.DownloadClientInvoice(ctx, groups[0].Name, groups[0].TaskIDs)
	}
	res := newResult()
	res.Data = InvoiceChoice{Clients: groups}
	return res, nil
}

func (d *Dashboard) DownloadClientInvoice(ctx context.Context, clientName string, taskIDs []int64) (*Result, error) {
	inv, err := d.env.API.DownloadInvoice(ctx, clientName, taskIDs)
	if err != nil {
		return d.env.fail(backend.OpDownloadInvoice, err), nil
	}
	res := newResult()
	res.Download = inv
	return res, nil
}

// SendInvoice - отправка счёта по выбранным задачам. При нескольких клиентах
// сначала параллельно подтягиваются их адреса; без адреса отправить нельзя.
func (d *Dashboard) SendInvoice(ctx context.Context, selected []int64) (*Result, error) {
	if len(selected) == 0 {
		return d.nothingSelected(), nil
	}
	groups := d.groupInvoices(selected)
	switch len(groups) {
	case 0:
		return newResult(), nil
	case 1:
		return d.SendClientInvoice(ctx, groups[0].ClientID, groups[0].TaskIDs)
	}

	p := pool.NewWithResults[InvoiceGroup]().WithContext(ctx).WithMaxGoroutines(lookupWorkers)
	for _, g := range groups {
		p.Go(func(ctx context.Context) (InvoiceGroup, error) {
			c, err := d.env.API.GetClient(ctx, g.ClientID)
			if err != nil {
				return g, err
			}
			g.Name = c.Name
			g.Email = strings.TrimSpace(c.Email)
			g.CanSend = g.Email != ""
			return g, nil
		})
	}
	found, err := p.Wait()
	if err != nil {
		if f, ok := backend.AsFailure(err); ok && f.Redirected() {
			return d.env.fail(backend.OpFetchClient, err), nil
		}
		logger.Warn("Service: не все клиенты счёта загружены", zap.Error(err))
	}
	sortGroups(found)

	res := newResult()
	res.Data = InvoiceChoice{Clients: found}
	return res, nil
}

func (d *Dashboard) SendClientInvoice(ctx context.Context, clientID int64, taskIDs []int64) (*Result, error) {
	if err := d.env.API.SendInvoice(ctx, clientID, taskIDs); err != nil {
		return d.env.fail(backend.OpSendInvoice, err), nil
	}
	d.env.succeed("invoice.sent")
	return newResult(), nil
}
