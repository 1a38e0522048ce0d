package pages

import (
	"context"
	"net/url"
	"strconv"

	"taskBoard/internal/backend"
	"taskBoard/internal/models/client"
	"taskBoard/internal/models/page"
	"taskBoard/internal/render"
	"taskBoard/internal/validate"
)

// ClientFilter - параметры поиска на странице клиентов.
type ClientFilter struct {
	Search string
	Size   int
}

type Clients struct {
	env   *Env
	table *table[client.Client, ClientFilter]
}

func NewClients(env *Env) *Clients {
	fetch := func(ctx context.Context, f ClientFilter, pageNumber, size int) (*page.Page[client.Client], error) {
		if f.Size > 0 {
			size = f.Size
		}
		return env.API.SearchClients(ctx, backend.SearchQuery{Search: f.Search, Page: pageNumber, Size: size})
	}
	return &Clients{
		env:   env,
		table: newTable(env, "search:clients", render.ClientsView, backend.OpSearchClients, env.Render.ClientRow, fetch),
	}
}

func (p *Clients) Search(ctx context.Context, f ClientFilter) (*Result, error) {
	return p.table.Search(ctx, f)
}

func (p *Clients) Page(ctx context.Context, pageNumber int) (*Result, error) {
	return p.table.Page(ctx, pageNumber)
}

// CreateClient проверяет адрес и телефон и добавляет строку нового клиента.
func (p *Clients) CreateClient(ctx context.Context, form url.Values) (*Result, error) {
	if err := p.env.check(validate.ClientForm, form, nil); err != nil {
		return nil, err
	}
	created, err := p.env.API.CreateClient(ctx, form)
	if err != nil {
		return p.env.fail(backend.OpCreateClient, err), nil
	}
	if err := p.table.Append(*created); err != nil {
		return nil, err
	}
	res, err := p.table.result()
	if err != nil {
		return nil, err
	}
	res.Data = created
	return res, nil
}

// EditForm загружает клиента для формы правки.
func (p *Clients) EditForm(ctx context.Context, id int64) (*Result, error) {
	c, err := p.env.API.GetClient(ctx, id)
	if err != nil {
		return p.env.fail(backend.OpFetchClient, err), nil
	}
	_ = p.env.check(validate.ClientForm, url.Values{"email": {c.Email}, "phone": {c.Phone}}, editField)
	res := newResult()
	res.Data = c
	return res, nil
}

func (p *Clients) UpdateClient(ctx context.Context, id int64, form url.Values) (*Result, error) {
	if err := p.env.check(validate.ClientForm, form, editField); err != nil {
		return nil, err
	}
	updated, err := p.env.API.UpdateClient(ctx, id, form)
	if err != nil {
		return p.env.fail(backend.OpUpdateClient, err), nil
	}
	if _, err := p.table.Patch(strconv.FormatInt(updated.ID, 10), *updated); err != nil {
		return nil, err
	}
	res, err := p.table.result()
	if err != nil {
		return nil, err
	}
	res.Data = updated
	return res, nil
}

// DeleteClient; клиента с задачами бэкенд не удаляет (409).
func (p *Clients) DeleteClient(ctx context.Context, id int64) (*Result, error) {
	if err := p.env.API.DeleteClient(ctx, id); err != nil {
		return p.env.fail(backend.OpDeleteClient, err), nil
	}
	if _, err := p.table.Remove(strconv.FormatInt(id, 10)); err != nil {
		return nil, err
	}
	return p.table.result()
}
