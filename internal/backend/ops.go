package backend

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"taskBoard/internal/models/client"
	"taskBoard/internal/models/page"
	"taskBoard/internal/models/report"
	"taskBoard/internal/models/task"
	"taskBoard/internal/models/user"
)

// ColorUpdated - тело успешного ответа на смену цвета.
const ColorUpdated = "success.color.updated"

type TaskQuery struct {
	Search   string
	ClientID string
	Status   string
	Page     int
	Size     int
}

func (q TaskQuery) values() url.Values {
	v := url.Values{}
	v.Set("search", q.Search)
	v.Set("clientId", q.ClientID)
	v.Set("status", q.Status)
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.Size))
	return v
}

type SearchQuery struct {
	Search string
	Page   int
	Size   int
}

func (q SearchQuery) values() url.Values {
	v := url.Values{}
	v.Set("search", q.Search)
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.Size))
	return v
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}

func (c *Client) decodeTask(resp *Response) (*task.Task, error) {
	t, err := task.DecodeTask(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, &Failure{Body: string(resp.Body), Err: err}
	}
	return t, nil
}

func (c *Client) decodeClient(resp *Response) (*client.Client, error) {
	cl, err := client.DecodeClient(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, &Failure{Body: string(resp.Body), Err: err}
	}
	return cl, nil
}

func decodePage[T any](resp *Response, check func(*T) error) (*page.Page[T], error) {
	p, err := page.Decode(bytes.NewReader(resp.Body), check)
	if err != nil {
		return nil, &Failure{Body: string(resp.Body), Err: err}
	}
	return p, nil
}

func (c *Client) SearchTasks(ctx context.Context, q TaskQuery) (*page.Page[task.Task], error) {
	resp, err := c.Submit(ctx, Request{Method: http.MethodGet, Path: "/tasks/search", Query: q.values()})
	if err != nil {
		return nil, err
	}
	return decodePage(resp, (*task.Task).Validate)
}

func (c *Client) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	resp, err := c.Submit(ctx, Request{Method: http.MethodGet, Path: idPath("/dashboard/task/%d", id)})
	if err != nil {
		return nil, err
	}
	return c.decodeTask(resp)
}

func (c *Client) CreateTask(ctx context.Context, form url.Values) (*task.Task, error) {
	resp, err := c.Submit(ctx, Request{Method: http.MethodPost, Path: "/dashboard", Payload: Form(form)})
	if err != nil {
		return nil, err
	}
	return c.decodeTask(resp)
}

func (c *Client) UpdateTask(ctx context.Context, id int64, form url.Values) (*task.Task, error) {
	resp, err := c.Submit(ctx, Request{
		Method:  http.MethodPut,
		Path:    idPath("/dashboard/task/%d", id),
		Payload: Form(form),
	})
	if err != nil {
		return nil, err
	}
	return c.decodeTask(resp)
}

// MoveTask переносит задачу в status; ids - порядок карточек целевой колонки после переноса.
func (c *Client) MoveTask(ctx context.Context, id int64, status task.Status, ids []int64) (*task.Task, error) {
	q := url.Values{}
	q.Set("taskId", strconv.FormatInt(id, 10))
	q.Set("status", string(status))
	if ids == nil {
		ids = []int64{}
	}
	resp, err := c.Submit(ctx, Request{
		Method:  http.MethodPost,
		Path:    "/dashboard/move",
		Query:   q,
		Payload: JSON(ids),
	})
	if err != nil {
		return nil, err
	}
	return c.decodeTask(resp)
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	_, err := c.Submit(ctx, Request{Method: http.MethodDelete, Path: idPath("/dashboard/task/%d", id)})
	return err
}

func (c *Client) HideTask(ctx context.Context, id int64) error {
	_, err := c.Submit(ctx, Request{Method: http.MethodPost, Path: idPath("/dashboard/task/%d/hide", id)})
	return err
}

func (c *Client) UnhideTask(ctx context.Context, id int64) error {
	_, err := c.Submit(ctx, Request{Method: http.MethodPost, Path: idPath("/dashboard/task/%d/unhide", id)})
	return err
}

// ChangeColor возвращает true, только если бэкенд подтвердил смену цвета.
func (c *Client) ChangeColor(ctx context.Context, id int64, color string) (bool, error) {
	resp, err := c.Submit(ctx, Request{
		Method:  http.MethodPost,
		Path:    idPath("/dashboard/color/%d", id),
		Payload: Form(url.Values{"color": {color}}),
	})
	if err != nil {
		return false, err
	}
	return resp.Text() == ColorUpdated, nil
}

func (c *Client) SearchClients(ctx context.Context, q SearchQuery) (*page.Page[client.Client], error) {
	resp, err := c.Submit(ctx, Request{Method: http.MethodGet, Path: "/clients/search", Query: q.values()})
	if err != nil {
		return nil, err
	}
	return decodePage(resp, (*client.Client).Validate)
}

func (c *Client) GetClient(ctx context.Context, id int64) (*client.Client, error) {
	resp, err := c.Submit(ctx, Request{Method: http.MethodGet, Path: idPath("/clients/%d", id)})
	if err != nil {
		return nil, err
	}
	return c.decodeClient(resp)
}

func (c *Client) CreateClient(ctx context.Context, form url.Values) (*client.Client, error) {
	resp, err := c.Submit(ctx, Request{Method: http.MethodPost, Path: "/clients", Payload: Multipart(form)})
	if err != nil {
		return nil, err
	}
	return c.decodeClient(resp)
}

func (c *Client) UpdateClient(ctx context.Context, id int64, form url.Values) (*client.Client, error) {
	resp, err := c.Submit(ctx, Request{
		Method:  http.MethodPut,
		Path:    idPath("/clients/%d", id),
		Payload: Multipart(form),
	})
	if err != nil {
		return nil, err
	}
	return c.decodeClient(resp)
}

func (c *Client) DeleteClient(ctx context.Context, id int64) error {
	_, err := c.Submit(ctx, Request{Method: http.MethodDelete, Path: idPath("/clients/%d", id)})
	return err
}

func taskIDValues(ids []int64) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.FormatInt(id, 10)
	}
	return out
}

func (c *Client) SendInvoice(ctx context.Context, clientID int64, taskIDs []int64) error {
	form := url.Values{
		"clientId": {strconv.FormatInt(clientID, 10)},
		"taskIds":  taskIDValues(taskIDs),
	}
	_, err := c.Submit(ctx, Request{Method: http.MethodPost, Path: "/invoice/send", Payload: Form(form)})
	return err
}

// Invoice - PDF счёта с именем файла для сохранения.
type Invoice struct {
	Filename    string
	ContentType string
	Content     []byte
}

func InvoiceFilename(clientName string) string {
	return "invoice_" + clientName + ".pdf"
}

func (c *Client) DownloadInvoice(ctx context.Context, clientName string, taskIDs []int64) (*Invoice, error) {
	resp, err := c.Submit(ctx, Request{
		Method:  http.MethodPost,
		Path:    "/invoice",
		Payload: Multipart(url.Values{"taskIds": taskIDValues(taskIDs)}),
	})
	if err != nil {
		return nil, err
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/pdf"
	}
	return &Invoice{Filename: InvoiceFilename(clientName), ContentType: ct, Content: resp.Body}, nil
}

func (c *Client) UpdateProfile(ctx context.Context, form url.Values) (*user.Profile, error) {
	resp, err := c.Submit(ctx, Request{Method: http.MethodPost, Path: "/profile", Payload: Multipart(form)})
	if err != nil {
		return nil, err
	}
	var p user.Profile
	if err := resp.Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateAdminProfile(ctx context.Context, username string, form url.Values) (*user.Profile, error) {
	return c.adminAction(ctx, "/admin/profile/"+url.PathEscape(username), form)
}

// adminAction - действие администратора над пользователем; в ответе обновлённый профиль.
func (c *Client) adminAction(ctx context.Context, path string, form url.Values) (*user.Profile, error) {
	resp, err := c.Submit(ctx, Request{Method: http.MethodPost, Path: path, Payload: Form(form)})
	if err != nil {
		return nil, err
	}
	var p user.Profile
	if err := resp.Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpgradeUser(ctx context.Context, username string, months int) (*user.Profile, error) {
	return c.adminAction(ctx, "/admin/upgrade", url.Values{
		"username": {username},
		"months":   {strconv.Itoa(months)},
	})
}

func (c *Client) DowngradeUser(ctx context.Context, username string) (*user.Profile, error) {
	return c.adminAction(ctx, "/admin/downgrade", url.Values{"username": {username}})
}

// ResetUserPassword выдаёт пользователю ссылку сброса пароля.
func (c *Client) ResetUserPassword(ctx context.Context, username string) (*user.Profile, error) {
	return c.adminAction(ctx, "/admin/reset-password", url.Values{"username": {username}})
}

func (c *Client) ToggleUserBlock(ctx context.Context, username string) (*user.Profile, error) {
	return c.adminAction(ctx, "/admin/toggle-block", url.Values{"username": {username}})
}

func (c *Client) ChangeLanguage(ctx context.Context, lang string) error {
	_, err := c.Submit(ctx, Request{
		Method:  http.MethodPost,
		Path:    "/profile/language",
		Payload: Form(url.Values{"language": {lang}}),
	})
	return err
}

func (c *Client) ChangeCurrency(ctx context.Context, code string) error {
	_, err := c.Submit(ctx, Request{
		Method:  http.MethodPost,
		Path:    "/profile/currency",
		Payload: Form(url.Values{"currency": {code}}),
	})
	return err
}

func (c *Client) SearchUsers(ctx context.Context, q SearchQuery) (*page.Page[user.User], error) {
	resp, err := c.Submit(ctx, Request{Method: http.MethodGet, Path: "/admin/search", Query: q.values()})
	if err != nil {
		return nil, err
	}
	return decodePage[user.User](resp, nil)
}

// Имена отчётов под /reporting/.
const (
	ReportTasksPerMonth    = "tasks-per-month"
	ReportRevenuePerMonth  = "revenue-per-month"
	ReportTasksPerClient   = "tasks-per-client"
	ReportRevenuePerClient = "revenue-per-client"
)

func (c *Client) ReportSeries(ctx context.Context, name, rng string) (*report.Series, error) {
	resp, err := c.Submit(ctx, Request{
		Method: http.MethodGet,
		Path:   "/reporting/" + name,
		Query:  url.Values{"range": {rng}},
	})
	if err != nil {
		return nil, err
	}
	s, err := report.Decode(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, &Failure{Body: string(resp.Body), Err: err}
	}
	return s, nil
}

// Ping проверяет, что бэкенд отвечает; редирект тоже считается ответом.
func (c *Client) Ping(ctx context.Context, path string) error {
	_, err := c.Submit(ctx, Request{Method: http.MethodGet, Path: path})
	if f, ok := AsFailure(err); ok && f.StatusCode > 0 && f.StatusCode < http.StatusInternalServerError {
		return nil
	}
	return err
}
