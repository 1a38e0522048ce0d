package pages

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskBoard/internal/backend"
	"taskBoard/internal/dom"
	"taskBoard/internal/i18n"
	"taskBoard/internal/models/client"
	"taskBoard/internal/models/page"
	"taskBoard/internal/models/report"
	"taskBoard/internal/models/task"
	"taskBoard/internal/models/user"
	"taskBoard/internal/notice"
	"taskBoard/internal/render"
)

type MockBackend struct {
	mock.Mock
}

var _ Backend = (*MockBackend)(nil)

func ret[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

func (m *MockBackend) SearchTasks(ctx context.Context, q backend.TaskQuery) (*page.Page[task.Task], error) {
	args := m.Called(ctx, q)
	return ret[*page.Page[task.Task]](args.Get(0)), args.Error(1)
}

func (m *MockBackend) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	args := m.Called(ctx, id)
	return ret[*task.Task](args.Get(0)), args.Error(1)
}

func (m *MockBackend) CreateTask(ctx context.Context, form url.Values) (*task.Task, error) {
	args := m.Called(ctx, form)
	return ret[*task.Task](args.Get(0)), args.Error(1)
}

func (m *MockBackend) UpdateTask(ctx context.Context, id int64, form url.Values) (*task.Task, error) {
	args := m.Called(ctx, id, form)
	return ret[*task.Task](args.Get(0)), args.Error(1)
}

func (m *MockBackend) MoveTask(ctx context.Context, id int64, status task.Status, ids []int64) (*task.Task, error) {
	args := m.Called(ctx, id, status, ids)
	return ret[*task.Task](args.Get(0)), args.Error(1)
}

func (m *MockBackend) DeleteTask(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBackend) HideTask(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBackend) UnhideTask(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBackend) ChangeColor(ctx context.Context, id int64, color string) (bool, error) {
	args := m.Called(ctx, id, color)
	return args.Bool(0), args.Error(1)
}

func (m *MockBackend) SearchClients(ctx context.Context, q backend.SearchQuery) (*page.Page[client.Client], error) {
	args := m.Called(ctx, q)
	return ret[*page.Page[client.Client]](args.Get(0)), args.Error(1)
}

func (m *MockBackend) GetClient(ctx context.Context, id int64) (*client.Client, error) {
	args := m.Called(ctx, id)
	return ret[*client.Client](args.Get(0)), args.Error(1)
}

func (m *MockBackend) CreateClient(ctx context.Context, form url.Values) (*client.Client, error) {
	args := m.Called(ctx, form)
	return ret[*client.Client](args.Get(0)), args.Error(1)
}

func (m *MockBackend) UpdateClient(ctx context.Context, id int64, form url.Values) (*client.Client, error) {
	args := m.Called(ctx, id, form)
	return ret[*client.Client](args.Get(0)), args.Error(1)
}

func (m *MockBackend) DeleteClient(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBackend) SendInvoice(ctx context.Context, clientID int64, taskIDs []int64) error {
	return m.Called(ctx, clientID, taskIDs).Error(0)
}

func (m *MockBackend) DownloadInvoice(ctx context.Context, clientName string, taskIDs []int64) (*backend.Invoice, error) {
	args := m.Called(ctx, clientName, taskIDs)
	return ret[*backend.Invoice](args.Get(0)), args.Error(1)
}

func (m *MockBackend) UpdateProfile(ctx context.Context, form url.Values) (*user.Profile, error) {
	args := m.Called(ctx, form)
	return ret[*user.Profile](args.Get(0)), args.Error(1)
}

func (m *MockBackend) UpdateAdminProfile(ctx context.Context, username string, form url.Values) (*user.Profile, error) {
	args := m.Called(ctx, username, form)
	return ret[*user.Profile](args.Get(0)), args.Error(1)
}

func (m *MockBackend) ChangeLanguage(ctx context.Context, lang string) error {
	return m.Called(ctx, lang).Error(0)
}

func (m *MockBackend) ChangeCurrency(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

func (m *MockBackend) SearchUsers(ctx context.Context, q backend.SearchQuery) (*page.Page[user.User], error) {
	args := m.Called(ctx, q)
	return ret[*page.Page[user.User]](args.Get(0)), args.Error(1)
}

func (m *MockBackend) UpgradeUser(ctx context.Context, username string, months int) (*user.Profile, error) {
	args := m.Called(ctx, username, months)
	return ret[*user.Profile](args.Get(0)), args.Error(1)
}

func (m *MockBackend) DowngradeUser(ctx context.Context, username string) (*user.Profile, error) {
	args := m.Called(ctx, username)
	return ret[*user.Profile](args.Get(0)), args.Error(1)
}

func (m *MockBackend) ResetUserPassword(ctx context.Context, username string) (*user.Profile, error) {
	args := m.Called(ctx, username)
	return ret[*user.Profile](args.Get(0)), args.Error(1)
}

func (m *MockBackend) ToggleUserBlock(ctx context.Context, username string) (*user.Profile, error) {
	args := m.Called(ctx, username)
	return ret[*user.Profile](args.Get(0)), args.Error(1)
}

func (m *MockBackend) ReportSeries(ctx context.Context, name, rng string) (*report.Series, error) {
	args := m.Called(ctx, name, rng)
	return ret[*report.Series](args.Get(0)), args.Error(1)
}

var testNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func newEnv(t *testing.T, markup string, api Backend) *Env {
	t.Helper()
	doc, err := dom.ParseString(markup)
	require.NoError(t, err)
	msgs := i18n.Default()
	r, err := render.New(msgs, "USD")
	require.NoError(t, err)
	return &Env{
		API:      api,
		Describe: backend.NewDescriber(msgs),
		Render:   r.WithClock(func() time.Time { return testNow }),
		Banners:  notice.NewBoard(notice.DefaultLifetime),
		Doc:      doc,
		Seq:      backend.NewSequencer(),
		Now:      func() time.Time { return testNow },
	}
}

// banner - текст активного баннера указанного вида или "".
func banner(env *Env, kind notice.Kind) string {
	for _, b := range env.Banners.Active(testNow) {
		if b.Kind == kind {
			return b.Text
		}
	}
	return ""
}
