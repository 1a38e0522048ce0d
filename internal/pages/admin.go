package pages

import (
	"context"

	"taskBoard/internal/backend"
	"taskBoard/internal/models/page"
	"taskBoard/internal/models/user"
	"taskBoard/internal/render"
)

// Admin - поиск пользователей для администратора.
type Admin struct {
	table *table[user.User, string]
}

func NewAdmin(env *Env) *Admin {
	fetch := func(ctx context.Context, search string, pageNumber, size int) (*page.Page[user.User], error) {
		return env.API.SearchUsers(ctx, backend.SearchQuery{Search: search, Page: pageNumber, Size: size})
	}
	return &Admin{
		table: newTable(env, "search:users", render.UsersView, backend.OpSearchUsers, env.Render.UserRow, fetch),
	}
}

func (p *Admin) Search(ctx context.Context, search string) (*Result, error) {
	return p.table.Search(ctx, search)
}

func (p *Admin) Page(ctx context.Context, pageNumber int) (*Result, error) {
	return p.table.Page(ctx, pageNumber)
}
