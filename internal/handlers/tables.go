package handlers

import (
	"context"
	"net/http"

	"taskBoard/internal/handlers/dto"
	"taskBoard/internal/pages"
)

// pager - страница с поиском и пагинацией.
type pager interface {
	Page(ctx context.Context, pageNumber int) (*pages.Result, error)
}

func servePage[T pager](h *Handler, op string) http.HandlerFunc {
	return serve(h, op, func(ctx context.Context, p T, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		n, err := intParam(r, "page")
		if err != nil {
			return nil, err
		}
		return p.Page(ctx, n)
	})
}

func (h *Handler) SearchTasks() http.HandlerFunc {
	return serve(h, "search_tasks", func(ctx context.Context, p *pages.Tasks, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		var req dto.TaskSearchRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		return p.Search(ctx, pages.TaskFilter{
			Search:   req.Search,
			ClientID: req.ClientID,
			Status:   req.Status,
			Size:     req.Size,
		})
	})
}

func (h *Handler) TasksEditForm() http.HandlerFunc {
	return serve(h, "tasks_edit_form", func(ctx context.Context, p *pages.Tasks, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		id, err := int64Param(r, "id")
		if err != nil {
			return nil, err
		}
		return p.EditForm(ctx, id)
	})
}

func (h *Handler) TasksUpdateTask() http.HandlerFunc {
	return serve(h, "tasks_update_task", func(ctx context.Context, p *pages.Tasks, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		id, err := int64Param(r, "id")
		if err != nil {
			return nil, err
		}
		form, err := readForm(r)
		if err != nil {
			return nil, err
		}
		return p.UpdateTask(ctx, id, form)
	})
}

func (h *Handler) TasksDeleteTask() http.HandlerFunc {
	return serve(h, "tasks_delete_task", func(ctx context.Context, p *pages.Tasks, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		id, err := int64Param(r, "id")
		if err != nil {
			return nil, err
		}
		return p.DeleteTask(ctx, id)
	})
}

func (h *Handler) UnhideTask() http.HandlerFunc {
	return serve(h, "unhide_task", func(ctx context.Context, p *pages.Tasks, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		id, err := int64Param(r, "id")
		if err != nil {
			return nil, err
		}
		return p.UnhideTask(ctx, id)
	})
}

func (h *Handler) SearchClients() http.HandlerFunc {
	return serve(h, "search_clients", func(ctx context.Context, p *pages.Clients, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		var req dto.SearchRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		return p.Search(ctx, pages.ClientFilter{Search: req.Search, Size: req.Size})
	})
}

func (h *Handler) CreateClient() http.HandlerFunc {
	return serve(h, "create_client", func(ctx context.Context, p *pages.Clients, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		form, err := readForm(r)
		if err != nil {
			return nil, err
		}
		return p.CreateClient(ctx, form)
	})
}

func (h *Handler) ClientEditForm() http.HandlerFunc {
	return serve(h, "client_edit_form", func(ctx context.Context, p *pages.Clients, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		id, err := int64Param(r, "id")
		if err != nil {
			return nil, err
		}
		return p.EditForm(ctx, id)
	})
}

func (h *Handler) UpdateClient() http.HandlerFunc {
	return serve(h, "update_client", func(ctx context.Context, p *pages.Clients, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		id, err := int64Param(r, "id")
		if err != nil {
			return nil, err
		}
		form, err := readForm(r)
		if err != nil {
			return nil, err
		}
		return p.UpdateClient(ctx, id, form)
	})
}

func (h *Handler) DeleteClient() http.HandlerFunc {
	return serve(h, "delete_client", func(ctx context.Context, p *pages.Clients, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		id, err := int64Param(r, "id")
		if err != nil {
			return nil, err
		}
		return p.DeleteClient(ctx, id)
	})
}

func (h *Handler) SearchUsers() http.HandlerFunc {
	return serve(h, "search_users", func(ctx context.Context, p *pages.Admin, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		var req dto.SearchRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		return p.Search(ctx, req.Search)
	})
}
