package handlers

import (
	"context"
	"net/http"
	"strings"

	"taskBoard/internal/board"
	"taskBoard/internal/handlers/dto"
	"taskBoard/internal/models/task"
	"taskBoard/internal/pages"
)

func (h *Handler) DashboardDrop() http.HandlerFunc {
	return serve(h, "drop", func(ctx context.Context, p *pages.Dashboard, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		var req dto.DropRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		status := task.Status(strings.ToUpper(strings.TrimSpace(req.Status)))
		if !status.Valid() {
			return nil, badRequest("неизвестный статус: " + req.Status)
		}
		return p.Drop(ctx, board.Drop{TaskID: req.TaskID, Target: status, Index: req.Index})
	})
}

func (h *Handler) DashboardAddTask() http.HandlerFunc {
	return serve(h, "add_task", func(ctx context.Context, p *pages.Dashboard, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		form, err := readForm(r)
		if err != nil {
			return nil, err
		}
		return p.AddTask(ctx, form)
	})
}

func (h *Handler) DashboardEditForm() http.HandlerFunc {
	return serve(h, "edit_task_form", func(ctx context.Context, p *pages.Dashboard, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		id, err := int64Param(r, "id")
		if err != nil {
			return nil, err
		}
		return p.EditForm(ctx, id)
	})
}

func (h *Handler) DashboardUpdateTask() http.HandlerFunc {
	return serve(h, "update_task", func(ctx context.Context, p *pages.Dashboard, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
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

func (h *Handler) DashboardDeleteTask() http.HandlerFunc {
	return serve(h, "delete_task", func(ctx context.Context, p *pages.Dashboard, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		id, err := int64Param(r, "id")
		if err != nil {
			return nil, err
		}
		return p.DeleteTask(ctx, id)
	})
}

func (h *Handler) DashboardHideTask() http.HandlerFunc {
	return serve(h, "hide_task", func(ctx context.Context, p *pages.Dashboard, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		id, err := int64Param(r, "id")
		if err != nil {
			return nil, err
		}
		return p.HideTask(ctx, id)
	})
}

func (h *Handler) DashboardChangeColor() http.HandlerFunc {
	return serve(h, "change_color", func(ctx context.Context, p *pages.Dashboard, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		id, err := int64Param(r, "id")
		if err != nil {
			return nil, err
		}
		var req dto.ColorRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		return p.ChangeColor(ctx, id, req.Color)
	})
}

func (h *Handler) DownloadInvoice() http.HandlerFunc {
	return serve(h, "download_invoice", func(ctx context.Context, p *pages.Dashboard, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		var req dto.SelectionRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		return p.DownloadInvoice(ctx, req.TaskIDs)
	})
}

func (h *Handler) DownloadClientInvoice() http.HandlerFunc {
	return serve(h, "download_client_invoice", func(ctx context.Context, p *pages.Dashboard, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		var req dto.ClientInvoiceRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		if strings.TrimSpace(req.ClientName) == "" || len(req.TaskIDs) == 0 {
			return nil, badRequest("нужны имя клиента и задачи")
		}
		return p.DownloadClientInvoice(ctx, req.ClientName, req.TaskIDs)
	})
}

func (h *Handler) SendInvoice() http.HandlerFunc {
	return serve(h, "send_invoice", func(ctx context.Context, p *pages.Dashboard, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		var req dto.SelectionRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		return p.SendInvoice(ctx, req.TaskIDs)
	})
}

func (h *Handler) SendClientInvoice() http.HandlerFunc {
	return serve(h, "send_client_invoice", func(ctx context.Context, p *pages.Dashboard, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		var req dto.ClientInvoiceRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		if req.ClientID <= 0 || len(req.TaskIDs) == 0 {
			return nil, badRequest("нужны клиент и задачи")
		}
		return p.SendClientInvoice(ctx, req.ClientID, req.TaskIDs)
	})
}
