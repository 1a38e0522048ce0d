package handlers

import (
	"context"
	"net/http"

	"taskBoard/internal/handlers/dto"
	"taskBoard/internal/pages"
)

// fieldChecker - страница с проверкой полей при вводе.
type fieldChecker interface {
	CheckField(id, value string) bool
}

func serveField[T fieldChecker](h *Handler, op string) http.HandlerFunc {
	return serve(h, op, func(ctx context.Context, p T, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		var req dto.FieldRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		if req.ID == "" {
			return nil, badRequest("не указано поле")
		}
		return &pages.Result{
			Fragments: map[string]string{},
			Data:      dto.FieldResponse{ID: req.ID, Valid: p.CheckField(req.ID, req.Value)},
		}, nil
	})
}

func (h *Handler) UpdateProfile() http.HandlerFunc {
	return serve(h, "update_profile", func(ctx context.Context, p *pages.Profile, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		form, err := readForm(r)
		if err != nil {
			return nil, err
		}
		return p.Update(ctx, form)
	})
}

func (h *Handler) ChangeLanguage() http.HandlerFunc {
	return serve(h, "change_language", func(ctx context.Context, p *pages.Profile, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		var req dto.LanguageRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		return p.ChangeLanguage(ctx, req.Language)
	})
}

func (h *Handler) ChangeCurrency() http.HandlerFunc {
	return serve(h, "change_currency", func(ctx context.Context, p *pages.Profile, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		var req dto.CurrencyRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		return p.ChangeCurrency(ctx, req.Currency)
	})
}

func (h *Handler) UpdateAdminProfile() http.HandlerFunc {
	return serve(h, "update_admin_profile", func(ctx context.Context, p *pages.AdminProfile, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		form, err := readForm(r)
		if err != nil {
			return nil, err
		}
		return p.Update(ctx, form)
	})
}

func (h *Handler) UpgradeUser() http.HandlerFunc {
	return serve(h, "upgrade_user", func(ctx context.Context, p *pages.AdminProfile, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		var req dto.UpgradeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		return p.Upgrade(ctx, req.Months)
	})
}

func (h *Handler) DowngradeUser() http.HandlerFunc {
	return serve(h, "downgrade_user", func(ctx context.Context, p *pages.AdminProfile, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		return p.Downgrade(ctx)
	})
}

func (h *Handler) ResetUserPassword() http.HandlerFunc {
	return serve(h, "reset_user_password", func(ctx context.Context, p *pages.AdminProfile, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		return p.ResetPassword(ctx)
	})
}

func (h *Handler) ToggleUserBlock() http.HandlerFunc {
	return serve(h, "toggle_user_block", func(ctx context.Context, p *pages.AdminProfile, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		return p.ToggleBlock(ctx)
	})
}

func (h *Handler) PasswordStrength() http.HandlerFunc {
	return serve(h, "password_strength", func(ctx context.Context, p *pages.Register, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		var req dto.PasswordRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		return p.Strength(req.Password, req.Confirm)
	})
}

func (h *Handler) RegisterGate() http.HandlerFunc {
	return serve(h, "register_gate", func(ctx context.Context, p *pages.Register, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		var req dto.PasswordRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		return p.Gate(req.Password, req.Confirm)
	})
}

func (h *Handler) RegisterUsername() http.HandlerFunc {
	return serve(h, "register_username", func(ctx context.Context, p *pages.Register, w http.ResponseWriter, r *http.Request) (*pages.Result, error) {
		var req dto.UsernameRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		return p.Username(req.Username)
	})
}
