package handlers

import (
	"github.com/go-chi/chi/v5"

	"taskBoard/internal/pages"
)

// Routes регистрирует маршруты страниц. Все действия идут под /ui/{session}.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Route("/ui", func(r chi.Router) {
		r.Post("/sessions", h.OpenSession)

		r.Route("/{session}", func(r chi.Router) {
			r.Delete("/", h.CloseSession)
			r.Get("/banners", h.Banners)

			r.Route("/dashboard", func(r chi.Router) {
				r.Post("/drop", h.DashboardDrop())
				r.Post("/tasks", h.DashboardAddTask())
				r.Route("/tasks/{id}", func(r chi.Router) {
					r.Get("/", h.DashboardEditForm())
					r.Put("/", h.DashboardUpdateTask())
					r.Delete("/", h.DashboardDeleteTask())
					r.Post("/hide", h.DashboardHideTask())
					r.Post("/color", h.DashboardChangeColor())
				})
				r.Post("/invoice/download", h.DownloadInvoice())
				r.Post("/invoice/download/client", h.DownloadClientInvoice())
				r.Post("/invoice/send", h.SendInvoice())
				r.Post("/invoice/send/client", h.SendClientInvoice())
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/search", h.SearchTasks())
				r.Get("/page/{page}", servePage[*pages.Tasks](h, "tasks_page"))
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.TasksEditForm())
					r.Put("/", h.TasksUpdateTask())
					r.Delete("/", h.TasksDeleteTask())
					r.Post("/unhide", h.UnhideTask())
				})
			})

			r.Route("/clients", func(r chi.Router) {
				r.Post("/", h.CreateClient())
				r.Post("/search", h.SearchClients())
				r.Get("/page/{page}", servePage[*pages.Clients](h, "clients_page"))
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.ClientEditForm())
					r.Put("/", h.UpdateClient())
					r.Delete("/", h.DeleteClient())
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Post("/search", h.SearchUsers())
				r.Get("/page/{page}", servePage[*pages.Admin](h, "users_page"))
			})

			r.Route("/profile", func(r chi.Router) {
				r.Put("/", h.UpdateProfile())
				r.Post("/field", serveField[*pages.Profile](h, "profile_field"))
				r.Post("/language", h.ChangeLanguage())
				r.Post("/currency", h.ChangeCurrency())
			})

			r.Route("/admin-profile", func(r chi.Router) {
				r.Put("/", h.UpdateAdminProfile())
				r.Post("/field", serveField[*pages.AdminProfile](h, "admin_profile_field"))
				r.Post("/upgrade", h.UpgradeUser())
				r.Post("/downgrade", h.DowngradeUser())
				r.Post("/reset-password", h.ResetUserPassword())
				r.Post("/toggle-block", h.ToggleUserBlock())
			})

			r.Route("/register", func(r chi.Router) {
				r.Post("/strength", h.PasswordStrength())
				r.Post("/gate", h.RegisterGate())
				r.Post("/username", h.RegisterUsername())
			})

			r.Route("/reporting", func(r chi.Router) {
				r.Post("/load", h.LoadReport())
				r.Get("/export", h.ExportReport())
			})

			r.Get("/calendar/events", h.CalendarEvents())
		})
	})
}
