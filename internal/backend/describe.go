package backend

import (
	"net/http"
	"slices"
	"strings"

	"taskBoard/internal/i18n"
)

// Op - операция интерфейса, для которой подбирается текст ошибки.
type Op string

const (
	OpMoveTask        Op = "move_task"
	OpCreateTask      Op = "create_task"
	OpUpdateTask      Op = "update_task"
	OpFetchTask       Op = "fetch_task"
	OpDeleteTask      Op = "delete_task"
	OpHideTask        Op = "hide_task"
	OpUnhideTask      Op = "unhide_task"
	OpChangeColor     Op = "change_color"
	OpSearchTasks     Op = "search_tasks"
	OpSearchClients   Op = "search_clients"
	OpFetchClient     Op = "fetch_client"
	OpCreateClient    Op = "create_client"
	OpUpdateClient    Op = "update_client"
	OpDeleteClient    Op = "delete_client"
	OpDownloadInvoice Op = "download_invoice"
	OpSendInvoice     Op = "send_invoice"
	OpUpdateProfile   Op = "update_profile"
	OpAdminProfile    Op = "admin_profile"
	OpUpgradeUser     Op = "upgrade_user"
	OpDowngradeUser   Op = "downgrade_user"
	OpResetPassword   Op = "reset_password"
	OpToggleBlock     Op = "toggle_block"
	OpChangeLanguage  Op = "change_language"
	OpChangeCurrency  Op = "change_currency"
	OpSearchUsers     Op = "search_users"
	OpReport          Op = "report"
)

// opText - таблица текстов одной операции (значения - ключи каталога).
type opText struct {
	generic   string
	rateLimit string
	// sentinels: тело ответа с этим статусом, совпадающее с ключом, даёт текст ключа
	sentinels map[int][]string
	byStatus  map[int]string
	// verbatim: тело ответа с этим статусом показывается как есть
	verbatim []int
}

var taskLimitSentinels = map[int][]string{
	http.StatusForbidden:       {"limit.error.task.unverified"},
	http.StatusTooManyRequests: {"limit.error.rate.task"},
}

var opTexts = map[Op]opText{
	OpMoveTask: {
		generic:   "dashboard.alert.moveFailed",
		rateLimit: "limit.error.rate.task",
		sentinels: taskLimitSentinels,
	},
	OpCreateTask: {
		generic:   "dashboard.alert.addTaskFailed",
		rateLimit: "limit.error.rate.task",
		sentinels: taskLimitSentinels,
	},
	OpUpdateTask: {generic: "dashboard.alert.updateTaskFailed", rateLimit: "limit.error.rate.task"},
	OpFetchTask:  {generic: "dashboard.alert.fetchTaskFailed", rateLimit: "limit.error.rate.task"},
	OpDeleteTask: {generic: "dashboard.alert.deleteTaskFailed", rateLimit: "limit.error.rate.task"},
	OpHideTask:   {generic: "dashboard.alert.hideTaskFailed", rateLimit: "limit.error.rate.task"},
	OpUnhideTask: {generic: "dashboard.alert.unhideTaskFailed", rateLimit: "limit.error.rate.task"},
	OpChangeColor: {
		generic:   "dashboard.alert.colorFailed",
		rateLimit: "limit.error.rate.task",
	},
	OpSearchTasks: {generic: "dashboard.alert.searchFailed", rateLimit: "limit.error.rate.task.search"},
	OpSearchClients: {
		generic:   "clients.error.search.generic",
		rateLimit: "error.rate.limit.client.search",
	},
	OpFetchClient: {generic: "clients.error.fetch.generic", rateLimit: "error.rate.limit.client"},
	OpCreateClient: {
		generic:   "clients.error.create.generic",
		rateLimit: "error.rate.limit.client",
		sentinels: map[int][]string{
			http.StatusBadRequest: {"clients.error.invalid.email", "clients.error.invalid.phone"},
		},
		byStatus: map[int]string{http.StatusBadRequest: "error.client.limit.unverified"},
	},
	OpUpdateClient: {
		generic:   "clients.error.update.generic",
		rateLimit: "error.rate.limit.client",
		sentinels: map[int][]string{
			http.StatusBadRequest: {"clients.error.invalid.email", "clients.error.invalid.phone"},
		},
	},
	OpDeleteClient: {
		generic:   "clients.error.delete.generic",
		rateLimit: "error.rate.limit.client",
		byStatus:  map[int]string{http.StatusConflict: "clients.error.delete.associatedTasks"},
	},
	OpDownloadInvoice: {generic: "invoice.error.failed", rateLimit: "limit.error.rate.invoice"},
	OpSendInvoice: {
		generic:   "invoice.error.failed",
		rateLimit: "invoice.error.rate",
		byStatus:  map[int]string{http.StatusBadRequest: "invoice.error.invalid"},
	},
	OpUpdateProfile: {
		generic:   "profile.update.error",
		rateLimit: "profile.update.rateLimit",
		verbatim:  []int{http.StatusBadRequest},
	},
	OpAdminProfile: {
		generic:  "profile.update.error",
		verbatim: []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError},
	},
	OpUpgradeUser: {
		generic:  "admin.upgrade.error",
		verbatim: []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError},
	},
	OpDowngradeUser: {
		generic:  "admin.downgrade.error",
		verbatim: []int{http.StatusNotFound, http.StatusInternalServerError},
	},
	OpResetPassword: {
		generic:  "admin.resetPassword.error",
		verbatim: []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError},
	},
	OpToggleBlock: {
		generic: "admin.toggleBlock.error",
		verbatim: []int{http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound,
			http.StatusConflict, http.StatusInternalServerError},
	},
	OpChangeLanguage: {generic: "profile.update.error", verbatim: []int{http.StatusBadRequest}},
	OpChangeCurrency: {generic: "profile.currency.error", verbatim: []int{http.StatusBadRequest}},
	OpSearchUsers:    {generic: "admin.search.error", rateLimit: "limit.error.rate.search"},
	OpReport:         {generic: "reporting.error.generic", rateLimit: "reporting.error.rate"},
}

// Describer переводит отказ бэкенда в текст баннера.
type Describer struct {
	msgs *i18n.Messages
}

func NewDescriber(msgs *i18n.Messages) *Describer {
	return &Describer{msgs: msgs}
}

func (d *Describer) Messages() *i18n.Messages {
	return d.msgs
}

// Describe: известный ключ в теле, затем 429, затем ключ каталога в теле 400, затем текст по статусу,
// затем тело как есть для разрешённых статусов, иначе общий текст операции.
func (d *Describer) Describe(op Op, err error) string {
	texts, ok := opTexts[op]
	if !ok {
		texts = opText{generic: "validation.failed"}
	}
	f, ok := AsFailure(err)
	if !ok || f.StatusCode == 0 {
		return d.msgs.Text(texts.generic)
	}

	body := strings.TrimSpace(f.Body)
	if slices.Contains(texts.sentinels[f.StatusCode], body) {
		return d.msgs.Text(body)
	}
	if f.RateLimited() && texts.rateLimit != "" {
		return d.msgs.Text(texts.rateLimit)
	}
	if f.StatusCode == http.StatusBadRequest {
		if t, ok := d.msgs.Sentinel(body); ok {
			return t
		}
	}
	if key, ok := texts.byStatus[f.StatusCode]; ok {
		return d.msgs.Text(key)
	}
	if body != "" && slices.Contains(texts.verbatim, f.StatusCode) {
		return body
	}
	return d.msgs.Text(texts.generic)
}
