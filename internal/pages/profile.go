package pages

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"taskBoard/internal/backend"
	"taskBoard/internal/dom"
	"taskBoard/internal/i18n"
	"taskBoard/internal/models/user"
	"taskBoard/internal/validate"
)

var profileForm = dom.MustCompile("#profileForm")

// setInput выставляет значение поля формы: value у input, selected у option в select.
func setInput(doc *dom.Document, id, value string) {
	n := doc.ByID(id)
	if n == nil {
		return
	}
	if n.Data != "select" {
		dom.SetAttr(n, "value", value)
		return
	}
	for _, opt := range dom.FindAll(n, dom.ByTag("option")) {
		if dom.Attr(opt, "value") == value {
			dom.SetAttr(opt, "selected", "")
		} else {
			dom.RemoveAttr(opt, "selected")
		}
	}
}

func (e *Env) fillProfile(p *user.Profile, withLogo bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	setInput(e.Doc, "companyName", p.CompanyName)
	if withLogo {
		setInput(e.Doc, "logoUrl", p.LogoURL)
	}
	setInput(e.Doc, "email", p.Email)
	setInput(e.Doc, "phone", p.Phone)
	lang := p.Language
	if lang == "" {
		lang = "en"
	}
	setInput(e.Doc, "language", lang)
}

func (e *Env) formResult(sel dom.Selector) (*Result, error) {
	res := newResult()
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := res.add(e.Doc, sel); err != nil {
		return nil, err
	}
	return res, nil
}

// markField проверяет поле при вводе и отмечает его на копии страницы.
func (e *Env) markField(form validate.Form, id, value string) bool {
	ok := CheckField(form, id, value)
	e.mu.Lock()
	if n := e.Doc.ByID(id); n != nil {
		validate.Mark(n, ok)
	}
	e.mu.Unlock()
	return ok
}

// Profile - профиль пользователя: реквизиты, язык, валюта.
type Profile struct {
	env *Env
}

func NewProfile(env *Env) *Profile {
	return &Profile{env: env}
}

func (p *Profile) CheckField(id, value string) bool {
	return p.env.markField(validate.ProfileForm, id, value)
}

func (p *Profile) Update(ctx context.Context, form url.Values) (*Result, error) {
	if err := p.env.check(validate.ProfileForm, form, nil); err != nil {
		return nil, err
	}
	updated, err := p.env.API.UpdateProfile(ctx, form)
	if err != nil {
		return p.env.fail(backend.OpUpdateProfile, err), nil
	}
	p.env.fillProfile(updated, true)
	p.env.succeed("profile.update.success")
	res, err := p.env.formResult(profileForm)
	if err != nil {
		return nil, err
	}
	res.Data = updated
	return res, nil
}

// ChangeLanguage сохраняет язык интерфейса; после успеха страница перезагружается.
func (p *Profile) ChangeLanguage(ctx context.Context, raw string) (*Result, error) {
	lang, err := i18n.MatchLanguage(raw)
	if err != nil {
		p.env.Banners.Error(p.env.text("profile.language.invalid"), p.env.now())
		res := newResult()
		res.Failed = true
		return res, nil
	}
	if err := p.env.API.ChangeLanguage(ctx, lang); err != nil {
		return p.env.fail(backend.OpChangeLanguage, err), nil
	}
	res := newResult()
	res.Reload = true
	return res, nil
}

func (p *Profile) ChangeCurrency(ctx context.Context, code string) (*Result, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := p.env.API.ChangeCurrency(ctx, code); err != nil {
		return p.env.fail(backend.OpChangeCurrency, err), nil
	}
	p.env.succeed("profile.currency.success")
	return newResult(), nil
}

var errNoUsername = errors.New("на странице нет имени пользователя")

// AdminProfile - правка профиля пользователя администратором.
type AdminProfile struct {
	env      *Env
	username string
}

func NewAdminProfile(env *Env) (*AdminProfile, error) {
	input := dom.First(env.Doc.Root(), dom.All(dom.ByTag("input"), dom.ByAttr("name", "username")))
	if input == nil || dom.Attr(input, "value") == "" {
		return nil, errNoUsername
	}
	return &AdminProfile{env: env, username: dom.Attr(input, "value")}, nil
}

func (p *AdminProfile) Username() string {
	return p.username
}

func (p *AdminProfile) CheckField(id, value string) bool {
	return p.env.markField(validate.AdminProfileForm, id, value)
}

func (p *AdminProfile) Update(ctx context.Context, form url.Values) (*Result, error) {
	if err := p.env.check(validate.AdminProfileForm, form, nil); err != nil {
		return nil, err
	}
	updated, err := p.env.API.UpdateAdminProfile(ctx, p.username, form)
	if err != nil {
		return p.env.fail(backend.OpAdminProfile, err), nil
	}
	p.env.fillProfile(updated, false)
	p.markStatuses(updated)
	p.env.succeed("profile.update.success")
	return p.refresh(updated, profileForm, statusList)
}

// Upgrade продлевает премиум на months месяцев; меньше одного месяца не отправляется.
func (p *AdminProfile) Upgrade(ctx context.Context, months int) (*Result, error) {
	if months < 1 {
		p.env.Banners.Error(p.env.text("admin.upgrade.months"), p.env.now())
		res := newResult()
		res.Failed = true
		return res, nil
	}
	updated, err := p.env.API.UpgradeUser(ctx, p.username, months)
	if err != nil {
		return p.env.fail(backend.OpUpgradeUser, err), nil
	}
	p.env.Banners.Success(p.env.Describe.Messages().Textf("admin.upgrade.success", months), p.env.now())
	return p.refresh(updated)
}

func (p *AdminProfile) Downgrade(ctx context.Context) (*Result, error) {
	updated, err := p.env.API.DowngradeUser(ctx, p.username)
	if err != nil {
		return p.env.fail(backend.OpDowngradeUser, err), nil
	}
	p.env.succeed("admin.downgrade.success")
	return p.refresh(updated)
}

// ResetPassword отправляет ссылку сброса; отмечает флажок сброса и выводит ссылки токенов.
func (p *AdminProfile) ResetPassword(ctx context.Context) (*Result, error) {
	updated, err := p.env.API.ResetUserPassword(ctx, p.username)
	if err != nil {
		return p.env.fail(backend.OpResetPassword, err), nil
	}
	p.env.Banners.Success(p.env.Describe.Messages().Textf("admin.resetPassword.success", updated.Email), p.env.now())

	p.env.mu.Lock()
	if box := p.env.Doc.Query(resetCheckbox); box != nil {
		setChecked(box, true)
	}
	if row := p.env.Doc.Query(tokenRow); row != nil {
		dom.Clear(row)
		if updated.EmailVerificationToken != "" {
			row.AppendChild(tokenItem(tokenBaseURL + "/email-verify?token=" + url.QueryEscape(updated.EmailVerificationToken)))
		}
		if updated.ResetPasswordToken != "" {
			row.AppendChild(tokenItem(tokenBaseURL + "/reset-password?token=" + url.QueryEscape(updated.ResetPasswordToken)))
		}
	}
	p.env.mu.Unlock()

	return p.refresh(updated, statusList, tokenRow)
}

// ToggleBlock блокирует или разблокирует пользователя; кнопка показывает обратное действие.
func (p *AdminProfile) ToggleBlock(ctx context.Context) (*Result, error) {
	updated, err := p.env.API.ToggleUserBlock(ctx, p.username)
	if err != nil {
		return p.env.fail(backend.OpToggleBlock, err), nil
	}
	label, class, done := "admin.toggleBlock.block", "btn-danger", "admin.toggleBlock.unblocked"
	if updated.Blocked() {
		label, class, done = "admin.toggleBlock.unblock", "btn-success", "admin.toggleBlock.blocked"
	}
	p.env.succeed(done)

	p.env.mu.Lock()
	if btn := p.env.Doc.Query(toggleBlockButton); btn != nil {
		dom.SetText(btn, p.env.text(label))
		dom.RemoveClass(btn, "btn-danger", "btn-success")
		dom.AddClass(btn, class)
	}
	p.env.mu.Unlock()

	return p.refresh(updated, toggleBlockForm)
}

var (
	historyList       = dom.MustCompile(".update-history-list")
	statusList        = dom.MustCompile(".status-list")
	statusInputs      = dom.MustCompile(".status-item input")
	resetCheckbox     = dom.MustCompile(".reset-password-checkbox")
	tokenRow          = dom.MustCompile(".token-row")
	toggleBlockForm   = dom.MustCompile("#toggleBlockForm")
	toggleBlockButton = dom.MustCompile("#toggleBlockForm button")
)

const tokenBaseURL = "https://mrtasks.com"

func setChecked(n *html.Node, on bool) {
	if on {
		dom.SetAttr(n, "checked", "")
		return
	}
	dom.RemoveAttr(n, "checked")
}

func tokenItem(link string) *html.Node {
	item := dom.NewElement("div", "")
	dom.AddClass(item, "token-item")
	item.AppendChild(dom.NewElement("span", link))
	icon := dom.NewElement("i", "")
	dom.AddClass(icon, "bi", "bi-clipboard", "btn-copy")
	dom.SetAttr(icon, "data-url", link)
	dom.SetAttr(icon, "title", "Copy URL")
	item.AppendChild(icon)
	return item
}

// markStatuses - флажки статуса по порядку: токен подтверждения почты,
// почта подтверждена, токен сброса пароля.
func (p *AdminProfile) markStatuses(u *user.Profile) {
	p.env.mu.Lock()
	defer p.env.mu.Unlock()
	flags := []bool{u.EmailVerificationToken != "", u.EmailVerified, u.ResetPasswordToken != ""}
	for i, box := range p.env.Doc.QueryAll(statusInputs) {
		if i < len(flags) {
			setChecked(box, flags[i])
		}
	}
}

// refresh переписывает историю изменений по ответу и отдаёт её вместе с кусками extra.
func (p *AdminProfile) refresh(u *user.Profile, extra ...dom.Selector) (*Result, error) {
	p.env.mu.Lock()
	defer p.env.mu.Unlock()

	if list := p.env.Doc.Query(historyList); list != nil {
		dom.Clear(list)
		for _, e := range u.History() {
			list.AppendChild(dom.NewElement("li", e))
		}
	}

	res := newResult()
	if err := res.add(p.env.Doc, append([]dom.Selector{historyList}, extra...)...); err != nil {
		return nil, err
	}
	res.Data = u
	return res, nil
}
