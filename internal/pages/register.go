package pages

import (
	"fmt"
	"strconv"

	"taskBoard/internal/dom"
	"taskBoard/internal/validate"
)

const (
	colorDanger  = "#dc3545"
	colorSuccess = "#28a745"
	fullScore    = 100
)

var (
	strengthBar  = dom.MustCompile("#passwordStrength")
	strengthText = dom.MustCompile("#strengthText")
	usernameBox  = dom.MustCompile("#username")
)

// StrengthView - индикатор надёжности пароля.
type StrengthView struct {
	Score    int    `json:"score"`
	BarClass string `json:"barClass"`
	Text     string `json:"text"`
	Color    string `json:"color,omitempty"`
}

// Register - страница регистрации: индикатор пароля и проверка перед отправкой.
type Register struct {
	env *Env
}

func NewRegister(env *Env) *Register {
	return &Register{env: env}
}

func (p *Register) view(s validate.Strength) StrengthView {
	v := StrengthView{Score: s.Score}
	switch s.Bucket {
	case validate.Weak:
		v.BarClass, v.Text = "progress-bar bg-danger", p.env.text("register.password.weak")
	case validate.Moderate:
		v.BarClass, v.Text = "progress-bar bg-warning", p.env.text("register.password.moderate")
	default:
		v.BarClass, v.Text = "progress-bar bg-success", p.env.text("register.password.strong")
	}
	switch {
	case s.Mismatch:
		v.Text, v.Color = p.env.text("register.password.noMatch"), colorDanger
	case s.StrongAndMatching:
		v.Text, v.Color = p.env.text("register.password.strongMatching"), colorSuccess
	}
	return v
}

func (p *Register) apply(v StrengthView) (*Result, error) {
	p.env.mu.Lock()
	defer p.env.mu.Unlock()
	if bar := p.env.Doc.Query(strengthBar); bar != nil {
		dom.SetAttr(bar, "class", v.BarClass)
		dom.SetAttr(bar, "style", fmt.Sprintf("width: %d%%;", v.Score))
		dom.SetAttr(bar, "aria-valuenow", strconv.Itoa(v.Score))
	}
	if txt := p.env.Doc.Query(strengthText); txt != nil {
		dom.SetText(txt, v.Text)
		if v.Color != "" {
			dom.SetAttr(txt, "style", "color: "+v.Color+";")
		} else {
			dom.RemoveAttr(txt, "style")
		}
	}
	res := newResult()
	if err := res.add(p.env.Doc, strengthBar, strengthText); err != nil {
		return nil, err
	}
	res.Data = v
	return res, nil
}

// Strength пересчитывает индикатор при вводе пароля или подтверждения.
func (p *Register) Strength(password, confirm string) (*Result, error) {
	return p.apply(p.view(validate.PasswordStrength(password, confirm)))
}

// Gate - проверка перед отправкой формы. Ошибка означает, что отправку надо отменить.
func (p *Register) Gate(password, confirm string) (*Result, error) {
	s := validate.PasswordStrength(password, confirm)
	if validate.PasswordAcceptable(password, confirm) {
		return p.apply(p.view(s))
	}
	v := StrengthView{Score: s.Score, BarClass: p.view(s).BarClass, Color: colorDanger}
	field := "password"
	if s.Score < fullScore {
		v.Text = p.env.text("register.password.requirements")
	} else {
		// требования выполнены, значит не совпало подтверждение
		v.Text = p.env.text("register.password.noMatch")
		field = "confirmPassword"
	}
	if _, err := p.apply(v); err != nil {
		return nil, err
	}
	return nil, &ValidationError{Fields: map[string]bool{field: false}}
}

// Username убирает пробелы из имени при вводе и проверяет допустимые символы.
func (p *Register) Username(raw string) (*Result, error) {
	value := validate.NormalizeUsername(raw)
	ok := validate.Username(value)

	p.env.mu.Lock()
	defer p.env.mu.Unlock()
	if box := p.env.Doc.Query(usernameBox); box != nil {
		dom.SetAttr(box, "value", value)
		validate.Mark(box, ok)
	}
	res := newResult()
	if err := res.add(p.env.Doc, usernameBox); err != nil {
		return nil, err
	}
	res.Data = map[string]any{"value": value, "valid": ok}
	return res, nil
}
