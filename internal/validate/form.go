package validate

// Rule - правило проверки одного поля.
type Rule func(string) bool

// Form описывает набор полей формы и их правила по id поля.
type Form map[string]Rule

var (
	ProfileForm      = Form{"companyName": CompanyName, "logoUrl": LogoURL, "email": Email, "phone": Phone}
	AdminProfileForm = Form{"companyName": CompanyName, "email": Email, "phone": Phone}
	ClientForm       = Form{"email": ClientEmail, "phone": ClientPhone}
	RegisterForm     = Form{"username": Username}
)

// Field проверяет одно поле; поля без правила считаются корректными.
func (f Form) Field(id, value string) bool {
	rule, ok := f[id]
	if !ok {
		return true
	}
	return rule(value)
}

// Check прогоняет все правила формы (проверка перед отправкой).
// Отсутствующее значение проверяется как пустая строка.
func (f Form) Check(values map[string]string) (map[string]bool, bool) {
	results := make(map[string]bool, len(f))
	allOK := true
	for id, rule := range f {
		ok := rule(values[id])
		results[id] = ok
		allOK = allOK && ok
	}
	return results, allOK
}
