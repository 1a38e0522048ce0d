package user

import "strings"

// User - строка результатов поиска администратора.
type User struct {
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	IsPremium bool   `json:"isPremium"`
	ExpiresAt string `json:"expiresAt,omitempty"`
	LastLogin string `json:"lastLogin,omitempty"`
}

// StatusBlocked - статус заблокированного пользователя.
const StatusBlocked = "BLOCKED"

type Profile struct {
	Username    string `json:"username"`
	CompanyName string `json:"companyName"`
	LogoURL     string `json:"logoUrl"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Language    string `json:"language,omitempty"`
	Currency    string `json:"currency,omitempty"`

	// поля карточки пользователя у администратора
	Status                 string `json:"status,omitempty"`
	EmailVerified          bool   `json:"emailVerified"`
	EmailVerificationToken string `json:"emailVerificationToken,omitempty"`
	ResetPasswordToken     string `json:"resetPasswordToken,omitempty"`
	UpdateHistory          string `json:"updateHistory,omitempty"`
}

// History - записи истории изменений; в ответе они разделены ";".
func (p *Profile) History() []string {
	var out []string
	for _, e := range strings.Split(p.UpdateHistory, ";") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

func (p *Profile) Blocked() bool {
	return p.Status == StatusBlocked
}
