package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.English,
	language.Greek,
	language.Spanish,
	language.French,
	language.German,
	language.Italian,
}

var matcher = language.NewMatcher(supported)

// MatchLanguage приводит выбор пользователя к поддерживаемому двухбуквенному коду.
func MatchLanguage(raw string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("неверный код языка %q: %w", raw, err)
	}
	_, idx, conf := matcher.Match(tag)
	if conf < language.High {
		return "", fmt.Errorf("язык %q не поддерживается", raw)
	}
	base, _ := supported[idx].Base()
	return base.String(), nil
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"AUD": "A$",
	"CAD": "C$",
	"CHF": "CHF",
}

// CurrencySymbol - символ валюты, "$" для неизвестных кодов.
func CurrencySymbol(code string) string {
	if s, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return s
	}
	return "$"
}

func SupportedCurrency(code string) bool {
	_, ok := currencySymbols[strings.ToUpper(code)]
	return ok
}
