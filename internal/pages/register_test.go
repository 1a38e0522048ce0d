package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskBoard/internal/dom"
	"taskBoard/internal/validate"
)

const registerPage = `<html><body>
<input id="username" name="username">
<input id="password" name="password"><input id="confirmPassword" name="confirmPassword">
<div class="progress"><div id="passwordStrength" class="progress-bar" style="width: 0%;" aria-valuenow="0"></div></div>
<small id="strengthText"></small>
</body></html>`

func TestRegisterStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		expected StrengthView
	}{
		{
			name:     "success - weak",
			password: "abc",
			expected: StrengthView{Score: 20, BarClass: "progress-bar bg-danger", Text: "Weak"},
		},
		{
			name:     "success - moderate",
			password: "abcdefgh1",
			expected: StrengthView{Score: 60, BarClass: "progress-bar bg-warning", Text: "Moderate"},
		},
		{
			name:     "success - strong without confirmation",
			password: "Abcdefg1!",
			expected: StrengthView{Score: 100, BarClass: "progress-bar bg-success", Text: "Strong"},
		},
		{
			name:     "success - strong and matching",
			password: "Abcdefg1!",
			confirm:  "Abcdefg1!",
			expected: StrengthView{Score: 100, BarClass: "progress-bar bg-success", Text: "Strong and matching", Color: "#28a745"},
		},
		{
			name:     "success - mismatch",
			password: "abcdefgh1",
			confirm:  "abcdefgh2",
			expected: StrengthView{Score: 60, BarClass: "progress-bar bg-warning", Text: "Passwords do not match", Color: "#dc3545"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t, registerPage, new(MockBackend))

			res, err := NewRegister(env).Strength(tt.password, tt.confirm)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res.Data)

			bar := env.Doc.Query(strengthBar)
			assert.Equal(t, tt.expected.BarClass, dom.Attr(bar, "class"))
			assert.Contains(t, dom.Attr(bar, "style"), "width")
			assert.Equal(t, tt.expected.Text, dom.Text(env.Doc.Query(strengthText)))
			assert.Contains(t, res.Fragments, "#passwordStrength")
			assert.Contains(t, res.Fragments, "#strengthText")
		})
	}
}

func TestRegisterGate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		field    string
		text     string
	}{
		{
			name:     "success - acceptable",
			password: "Abcdefg1!",
			confirm:  "Abcdefg1!",
			text:     "Strong and matching",
		},
		{
			name:     "error - requirements not met",
			password: "abcdefgh1",
			confirm:  "abcdefgh1",
			field:    "password",
			text:     "Password must be at least 8 characters, with uppercase, numbers, and special characters.",
		},
		{
			name:     "error - confirmation differs",
			password: "Abcdefg1!",
			confirm:  "Abcdefg1?",
			field:    "confirmPassword",
			text:     "Passwords do not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t, registerPage, new(MockBackend))

			_, err := NewRegister(env).Gate(tt.password, tt.confirm)
			if tt.field == "" {
				require.NoError(t, err)
			} else {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, []string{tt.field}, verr.Invalid())
			}
			assert.Equal(t, tt.text, dom.Text(env.Doc.Query(strengthText)))
		})
	}
}

func TestRegisterUsername(t *testing.T) {
	env := newEnv(t, registerPage, new(MockBackend))
	p := NewRegister(env)

	res, err := p.Username(" jo hn ")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"value": "john", "valid": true}, res.Data)
	assert.Equal(t, "john", dom.Attr(env.Doc.ByID("username"), "value"))
	assert.False(t, dom.HasClass(env.Doc.ByID("username"), validate.InvalidClass))

	res, err = p.Username("john@acme.io")
	require.NoError(t, err)
	assert.Equal(t, false, res.Data.(map[string]any)["valid"])
	assert.True(t, dom.HasClass(env.Doc.ByID("username"), validate.InvalidClass))
}
