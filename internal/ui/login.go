package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// loginForm — экран входа администратора.
type loginForm struct {
	email    textinput.Model
	password textinput.Model
	focus    int // 0 = email, 1 = password
	busy     bool
	err      string
}

func newLoginForm() *loginForm {
	email := textinput.New()
	email.Placeholder = "admin@example.com"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "пароль"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword

	return &loginForm{email: email, password: password}
}

// next переключает фокус между полями.
func (f *loginForm) next() {
	if f.focus == 0 {
		f.email.Blur()
		f.password.Focus()
		f.focus = 1
	} else {
		f.password.Blur()
		f.email.Focus()
		f.focus = 0
	}
}

// ready сообщает, заполнены ли оба поля.
func (f *loginForm) ready() bool {
	return strings.TrimSpace(f.email.Value()) != "" && f.password.Value() != ""
}
