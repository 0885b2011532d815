package app

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/mynotes/internal/styles"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// authForm backs both the login and signup screens. The name field is only
// shown (and validated) on signup.
type authForm struct {
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int
	errMsg   string
	busy     bool
}

func newAuthForm() authForm {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 100
	name.Width = 36

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 100
	email.Width = 36
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.Width = 36
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return authForm{name: name, email: email, password: password}
}

// authFields returns the active inputs in focus order for the current screen.
func (m *Model) authFields() []*textinput.Model {
	if m.screen == screenSignUp {
		return []*textinput.Model{&m.auth.name, &m.auth.email, &m.auth.password}
	}
	return []*textinput.Model{&m.auth.email, &m.auth.password}
}

func (m *Model) setAuthFocus(focus int) {
	fields := m.authFields()
	if focus < 0 {
		focus = len(fields) - 1
	}
	focus %= len(fields)
	m.auth.focus = focus
	for i, f := range fields {
		if i == focus {
			f.Focus()
		} else {
			f.Blur()
		}
	}
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab", "down":
		m.setAuthFocus(m.auth.focus + 1)
		return m, nil

	case "shift+tab", "up":
		m.setAuthFocus(m.auth.focus - 1)
		return m, nil

	case "ctrl+n":
		// Toggle between login and signup, resetting the form.
		if m.screen == screenLogin {
			m.screen = screenSignUp
		} else {
			m.screen = screenLogin
		}
		m.auth = newAuthForm()
		if m.screen == screenSignUp {
			m.auth.email.Blur()
			m.auth.name.Focus()
		}
		return m, nil

	case "enter":
		return m.submitAuth()
	}

	fields := m.authFields()
	var cmd tea.Cmd
	*fields[m.auth.focus], cmd = fields[m.auth.focus].Update(msg)
	return m, cmd
}

// submitAuth validates locally before any request leaves the client, matching
// the server's own rules so obvious mistakes never round-trip.
func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	if m.auth.busy {
		return m, nil
	}

	email := strings.TrimSpace(m.auth.email.Value())
	password := m.auth.password.Value()

	if m.screen == screenSignUp {
		if strings.TrimSpace(m.auth.name.Value()) == "" {
			m.auth.errMsg = "Please enter your name"
			return m, nil
		}
	}
	if !emailPattern.MatchString(email) {
		m.auth.errMsg = "Please enter a valid email address"
		return m, nil
	}
	if password == "" {
		m.auth.errMsg = "Please enter the password"
		return m, nil
	}

	m.auth.errMsg = ""
	m.auth.busy = true
	if m.screen == screenSignUp {
		return m, m.signupCmd(strings.TrimSpace(m.auth.name.Value()), email, password)
	}
	return m, m.loginCmd(email, password)
}

func (m Model) authView() string {
	signup := m.screen == screenSignUp

	title := "Login"
	switchHint := "ctrl+n to create an account"
	if signup {
		title = "Sign Up"
		switchHint = "ctrl+n to log in instead"
	}

	var b strings.Builder
	b.WriteString(styles.Logo.Render("MyNotes"))
	b.WriteString("\n\n")
	b.WriteString(styles.ModalTitle.Render(title))
	b.WriteString("\n\n")
	if signup {
		b.WriteString(m.auth.name.View() + "\n")
	}
	b.WriteString(m.auth.email.View() + "\n")
	b.WriteString(m.auth.password.View() + "\n")

	if m.auth.errMsg != "" {
		b.WriteString("\n" + styles.ErrText.Render(m.auth.errMsg))
	}
	if m.auth.busy {
		b.WriteString("\n" + styles.Muted.Render("Please wait..."))
	}

	b.WriteString("\n\n")
	b.WriteString(styles.KeyHint.Render("enter") + " " + styles.Muted.Render("submit"))
	b.WriteString("  " + styles.Muted.Render(switchHint))

	box := styles.ModalBox.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
