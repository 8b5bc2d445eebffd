package view

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
)

// LoggedInMsg carries the employee every later screen acts as.
type LoggedInMsg struct {
	Actor auth.Actor
}

type LoginModel struct {
	CommonModel
	authService *auth.Service

	form    *huh.Form
	loading bool
	err     error
}

func NewLoginModel(authSvc *auth.Service) LoginModel {
	m := LoginModel{authService: authSvc}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) Title() string     { return "Login" }
func (m LoginModel) ShortHelp() string { return "Enter: next | Ctrl+C: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

// Values are read back with GetString since the model is copied on every
// update.
func (m LoginModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("login").
				Title("Username or email").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("login cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(loginResultMsg); ok {
		m.loading = false

		if result.err != nil {
			m.err = result.err
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		actor := result.actor

		return m, func() tea.Msg { return LoggedInMsg{Actor: actor} }
	}

	if m.loading {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.loading = true
	m.err = nil

	return m, m.loginCmd(strings.TrimSpace(m.form.GetString("login")), m.form.GetString("password"))
}

func (m LoginModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Signing in...")
	}

	header := lipgloss.NewStyle().Bold(true).Render("Balcão back office")

	errStr := ""
	if m.err != nil {
		errStr = "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(loginError(m.err))
	}

	return lipgloss.NewStyle().Padding(2).Render(header + "\n\n" + m.form.View() + errStr)
}

func loginError(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, apperr.ErrValidation):
		return "Username and password are required."
	}

	return fmt.Sprintf("Error: %v", err)
}

type loginResultMsg struct {
	actor auth.Actor
	err   error
}

func (m LoginModel) loginCmd(login, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()

		session, err := m.authService.Login(ctx, auth.LoginParams{Login: login, Password: password})
		if err != nil {
			return loginResultMsg{err: err}
		}

		return loginResultMsg{actor: session.Actor}
	}
}
