package command

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/sharepay/sharepay-go/internal/cli/output"
	"github.com/sharepay/sharepay-go/internal/core/domain"
	"github.com/sharepay/sharepay-go/internal/core/service"
)

// RegisterCommand creates an account.
func RegisterCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create a SharePay account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Account name"},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email address"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password (prompted when omitted)"},
		},
		Action: register,
	}
}

func register(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	in := &domain.RegisterInput{
		Username: flagOrPrompt(c, rt, "username", "Username"),
		Email:    flagOrPrompt(c, rt, "email", "Email"),
		Password: flagOrPrompt(c, rt, "password", "Password"),
	}

	svc, err := rt.Services(c.Context)
	if err != nil {
		return err
	}
	msg, err := withLoading(c, rt, "Registering...", func(ctx context.Context) (*domain.Message, error) {
		return svc.Auth.Register(ctx, in)
	})
	if err != nil {
		return err
	}

	rt.Console.Success(messageOr(msg, "Registered "+in.Username))
	rt.Nav.Redirect("/login")
	return nil
}

// LoginCommand signs in and stores the session.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in to SharePay",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Account name"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password (prompted when omitted)"},
		},
		Action: login,
	}
}

func login(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	in := &domain.LoginInput{
		Username: flagOrPrompt(c, rt, "username", "Username"),
		Password: flagOrPrompt(c, rt, "password", "Password"),
	}

	svc, err := rt.Services(c.Context)
	if err != nil {
		return err
	}
	if _, err := withLoading(c, rt, "Signing in...", func(ctx context.Context) (*domain.TokenPair, error) {
		return svc.Auth.Login(ctx, in)
	}); err != nil {
		return err
	}

	rt.Console.Success("Signed in as " + in.Username)
	rt.Nav.Redirect("/dashboard")
	return nil
}

// LogoutCommand ends the session locally and on the server.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Sign out and forget the stored session",
		Action: logout,
	}
}

func logout(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	svc, err := rt.Services(c.Context)
	if err != nil {
		return err
	}
	if err := svc.Auth.Logout(c.Context); err != nil {
		return err
	}
	rt.Console.Success("Signed out")
	return nil
}

// StatusCommand shows the stored session.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show the stored session",
		Action: status,
	}
}

func status(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	svc, err := rt.Services(c.Context)
	if err != nil {
		return err
	}
	st, err := svc.Auth.Status(c.Context)
	if err != nil {
		return err
	}
	return render(c, rt, st, func(w io.Writer) error {
		return statusTable(w, rt.Config.Server, st)
	})
}

func statusTable(w io.Writer, server string, st *service.SessionStatus) error {
	t := &output.Table{Headers: []string{"FIELD", "VALUE"}}
	t.AddRow("Server", server)
	if !st.LoggedIn {
		t.AddRow("Session", "not logged in")
		return t.Render(w)
	}
	t.AddRow("Session", "logged in")
	if st.Subject != "" {
		t.AddRow("User", st.Subject)
	}
	if !st.ExpiresAt.IsZero() {
		state := "valid"
		if st.Expired {
			state = "expired, refreshed on next request"
		}
		t.AddRow("Expires", fmt.Sprintf("%s (%s)", st.ExpiresAt.Local().Format(time.DateTime), state))
	}
	t.AddRow("Refresh token", yesNo(st.HasRefresh))
	t.AddRow("Token", st.TokenFP)
	return t.Render(w)
}

func messageOr(msg *domain.Message, fallback string) string {
	if msg != nil && msg.Message != "" {
		return msg.Message
	}
	return fallback
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
