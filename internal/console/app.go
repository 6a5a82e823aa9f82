package console

import (
	"context"
	"errors"
	"io"

	"github.com/fadedpez/tong777/internal/logging"
	"github.com/fadedpez/tong777/pkg/entities"
	"github.com/fadedpez/tong777/pkg/services/session"
)

// App drives the login and game menus
type App struct {
	console *Console
	service *session.Service
	logger  *logging.Logger
}

// NewApp creates the interactive front end
func NewApp(c *Console, service *session.Service, logger *logging.Logger) *App {
	return &App{
		console: c,
		service: service,
		logger:  logger,
	}
}

var accountMenu = []string{"Login", "Register", "Quit"}

const (
	menuDeposit  = "Deposit"
	menuWithdraw = "Withdraw"
	menuStats    = "Stats"
	menuLogout   = "Logout"
)

// Run shows the account menu until the player quits or input ends
func (a *App) Run(ctx context.Context) error {
	a.console.Println("🎰 Welcome to tong777")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := a.console.Menu("Account", accountMenu)
		if err != nil {
			return ignoreEOF(err)
		}

		var sess *session.Session
		switch accountMenu[choice] {
		case "Login":
			sess, err = a.authenticate(ctx, a.service.Login)
		case "Register":
			sess, err = a.authenticate(ctx, a.service.Register)
		case "Quit":
			a.console.Println("👋 Bye")
			return nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			a.console.Rejected(err)
			continue
		}

		if err := a.play(ctx, sess); err != nil {
			return ignoreEOF(err)
		}
	}
}

func (a *App) authenticate(ctx context.Context, with func(context.Context, string, string) (*session.Session, error)) (*session.Session, error) {
	username, err := a.console.Ask("Username: ")
	if err != nil {
		return nil, err
	}
	password, err := a.console.Ask("Password: ")
	if err != nil {
		return nil, err
	}
	return with(ctx, username, password)
}

func gameMenu() []string {
	options := make([]string, 0, len(entities.GameKinds)+4)
	for _, kind := range entities.GameKinds {
		options = append(options, kind.String())
	}
	return append(options, menuDeposit, menuWithdraw, menuStats, menuLogout)
}

// play runs the game menu for a logged-in session; it always saves on the way out
func (a *App) play(ctx context.Context, sess *session.Session) (err error) {
	defer func() {
		if logoutErr := a.service.Logout(context.WithoutCancel(ctx), sess); logoutErr != nil {
			a.console.Rejected(logoutErr)
		}
	}()

	a.console.Printf("Hi %s, your balance is %s\n", sess.Username(), sess.Balance().StringFixed(2))
	options := gameMenu()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := a.console.Menu("Main menu", options)
		if err != nil {
			return err
		}

		if choice < len(entities.GameKinds) {
			kind := entities.GameKinds[choice]
			summary, err := sess.Play(ctx, kind, a.console)
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return err
			}
			if err != nil {
				a.logger.LogError(err)
				a.console.Rejected(err)
				continue
			}
			if summary.Rounds > 1 {
				a.console.Printf("%s: %d rounds, net %s\n", kind, summary.Rounds, summary.Net.StringFixed(2))
			}
			continue
		}

		switch options[choice] {
		case menuDeposit:
			amount, err := a.console.AskAmount("Deposit amount: ")
			if err != nil {
				return err
			}
			a.report(sess.Deposit(ctx, amount))
		case menuWithdraw:
			amount, err := a.console.AskAmount("Withdraw amount: ")
			if err != nil {
				return err
			}
			a.report(sess.Withdraw(ctx, amount))
		case menuStats:
			WriteStats(a.console.out, sess.Username(), sess.Balance(), sess.Recorder(), sess.Ledger().Statistics())
		case menuLogout:
			a.console.Printf("👋 See you, %s\n", sess.Username())
			return nil
		}
	}
}

// report shows a deposit or withdrawal result. A save error still means the ledger changed.
func (a *App) report(tx *entities.Transaction, err error) {
	if tx != nil {
		a.console.Printf("✅ %s %s, balance %s\n", tx.Type, tx.Amount.Abs().StringFixed(2), tx.BalanceAfter.StringFixed(2))
	}
	if err != nil {
		a.console.Rejected(err)
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
