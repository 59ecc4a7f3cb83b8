// terminal is an interactive reservation terminal. It runs the command
// grammar in-process over the in-memory store, so bookings live only as
// long as the program. Confirmation emails go through the transport
// configured in the environment.
package main

import (
	"context"
	"fmt"
	"os"

	"airops-service/internal/domain/repository"
	"airops-service/internal/infrastructure/config"
	"airops-service/internal/infrastructure/oauth"
	"airops-service/internal/infrastructure/router"
	"airops-service/internal/infrastructure/seed"
	"airops-service/internal/interface/gmail"
	storeRepo "airops-service/internal/interface/repository"
	"airops-service/internal/usecase"
	"airops-service/pkg/logger"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	seedFile := cfg.FlightSeedFile
	flagSet := pflag.NewFlagSet("terminal", pflag.ContinueOnError)
	flagSet.StringVar(&seedFile, "seed", seedFile, "TOML flight seed file (default: built-in schedule)")
	flagSet.StringVar(&cfg.EmailProvider, "provider", cfg.EmailProvider, "email transport: mailgun or gmail")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	catalog, err := seed.Load(seedFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Log output would corrupt the alt-screen display
	log := logger.NewNopLogger()

	mailer, err := newMailer(ctx, cfg, log)
	if err != nil {
		return err
	}

	store := storeRepo.NewSessionStore(catalog.Flights)
	dispatcher := usecase.NewEmailDispatcher(ctx, mailer, store.SentEmails(), store.Logs(), nil, log, cfg.SendTimeout)
	commands := router.NewCommandRouter(log)
	usecase.RegisterCommands(commands, usecase.CommandDeps{
		Flights:    store.Flights(),
		Passengers: store.Passengers(),
		SentEmails: store.SentEmails(),
		Logs:       store.Logs(),
		Dispatcher: dispatcher,
		Logger:     log,
		BagDelay:   cfg.BagEnrichDelay,
	})
	terminal := usecase.NewTerminal(commands, nil, log)

	program := tea.NewProgram(newModel(ctx, terminal), tea.WithAltScreen())
	_, err = program.Run()

	cancel()
	dispatcher.Wait()
	return err
}

func newMailer(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.Mailer, error) {
	switch cfg.EmailProvider {
	case config.ProviderMailgun:
		return storeRepo.NewMailgunRepository(cfg.MailgunAPIKey, cfg.MailgunDomain, cfg.MailgunBaseURL, cfg.EmailFrom, cfg.SendTimeout, log), nil
	case config.ProviderGmail:
		gmailOAuth := oauth.NewGmailOAuth(cfg.GmailClientID, cfg.GmailClientSecret, cfg.GmailRefreshToken, log)
		return gmail.NewGmailSender(ctx, gmailOAuth.GetTokenSource(ctx), cfg.EmailFrom, log)
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.EmailProvider)
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Reservation terminal: type commands at the prompt, HELP lists them.

Bookings are kept in memory and discarded on exit. Email settings are
read from the environment (.env is loaded when present).

Usage:
  terminal [flags]

Keys:
  enter        run the command line
  up/down      command history
  pgup/pgdown  scroll the screen
  ctrl+c, esc  quit

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
