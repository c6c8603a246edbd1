package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/cycletrack/internal/cli"
	"github.com/terraincognita07/cycletrack/internal/client"
	"github.com/terraincognita07/cycletrack/internal/config"
	"github.com/terraincognita07/cycletrack/internal/i18n"
	"github.com/terraincognita07/cycletrack/internal/tracker"
)

type rootOptions struct {
	apiURL   string
	userID   string
	language string
	dbPath   string

	languageFlag bool
	cfg          config.Config
}

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(stdout io.Writer, stderr io.Writer) *cobra.Command {
	options := &rootOptions{}

	root := &cobra.Command{
		Use:          "cycletrack",
		Short:        "Menstrual cycle tracker server and client",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return options.load(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&options.apiURL, "api-url", "", "cycles API base URL (default from CYCLETRACK_API_URL)")
	flags.StringVar(&options.userID, "user", "", "user identifier (default from CYCLETRACK_USER)")
	flags.StringVar(&options.language, "lang", "", "output language: en or ru (default from DEFAULT_LANGUAGE or the locale)")
	flags.StringVar(&options.dbPath, "db", "", "SQLite database path (default from DB_PATH)")

	root.AddCommand(
		newServeCommand(options),
		newEntriesCommand(options),
		newPredictionsCommand(options),
		newInsightsCommand(options),
		newCalendarCommand(options),
		newExportCommand(options),
		newRefreshPredictionsCommand(options),
	)
	return root
}

func (options *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-url") {
		cfg.APIURL = options.apiURL
	}
	if cmd.Flags().Changed("user") {
		cfg.UserID = options.userID
	}
	options.languageFlag = cmd.Flags().Changed("lang")
	if options.languageFlag {
		cfg.Language = options.language
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = options.dbPath
	}
	options.cfg = cfg
	return nil
}

func (options *rootOptions) apiClient() *client.Client {
	return client.New(options.cfg.APIURL, options.cfg.HTTPTimeout)
}

func (options *rootOptions) session() (*tracker.Session, error) {
	if options.cfg.UserID == "" {
		return nil, fmt.Errorf("user is required: pass --user or set CYCLETRACK_USER")
	}
	return tracker.NewSession(options.apiClient(), options.cfg.UserID), nil
}

func (options *rootOptions) renderer(out io.Writer) (*cli.Renderer, error) {
	messages, err := i18n.NewEmbeddedManager(i18n.LangEN)
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}
	language := options.cfg.Language
	if options.languageFlag && !messages.Supports(language) {
		return nil, fmt.Errorf("unsupported language %q: use %s", language, strings.Join(messages.SupportedLanguages(), " or "))
	}
	if language == "" {
		language = messages.DetectFromLocale(os.Getenv("LC_ALL"), os.Getenv("LC_MESSAGES"), os.Getenv("LANG"))
	}
	return cli.NewRenderer(out, messages, language), nil
}
