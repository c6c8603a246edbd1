package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/cycletrack/internal/cli"
	"github.com/terraincognita07/cycletrack/internal/models"
	"github.com/terraincognita07/cycletrack/internal/tracker"
)

type entryFlags struct {
	flow     string
	symptoms []string
	notes    string
}

func (flags *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flags.flow, "flow", models.FlowNone, "flow intensity: none, light, medium or heavy")
	cmd.Flags().StringArrayVar(&flags.symptoms, "symptom", nil, "symptom as name or name=severity (repeatable)")
	cmd.Flags().StringVar(&flags.notes, "notes", "", "free-form notes")
}

// apply copies the flags the user actually set onto draft.
func (flags *entryFlags) apply(cmd *cobra.Command, draft *tracker.Draft) error {
	if cmd.Flags().Changed("flow") {
		draft.FlowIntensity = strings.ToLower(strings.TrimSpace(flags.flow))
	}
	if cmd.Flags().Changed("symptom") {
		symptoms, err := parseSymptoms(flags.symptoms)
		if err != nil {
			return err
		}
		draft.Symptoms = symptoms
	}
	if cmd.Flags().Changed("notes") {
		draft.Notes = flags.notes
	}
	return nil
}

func parseSymptoms(values []string) (models.Symptoms, error) {
	symptoms := models.Symptoms{}
	for _, value := range values {
		name, severity, hasSeverity := strings.Cut(value, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid symptom %q", value)
		}
		if !hasSeverity {
			symptoms[name] = true
			continue
		}
		symptoms[name] = strings.TrimSpace(severity)
	}
	return symptoms, nil
}

func newEntriesCommand(options *rootOptions) *cobra.Command {
	entries := &cobra.Command{
		Use:   "entries",
		Short: "List and edit cycle entries",
	}
	entries.AddCommand(
		newEntriesListCommand(options),
		newEntriesAddCommand(options),
		newEntriesUpdateCommand(options),
		newEntriesDeleteCommand(options),
	)
	return entries
}

func newEntriesListCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded entries in date order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, renderer, err := loadSession(cmd, options)
			if err != nil {
				return err
			}
			return renderer.RenderEntries(session.Entries())
		},
	}
}

func newEntriesAddCommand(options *rootOptions) *cobra.Command {
	flags := &entryFlags{}
	cmd := &cobra.Command{
		Use:   "add YYYY-MM-DD",
		Short: "Record a new entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := models.ParseDay(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("invalid date %q: use YYYY-MM-DD", args[0])
			}
			session, renderer, err := newSessionAndRenderer(cmd, options)
			if err != nil {
				return err
			}

			draft := tracker.NewDraft(day, nil)
			if err := flags.apply(cmd, &draft); err != nil {
				return err
			}
			if _, err := session.SaveEntry(cmd.Context(), day, draft); err != nil {
				return err
			}
			return renderer.Message("entries.saved", day.String())
		},
	}
	flags.register(cmd)
	return cmd
}

func newEntriesUpdateCommand(options *rootOptions) *cobra.Command {
	flags := &entryFlags{}
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change an existing entry; unset flags keep their values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryIDArg(args[0])
			if err != nil {
				return err
			}
			session, renderer, err := loadSession(cmd, options)
			if err != nil {
				return err
			}

			existing, ok := findEntry(session.Entries(), id)
			if !ok {
				return fmt.Errorf("entry %d not found", id)
			}
			draft := session.Select(existing.Date)
			if err := flags.apply(cmd, &draft); err != nil {
				return err
			}
			if _, err := session.Submit(cmd.Context(), draft); err != nil {
				return err
			}
			return renderer.Message("entries.updated", id)
		},
	}
	flags.register(cmd)
	return cmd
}

func newEntriesDeleteCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryIDArg(args[0])
			if err != nil {
				return err
			}
			session, renderer, err := newSessionAndRenderer(cmd, options)
			if err != nil {
				return err
			}
			if err := session.DeleteEntry(cmd.Context(), id); err != nil {
				return err
			}
			return renderer.Message("entries.deleted")
		},
	}
}

func newPredictionsCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "predictions",
		Short: "Show predicted cycle starts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, renderer, err := loadSession(cmd, options)
			if err != nil {
				return err
			}
			return renderer.RenderPredictions(session.Predictions())
		},
	}
}

func newInsightsCommand(options *rootOptions) *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show average cycle length, next predicted cycle and total tracked cycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if remote {
				if options.cfg.UserID == "" {
					return fmt.Errorf("user is required: pass --user or set CYCLETRACK_USER")
				}
				renderer, err := options.renderer(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				insights, err := options.apiClient().Insights(cmd.Context(), options.cfg.UserID)
				if err != nil {
					return err
				}
				return renderer.RenderInsights(insights)
			}

			session, renderer, err := loadSession(cmd, options)
			if err != nil {
				return err
			}
			return renderer.RenderInsights(session.Insights())
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "ask the server to compute insights")
	return cmd
}

func newCalendarCommand(options *rootOptions) *cobra.Command {
	var month string
	var selected string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print a month with recorded and predicted days marked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shown := time.Now().In(options.cfg.Location)
			if month != "" {
				parsed, err := time.Parse("2006-01", strings.TrimSpace(month))
				if err != nil {
					return fmt.Errorf("invalid month %q: use YYYY-MM", month)
				}
				shown = parsed
			}

			session, renderer, err := loadSession(cmd, options)
			if err != nil {
				return err
			}
			if selected != "" {
				day, err := models.ParseDay(strings.TrimSpace(selected))
				if err != nil {
					return fmt.Errorf("invalid date %q: use YYYY-MM-DD", selected)
				}
				session.Select(day)
			}
			return renderer.RenderCalendar(shown, session.MarkedDates())
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month to show as YYYY-MM (default current month)")
	cmd.Flags().StringVar(&selected, "select", "", "highlight this recorded day (YYYY-MM-DD)")
	return cmd
}

func newExportCommand(options *rootOptions) *cobra.Command {
	var format, from, to, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download entries as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if options.cfg.UserID == "" {
				return fmt.Errorf("user is required: pass --user or set CYCLETRACK_USER")
			}
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "csv" && format != "json" {
				return fmt.Errorf("invalid export format %q: use csv or json", format)
			}

			body, err := options.apiClient().Export(cmd.Context(), options.cfg.UserID, format, from, to)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			if err := os.WriteFile(output, body, 0o600); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "export format: csv or json")
	cmd.Flags().StringVar(&from, "from", "", "first day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day to include (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
	return cmd
}

func newRefreshPredictionsCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-predictions",
		Short: "Rebuild stored prediction snapshots directly in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID := ""
			if cmd.Flags().Changed("user") {
				userID = options.cfg.UserID
			}
			return cli.RunRefreshPredictionsCommand(options.cfg.DBPath, userID, cmd.OutOrStdout())
		},
	}
}

func newSessionAndRenderer(cmd *cobra.Command, options *rootOptions) (*tracker.Session, *cli.Renderer, error) {
	session, err := options.session()
	if err != nil {
		return nil, nil, err
	}
	renderer, err := options.renderer(cmd.OutOrStdout())
	if err != nil {
		return nil, nil, err
	}
	return session, renderer, nil
}

func loadSession(cmd *cobra.Command, options *rootOptions) (*tracker.Session, *cli.Renderer, error) {
	session, renderer, err := newSessionAndRenderer(cmd, options)
	if err != nil {
		return nil, nil, err
	}
	if err := session.Load(cmd.Context()); err != nil {
		return nil, nil, err
	}
	return session, renderer, nil
}

func parseEntryIDArg(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid entry id %q", raw)
	}
	return uint(id), nil
}

func findEntry(entries []models.Entry, id uint) (models.Entry, bool) {
	for _, entry := range entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return models.Entry{}, false
}
