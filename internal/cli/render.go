package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/terraincognita07/cycletrack/internal/i18n"
	"github.com/terraincognita07/cycletrack/internal/models"
	"github.com/terraincognita07/cycletrack/internal/services"
	"golang.org/x/term"
)

const (
	ansiReset     = "\x1b[0m"
	ansiRecorded  = "\x1b[1;35m"
	ansiPredicted = "\x1b[2;35m"
	ansiSelected  = "\x1b[7;35m"
)

// Renderer writes human readable views of cycle data.
type Renderer struct {
	out      io.Writer
	messages *i18n.Manager
	language string
	color    bool
}

// NewRenderer enables ANSI colour only when out is a terminal.
func NewRenderer(out io.Writer, messages *i18n.Manager, language string) *Renderer {
	return &Renderer{
		out:      out,
		messages: messages,
		language: messages.NormalizeLanguage(language),
		color:    isTerminal(out),
	}
}

func (r *Renderer) WithColor(enabled bool) *Renderer {
	r.color = enabled
	return r
}

func (r *Renderer) t(key string) string {
	return r.messages.Translate(r.language, key)
}

func (r *Renderer) Message(key string, args ...any) error {
	_, err := fmt.Fprintln(r.out, r.messages.Translatef(r.language, key, args...))
	return err
}

func (r *Renderer) RenderInsights(insights services.Insights) error {
	notEnough := r.t("insights.not_enough_data")

	average := notEnough
	if insights.AverageCycleLength != nil {
		average = r.messages.Translatef(r.language, "insights.days", *insights.AverageCycleLength)
	}
	next := notEnough
	if insights.NextPredictedDate != nil {
		next = insights.NextPredictedDate.String()
	}

	writer := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, r.t("insights.title"))
	fmt.Fprintf(writer, "%s:\t%s\n", r.t("insights.average_cycle_length"), average)
	fmt.Fprintf(writer, "%s:\t%s\n", r.t("insights.next_predicted_cycle"), next)
	fmt.Fprintf(writer, "%s:\t%d\n", r.t("insights.total_tracked_cycles"), insights.TotalTrackedCycles)
	return writer.Flush()
}

func (r *Renderer) RenderEntries(entries []models.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(r.out, r.t("entries.empty"))
		return err
	}

	writer := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
		r.t("entries.column.id"),
		r.t("entries.column.date"),
		r.t("entries.column.flow"),
		r.t("entries.column.symptoms"),
		r.t("entries.column.notes"),
	)
	for _, entry := range entries {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n",
			entry.ID,
			entry.Date.String(),
			r.flowLabel(entry.FlowIntensity),
			formatSymptoms(entry.Symptoms),
			singleLine(entry.Notes),
		)
	}
	return writer.Flush()
}

func (r *Renderer) RenderPredictions(predictions []models.Prediction) error {
	if len(predictions) == 0 {
		_, err := fmt.Fprintln(r.out, r.t("predictions.empty"))
		return err
	}

	writer := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(writer, "%s\t%s\n", r.t("predictions.column.date"), r.t("predictions.column.cycle_length"))
	for _, prediction := range predictions {
		length := "-"
		if prediction.PredictedCycleLength > 0 {
			length = r.messages.Translatef(r.language, "insights.days", prediction.PredictedCycleLength)
		}
		fmt.Fprintf(writer, "%s\t%s\n", prediction.Date.String(), length)
	}
	return writer.Flush()
}

func (r *Renderer) flowLabel(flow string) string {
	key := "flow." + flow
	if label := r.t(key); label != key {
		return label
	}
	return flow
}

func formatSymptoms(symptoms models.Symptoms) string {
	if formatted := symptoms.Format(", "); formatted != "" {
		return formatted
	}
	return "-"
}

func singleLine(value string) string {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return "-"
	}
	return value
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
