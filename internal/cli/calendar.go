package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/cycletrack/internal/models"
	"github.com/terraincognita07/cycletrack/internal/tracker"
)

// RenderCalendar prints a Monday-first month grid. Recorded days carry "*",
// predicted days "~" and the selected recorded day "#".
func (r *Renderer) RenderCalendar(month time.Time, marks map[string]tracker.Mark) error {
	first := models.NewDay(time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC))
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var builder strings.Builder
	fmt.Fprintf(&builder, "%s %d\n", r.t(fmt.Sprintf("calendar.month.%d", int(month.Month()))), month.Year())
	for _, weekday := range strings.Fields(r.t("calendar.weekdays")) {
		fmt.Fprintf(&builder, "%-4s", weekday)
	}
	builder.WriteString("\n")

	offset := (int(first.Weekday()) + 6) % 7
	builder.WriteString(strings.Repeat("    ", offset))
	column := offset
	for dayNumber := 1; dayNumber <= daysInMonth; dayNumber++ {
		day := first.AddDays(dayNumber - 1)
		builder.WriteString(r.calendarCell(dayNumber, marks[day.String()]))
		column++
		if column == 7 && dayNumber != daysInMonth {
			builder.WriteString("\n")
			column = 0
		}
	}
	builder.WriteString("\n")
	fmt.Fprintf(&builder, "* %s  ~ %s  # %s\n",
		r.t("calendar.legend.recorded"),
		r.t("calendar.legend.predicted"),
		r.t("calendar.legend.selected"),
	)

	_, err := fmt.Fprint(r.out, builder.String())
	return err
}

func (r *Renderer) calendarCell(dayNumber int, mark tracker.Mark) string {
	marker := " "
	color := ""
	switch {
	case mark.Kind == tracker.MarkRecorded && mark.Selected:
		marker, color = "#", ansiSelected
	case mark.Kind == tracker.MarkRecorded:
		marker, color = "*", ansiRecorded
	case mark.Kind == tracker.MarkPredicted:
		marker, color = "~", ansiPredicted
	}

	cell := fmt.Sprintf("%2d%s", dayNumber, marker)
	if r.color && color != "" {
		cell = color + cell + ansiReset
	}
	return cell + " "
}
