package tracker

type MarkKind string

const (
	MarkRecorded  MarkKind = "recorded"
	MarkPredicted MarkKind = "predicted"
)

type Mark struct {
	Kind     MarkKind
	Selected bool
}

// MarkedDates keys calendar marks by YYYY-MM-DD. A recorded entry wins
// over a prediction for the same day; only recorded days carry the
// selection flag.
func (s *Session) MarkedDates() map[string]Mark {
	marked := make(map[string]Mark, len(s.entries)+len(s.predictions))
	for _, entry := range s.entries {
		marked[entry.Date.String()] = Mark{
			Kind:     MarkRecorded,
			Selected: !s.selected.IsZero() && entry.Date.Equal(s.selected.Time),
		}
	}
	for _, prediction := range s.predictions {
		key := prediction.Date.String()
		if _, ok := marked[key]; ok {
			continue
		}
		marked[key] = Mark{Kind: MarkPredicted}
	}
	return marked
}
