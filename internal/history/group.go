package history

import (
	"time"

	"github.com/sandeepkv93/focusboard/internal/model"
)

// DateLayout is the day label used for grouping, export markers and webhook
// payloads (M/D/YYYY).
const DateLayout = "1/2/2006"

func DateLabel(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

type DayGroup struct {
	Date        string
	Submissions []model.Submission
}

// GroupByDay buckets subs by calendar date in loc. Days appear in order of
// first appearance and each day keeps the input order.
func GroupByDay(subs []model.Submission, loc *time.Location) []DayGroup {
	groups := make([]DayGroup, 0)
	index := make(map[string]int)
	for _, sub := range subs {
		date := DateLabel(sub.Timestamp, loc)
		i, ok := index[date]
		if !ok {
			i = len(groups)
			index[date] = i
			groups = append(groups, DayGroup{Date: date})
		}
		groups[i].Submissions = append(groups[i].Submissions, sub)
	}
	return groups
}
