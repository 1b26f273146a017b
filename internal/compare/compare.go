package compare

import (
	"strings"

	"golang.org/x/text/width"

	"github.com/kcwiki/questtool/internal/index"
	"github.com/kcwiki/questtool/internal/quest"
)

// limitedMemo marks a KC3 quest as time-limited.
const limitedMemo = "期間限定"

// Removal reasons reported by Filter.
const (
	ReasonMultiplexed = "multiplexed"
	ReasonLimited     = "time-limited"
	ReasonLimitedMemo = "time-limited memo"
)

// Removed is a quest dropped by Filter.
type Removed struct {
	Quest  Quest  `json:"quest" yaml:"quest"`
	Reason string `json:"reason" yaml:"reason"`
}

// Filter drops KC3 entries that are not regular quests: the eof sentinel,
// non-numeric keys, quests whose code is on the wiki's time-limited page,
// and quests whose memo marks them as time-limited.
func Filter(kc3 *Dataset, limitedCodes []string) (*Dataset, []Removed) {
	limited := make(map[string]bool, len(limitedCodes))
	for _, c := range limitedCodes {
		limited[c] = true
	}

	kept := NewDataset()
	var removed []Removed
	for _, q := range kc3.Quests() {
		switch {
		case q.ID == "eof":
			continue
		case !isNumeric(q.ID):
			removed = append(removed, Removed{Quest: q, Reason: ReasonMultiplexed})
		case limited[q.Code]:
			removed = append(removed, Removed{Quest: q, Reason: ReasonLimited})
		case strings.Contains(q.Memo, limitedMemo):
			removed = append(removed, Removed{Quest: q, Reason: ReasonLimitedMemo})
		default:
			kept.Add(q)
		}
	}
	return kept, removed
}

// FromAggregate converts aggregate records to a Dataset keyed by game_id.
func FromAggregate(records []*quest.Record) *Dataset {
	d := NewDataset()
	for _, r := range records {
		d.Add(Quest{
			ID:   r.ID,
			Code: r.WikiID(),
			Name: r.Name(),
			Desc: r.String("detail"),
		})
	}
	return d
}

// FormatCode folds full-width characters and strips the padding zero, so
// "Ａ０１", "A01" and "A1" compare equal.
func FormatCode(code string) string {
	return index.NormalizeCode(width.Fold.String(strings.TrimSpace(code)))
}

// Difference is a quest present in both sources with different codes.
type Difference struct {
	ID    string `json:"id" yaml:"id"`
	Left  Quest  `json:"left" yaml:"left"`
	Right Quest  `json:"right" yaml:"right"`
}

// Report is the result of Diff.
type Report struct {
	Missing   []Quest      `json:"missing" yaml:"missing"`
	Different []Difference `json:"different" yaml:"different"`
	Removed   []Removed    `json:"removed,omitempty" yaml:"removed,omitempty"`
}

// Total is the number of reported problems.
func (r *Report) Total() int {
	return len(r.Missing) + len(r.Different)
}

// Diff compares left against right in left's order. Quests missing from
// right are listed first, then quests whose formatted codes differ.
func Diff(left, right *Dataset) *Report {
	report := &Report{
		Missing:   []Quest{},
		Different: []Difference{},
	}

	for _, q := range left.Quests() {
		other, ok := right.Get(q.ID)
		if !ok {
			report.Missing = append(report.Missing, q)
			continue
		}
		if FormatCode(q.Code) != FormatCode(other.Code) {
			report.Different = append(report.Different, Difference{ID: q.ID, Left: q, Right: other})
		}
	}

	return report
}
