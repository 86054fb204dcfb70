package history

import "time"

// Limit is how many entries are kept; older ones are dropped first.
const Limit = 10

// TimestampLayout renders an entry's local wall-clock time, e.g. "3:04:05 PM".
const TimestampLayout = "3:04:05 PM"

// Entry is one successful calculation. Entries are never modified after
// they are created.
type Entry struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
	Timestamp  string `json:"timestamp"`
}

// NewEntry stamps expression and result with t.
func NewEntry(expression, result string, t time.Time) Entry {
	return Entry{
		Expression: expression,
		Result:     result,
		Timestamp:  t.Format(TimestampLayout),
	}
}

// Prepend returns a new slice with e first, followed by at most limit-1 of
// entries. The input slice is not modified.
func Prepend(entries []Entry, e Entry, limit int) []Entry {
	if limit <= 0 {
		return nil
	}

	n := min(len(entries)+1, limit)
	out := make([]Entry, 0, n)
	out = append(out, e)
	out = append(out, entries[:n-1]...)
	return out
}
