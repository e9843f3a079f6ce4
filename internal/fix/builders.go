package fix

// Edit replaces text[Start:End] of one span with After. Before holds the
// replaced text and guards against stale offsets.
type Edit struct {
	Start  int
	End    int
	Before string
	After  string
	Note   string
}

// Len returns the length of the replaced range.
func (e Edit) Len() int { return e.End - e.Start }

// Delta is the length change produced by the edit.
func (e Edit) Delta() int { return len(e.After) - len(e.Before) }

// Replace creates an edit replacing text[start:end] with after.
func Replace(text string, start, end int, after, note string) Edit {
	return Edit{
		Start:  start,
		End:    end,
		Before: text[start:end],
		After:  after,
		Note:   note,
	}
}

// Wrap surrounds text[start:end] with prefix and suffix as a single edit.
func Wrap(text string, start, end int, prefix, suffix, note string) Edit {
	return Replace(text, start, end, prefix+text[start:end]+suffix, note)
}
