package attrib

// Action is what a state change does with one attribute kind.
type Action uint8

// Possible values for Action.
const (
	// IssueNew issues a kind that was not active before.
	IssueNew Action = iota
	// ReissueChanged issues a new value for an active kind.
	ReissueChanged
	// SkipUnchanged leaves an active kind alone because the requested
	// value compares equal to the active one.
	SkipUnchanged
	// UnissueAbsent resets an active kind missing from a complete request.
	UnissueAbsent
	// UnissueNull resets an active kind that a complete request explicitly
	// unsets.
	UnissueNull
)

var actionNames = [...]string{
	IssueNew:       "ISSUE_NEW",
	ReissueChanged: "REISSUE_CHANGED",
	SkipUnchanged:  "SKIP_UNCHANGED",
	UnissueAbsent:  "UNISSUE_ABSENT",
	UnissueNull:    "UNISSUE_NULL",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "Action(?)"
}

// Issues reports whether the action programs the backend.
func (a Action) Issues() bool {
	return a != SkipUnchanged
}

// Delta is one step of a state change.
//
// For IssueNew, ReissueChanged and SkipUnchanged, Value is the requested
// value. For the unissue actions, Value is the initial value that resets
// the backend. Previous is the value that was active before, or nil for
// IssueNew.
type Delta struct {
	Kind     Kind
	Action   Action
	Value    Value
	Previous Value
}

// Merge changes s into the state described by requested and calls fn for
// every kind it looked at, in ascending kind order. fn may be nil.
//
// If complete is true, requested describes the whole state: active kinds
// missing from requested, or explicitly unset in it, are removed from s
// and reported with their initial value. If complete is false, such kinds
// are left untouched and not reported.
//
// Requested kinds that are unset and not active are consumed silently.
// Nil values never end up in s.
//
// The walk is a single pass over both sets. Encountering kinds out of
// order is a programming error and panics. s must not be nil; requested
// may be.
func (s *Set) Merge(requested *Set, complete bool, fn func(Delta)) {
	if fn == nil {
		fn = func(Delta) {}
	}

	cur := s.entries
	var req []Entry
	if requested != nil {
		req = requested.entries
	}

	mustBeSorted(cur)
	mustBeSorted(req)

	out := s.scratch[:0]
	i, j := 0, 0
	for i < len(cur) && j < len(req) {
		c, r := cur[i], req[j]
		if c.Value == nil {
			// not issued, nothing to reset
			i++
			continue
		}

		switch {
		case r.Kind < c.Kind:
			if r.Value != nil {
				fn(Delta{Kind: r.Kind, Action: IssueNew, Value: r.Value})
				out = append(out, r)
			}
			j++

		case c.Kind < r.Kind:
			if complete {
				fn(Delta{Kind: c.Kind, Action: UnissueAbsent, Value: c.Value.MakeInitial(), Previous: c.Value})
			} else {
				out = append(out, c)
			}
			i++

		default:
			switch {
			case r.Value == nil:
				if complete {
					fn(Delta{Kind: c.Kind, Action: UnissueNull, Value: c.Value.MakeInitial(), Previous: c.Value})
				} else {
					out = append(out, c)
				}
			case r.Value.CompareTo(c.Value) != 0:
				fn(Delta{Kind: r.Kind, Action: ReissueChanged, Value: r.Value, Previous: c.Value})
				out = append(out, r)
			default:
				fn(Delta{Kind: c.Kind, Action: SkipUnchanged, Value: r.Value, Previous: c.Value})
				out = append(out, c)
			}
			i++
			j++
		}
	}

	for ; j < len(req); j++ {
		r := req[j]
		if r.Value != nil {
			fn(Delta{Kind: r.Kind, Action: IssueNew, Value: r.Value})
			out = append(out, r)
		}
	}

	for ; i < len(cur); i++ {
		c := cur[i]
		if c.Value == nil {
			continue
		}
		if complete {
			fn(Delta{Kind: c.Kind, Action: UnissueAbsent, Value: c.Value.MakeInitial(), Previous: c.Value})
		} else {
			out = append(out, c)
		}
	}

	clear(s.entries)
	s.scratch = s.entries[:0]
	s.entries = out
}

// MergeDiff changes current into the state described by requested and
// returns the deltas in issue order. See [Set.Merge] for the semantics.
// A nil current is an empty state; the deltas are computed against a
// temporary set.
func MergeDiff(current, requested *Set, complete bool) []Delta {
	if current == nil {
		current = &Set{}
	}
	deltas := make([]Delta, 0, max(current.Len(), requested.Len()))
	current.Merge(requested, complete, func(d Delta) {
		deltas = append(deltas, d)
	})
	return deltas
}

// mustBeSorted panics unless the kinds of entries are strictly ascending.
// Sets built through the API always are; anything else would corrupt the
// active state.
func mustBeSorted(entries []Entry) {
	for i := 1; i < len(entries); i++ {
		if entries[i].Kind <= entries[i-1].Kind {
			panic("attrib: set not sorted by kind at " + entries[i].Kind.String())
		}
	}
}
