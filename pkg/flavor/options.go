package flavor

import "fmt"

// Options is the set of parser feature toggles a flavor implies.
// The zero value is the CommonMark baseline with every extension disabled.
type Options struct {
	// Table enables GFM pipe tables.
	Table bool

	// Strikethrough enables GFM ~~strikethrough~~ runs.
	Strikethrough bool

	// Autolink enables GFM bare URL, www and email autolinking.
	// Angle-bracket autolinks are core CommonMark and always recognized.
	Autolink bool

	// TagFilter enables GFM filtering of a fixed set of raw HTML tag names.
	TagFilter bool

	// TaskList enables GFM task-list items ([ ] / [x]) in lists.
	TaskList bool

	// LanguageTagged surfaces a code fence's language (the first word of the
	// info string) as a dedicated attribute on the code block node.
	LanguageTagged bool

	// Quirks enables legacy GitHub tree quirks; currently this collapses
	// directly nested strong emphasis into a single node.
	Quirks bool
}

// Canonical flag names, in display order. These are the names YAML
// definitions and Set accept.
const (
	FlagTable          = "table"
	FlagStrikethrough  = "strikethrough"
	FlagAutolink       = "autolink"
	FlagTagFilter      = "tagfilter"
	FlagTaskList       = "tasklist"
	FlagLanguageTagged = "language-tags"
	FlagQuirks         = "quirks"
)

// FlagNames returns every canonical flag name in display order.
func FlagNames() []string {
	return []string{
		FlagTable,
		FlagStrikethrough,
		FlagAutolink,
		FlagTagFilter,
		FlagTaskList,
		FlagLanguageTagged,
		FlagQuirks,
	}
}

// Set switches a flag by its canonical name. Unknown names are an error.
func (o *Options) Set(name string, on bool) error {
	switch name {
	case FlagTable:
		o.Table = on
	case FlagStrikethrough:
		o.Strikethrough = on
	case FlagAutolink:
		o.Autolink = on
	case FlagTagFilter:
		o.TagFilter = on
	case FlagTaskList:
		o.TaskList = on
	case FlagLanguageTagged:
		o.LanguageTagged = on
	case FlagQuirks:
		o.Quirks = on
	default:
		return fmt.Errorf("unknown flavor flag %q", name)
	}
	return nil
}

// Get reports the state of a flag by its canonical name.
func (o Options) Get(name string) (bool, error) {
	switch name {
	case FlagTable:
		return o.Table, nil
	case FlagStrikethrough:
		return o.Strikethrough, nil
	case FlagAutolink:
		return o.Autolink, nil
	case FlagTagFilter:
		return o.TagFilter, nil
	case FlagTaskList:
		return o.TaskList, nil
	case FlagLanguageTagged:
		return o.LanguageTagged, nil
	case FlagQuirks:
		return o.Quirks, nil
	default:
		return false, fmt.Errorf("unknown flavor flag %q", name)
	}
}

// Enabled returns the canonical names of all enabled flags, in display order.
func (o Options) Enabled() []string {
	var names []string
	for _, name := range FlagNames() {
		on, _ := o.Get(name)
		if on {
			names = append(names, name)
		}
	}
	return names
}

// Contains reports whether every flag enabled in other is also enabled in o.
func (o Options) Contains(other Options) bool {
	for _, name := range FlagNames() {
		mine, _ := o.Get(name)
		theirs, _ := other.Get(name)
		if theirs && !mine {
			return false
		}
	}
	return true
}
