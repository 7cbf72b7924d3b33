// Package flavor defines Markdown dialects and the parser feature flags each
// implies. The two builtin flavors, CommonMark and GitHub, are always
// registered; further dialects can be registered programmatically or loaded
// from YAML definitions, so new flavors are data rather than new code paths.
package flavor

// Builtin flavor names. Lookup matches them exactly.
const (
	NameCommonMark = "CommonMark"
	NameGitHub     = "GitHub"
)

// Flavor is an immutable dialect: a name plus the Options it implies.
// The zero Flavor is invalid and returned by failed lookups.
type Flavor struct {
	name string
	opts Options
}

// New creates a flavor with the given name and options.
// It does not register the flavor; see Registry.Register.
func New(name string, opts Options) Flavor {
	return Flavor{name: name, opts: opts}
}

// Name returns the flavor's registered name.
func (f Flavor) Name() string {
	return f.name
}

// Options returns the feature flags this flavor implies.
func (f Flavor) Options() Options {
	return f.opts
}

// IsZero reports whether this is the invalid zero flavor.
func (f Flavor) IsZero() bool {
	return f.name == ""
}

// CommonMark is the baseline dialect: every extension disabled.
var CommonMark = Flavor{name: NameCommonMark}

// GitHub is GitHub Flavored Markdown: the CommonMark baseline with every
// GFM extension enabled.
var GitHub = Flavor{
	name: NameGitHub,
	opts: Options{
		Table:          true,
		Strikethrough:  true,
		Autolink:       true,
		TagFilter:      true,
		TaskList:       true,
		LanguageTagged: true,
		Quirks:         true,
	},
}
