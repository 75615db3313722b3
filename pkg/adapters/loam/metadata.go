package loam

// NetMetadata represents the frontmatter of a net document stored in a Loam repository.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
// Places and arcs are kept loose so authors can write either scalars or lists.
type NetMetadata struct {
	Net     string `json:"net" mapstructure:"net"`
	Version string `json:"version" mapstructure:"version"`
	Label   string `json:"label" mapstructure:"label"`

	// Places accepts bare ids ("p_start") or maps ({id: p_start, label: Start}).
	Places      []any              `json:"places" mapstructure:"places"`
	Transitions []LoaderTransition `json:"transitions" mapstructure:"transitions"`

	// Variables declares guard variable types. A single-element list means a slice type.
	Variables map[string]any `json:"variables" mapstructure:"variables"`
}

// LoaderTransition is the frontmatter form of a transition.
// "from"/"to" and "when" are accepted as aliases of input/output and condition.
type LoaderTransition struct {
	ID        string `json:"id" mapstructure:"id"`
	Label     string `json:"label" mapstructure:"label"`
	Input     any    `json:"input" mapstructure:"input"`
	From      any    `json:"from" mapstructure:"from"`
	Output    any    `json:"output" mapstructure:"output"`
	To        any    `json:"to" mapstructure:"to"`
	Condition string `json:"condition" mapstructure:"condition"`
	When      string `json:"when" mapstructure:"when"`
}
