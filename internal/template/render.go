package template

import "strings"

// Placeholder markers embedded in the prompt template files.
const (
	PreviousCheatsheet = "PREVIOUS_CHEATSHEET"
	Question           = "QUESTION"
	ModelAnswer        = "MODEL_ANSWER"
)

// Marker returns the literal placeholder for a binding name, e.g. [[QUESTION]].
func Marker(name string) string {
	return "[[" + name + "]]"
}

// Render substitutes every literal occurrence of each binding's placeholder
// marker with its value. Placeholders with no corresponding binding are left
// untouched: partially-bound templates degrade gracefully rather than failing.
func Render(tmpl string, bindings map[string]string) string {
	out := tmpl
	for name, value := range bindings {
		out = strings.ReplaceAll(out, Marker(name), value)
	}
	return out
}
