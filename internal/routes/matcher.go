package routes

import (
	"net/http"
	"regexp"
	"strings"
)

// escapedParamPattern matches a {name} placeholder after regexp.QuoteMeta
var escapedParamPattern = regexp.MustCompile(`\\{([^}]+)\\}`)

// compiledTemplate is a path template with its matching pattern
type compiledTemplate struct {
	template  string
	pattern   *regexp.Regexp
	paramKeys []string
}

// Matcher resolves request URLs to registered path templates
type Matcher struct {
	templates []compiledTemplate
	known     map[string]bool
	reserved  []string
}

// Compile converts a path template into an anchored pattern. Each {name}
// placeholder becomes a non-greedy capture that cannot span a path
// separator, and a trailing slash is tolerated.
func Compile(template string) (*regexp.Regexp, []string) {
	var paramKeys []string

	escaped := regexp.QuoteMeta(template)
	result := escapedParamPattern.ReplaceAllStringFunc(escaped, func(match string) string {
		paramKeys = append(paramKeys, match[2:len(match)-2]) // Remove \{ and \}
		return `([^/]+?)`
	})

	pattern := regexp.MustCompile("^" + strings.TrimSuffix(result, "/") + "/?$")
	return pattern, paramKeys
}

// NewMatcher compiles the snapshot templates in route table order. Requests
// under any reserved prefix are never matched.
func NewMatcher(routes []Route, reserved ...string) *Matcher {
	m := &Matcher{
		templates: make([]compiledTemplate, 0, len(routes)),
		known:     make(map[string]bool, len(routes)),
		reserved:  reserved,
	}
	for _, r := range routes {
		pattern, keys := Compile(r.Template)
		m.templates = append(m.templates, compiledTemplate{
			template:  r.Template,
			pattern:   pattern,
			paramKeys: keys,
		})
		m.known[r.Template] = true
	}
	return m
}

// Resolve returns the template rawURL belongs to. An exact template key
// wins; otherwise the first template in route table order whose pattern
// matches the query-less path is returned. OPTIONS requests and reserved
// documentation paths never resolve.
func (m *Matcher) Resolve(method, rawURL string) (string, bool) {
	if rawURL == "" || strings.EqualFold(method, http.MethodOptions) {
		return "", false
	}

	path, _, _ := strings.Cut(rawURL, "?")
	if hasPrefix(path, m.reserved) {
		return "", false
	}

	if m.known[rawURL] {
		return rawURL, true
	}

	for _, t := range m.templates {
		if t.pattern.MatchString(path) {
			return t.template, true
		}
	}

	return "", false
}

// Templates returns the compiled templates in matching order
func (m *Matcher) Templates() []string {
	result := make([]string, len(m.templates))
	for i, t := range m.templates {
		result[i] = t.template
	}
	return result
}
