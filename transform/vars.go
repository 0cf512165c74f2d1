package transform

import (
	"fmt"
	"regexp"
	"strings"

	"dns-stats-datasource/models"
)

// $name, ${name}, ${name:format}, [[name]] and [[name:format]]
var variablePattern = regexp.MustCompile(`\$(\w+)|\$\{(\w+)(?::[^}]+)?\}|\[\[(\w+)(?::[^\]]+)?\]\]`)

// Interpolate substitutes dashboard variables from vars. Variables that are
// not in scope are left as written. Formats are accepted and ignored.
func Interpolate(s string, vars models.ScopedVars) string {
	if len(vars) == 0 || !strings.ContainsAny(s, "$[") {
		return s
	}
	return variablePattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := variablePattern.FindStringSubmatch(m)
		name := sub[1] + sub[2] + sub[3]
		v, ok := vars[name]
		if !ok {
			return m
		}
		return scopedValue(v)
	})
}

func scopedValue(v models.ScopedVar) string {
	switch val := v.Value.(type) {
	case nil:
		return v.Text
	case string:
		return val
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, len(val))
		for i, p := range val {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(val)
	}
}
