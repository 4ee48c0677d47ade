package stub

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/ohler55/ojg/jp"
)

// Evaluate reports whether the predicate holds against the captured request
// fields. Invalid patterns and selectors are treated as non-matches rather
// than errors, so a misconfigured predicate never breaks the connection.
func (p *Predicate) Evaluate(fields map[string]string) bool {
	matched := p.evaluate(fields)
	if p.Not {
		return !matched
	}
	return matched
}

func (p *Predicate) evaluate(fields map[string]string) bool {
	for field, expected := range p.Equals {
		if !p.compare(fields[field], expected, func(a, b string) bool { return a == b }) {
			return false
		}
	}
	for field, expected := range p.Contains {
		if !p.compare(fields[field], expected, strings.Contains) {
			return false
		}
	}
	for field, expected := range p.StartsWith {
		if !p.compare(fields[field], expected, strings.HasPrefix) {
			return false
		}
	}
	for field, expected := range p.EndsWith {
		if !p.compare(fields[field], expected, strings.HasSuffix) {
			return false
		}
	}
	for field, pattern := range p.Matches {
		if !matchPattern(pattern, fields[field]) {
			return false
		}
	}
	if p.JSONPath != nil {
		if !matchJSONPath(p.JSONPath, fields[FieldData]) {
			return false
		}
	}
	if p.XPath != nil {
		if !matchXPath(p.XPath, fields[FieldData]) {
			return false
		}
	}
	return true
}

func (p *Predicate) compare(actual, expected string, cmp func(a, b string) bool) bool {
	if !p.CaseSensitive {
		actual = strings.ToLower(actual)
		expected = strings.ToLower(expected)
	}
	return cmp(actual, expected)
}

// matchPattern checks the value against a regex pattern.
// An invalid pattern is a graceful non-match.
func matchPattern(pattern, value string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(value)
}

// matchJSONPath evaluates a JSONPath selector against the payload parsed as
// JSON. A payload that is not valid JSON does not match.
func matchJSONPath(sel *Selector, payload string) bool {
	var data interface{}
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return false
	}

	expr, err := jp.ParseString(sel.Selector)
	if err != nil {
		return false
	}

	results := expr.Get(data)
	if len(results) == 0 {
		return false
	}
	if sel.Equals == "" {
		// Existence check
		return true
	}
	for _, r := range results {
		if stringifyJSON(r) == sel.Equals {
			return true
		}
	}
	return false
}

// matchXPath evaluates an XPath selector against the payload parsed as XML.
// A payload that is not well-formed XML does not match.
func matchXPath(sel *Selector, payload string) bool {
	doc, err := xmlquery.Parse(strings.NewReader(payload))
	if err != nil {
		return false
	}

	nodes, err := xmlquery.QueryAll(doc, sel.Selector)
	if err != nil || len(nodes) == 0 {
		return false
	}
	if sel.Equals == "" {
		return true
	}
	for _, n := range nodes {
		if n.InnerText() == sel.Equals {
			return true
		}
	}
	return false
}

// stringifyJSON renders a JSONPath result for comparison against the
// predicate's expected value.
func stringifyJSON(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		// json.Unmarshal decodes all numbers as float64
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	case nil:
		return "null"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
