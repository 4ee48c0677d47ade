package stub

import (
	"fmt"
	"regexp"
	"time"
)

// Request field names predicates can inspect.
const (
	FieldData        = "data"
	FieldRequestFrom = "requestFrom"
)

// Stub pairs predicates with the responses to serve when they match.
type Stub struct {
	// ID uniquely identifies the stub. Assigned a UUID by the repository
	// when left empty.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Predicates that must all hold for this stub to match.
	// An empty list matches every request.
	Predicates []Predicate `json:"predicates,omitempty" yaml:"predicates,omitempty"`

	// Responses served round-robin across matching requests.
	Responses []ResponseConfig `json:"responses,omitempty" yaml:"responses,omitempty"`
}

// Predicate is a single matching condition against the captured request.
// Exactly the operators that are set are evaluated, and all must hold.
type Predicate struct {
	Equals     map[string]string `json:"equals,omitempty" yaml:"equals,omitempty"`
	Contains   map[string]string `json:"contains,omitempty" yaml:"contains,omitempty"`
	StartsWith map[string]string `json:"startsWith,omitempty" yaml:"startsWith,omitempty"`
	EndsWith   map[string]string `json:"endsWith,omitempty" yaml:"endsWith,omitempty"`
	// Matches holds RE2 regular expressions per field.
	Matches map[string]string `json:"matches,omitempty" yaml:"matches,omitempty"`

	// JSONPath evaluates a selector against the data field parsed as JSON.
	JSONPath *Selector `json:"jsonpath,omitempty" yaml:"jsonpath,omitempty"`
	// XPath evaluates a selector against the data field parsed as XML.
	XPath *Selector `json:"xpath,omitempty" yaml:"xpath,omitempty"`

	// CaseSensitive disables the default case-insensitive comparison.
	// It does not affect jsonpath/xpath selector evaluation.
	CaseSensitive bool `json:"caseSensitive,omitempty" yaml:"caseSensitive,omitempty"`
	// Not inverts the predicate's result.
	Not bool `json:"not,omitempty" yaml:"not,omitempty"`
}

// Selector addresses a value inside a structured payload and the value it
// must equal. An empty Equals turns the selector into an existence check.
type Selector struct {
	Selector string `json:"selector" yaml:"selector"`
	Equals   string `json:"equals,omitempty" yaml:"equals,omitempty"`
}

// ResponseConfig describes one response strategy. Exactly one of the fields
// should be set; Is takes precedence, then Proxy, then Inject.
type ResponseConfig struct {
	// Is returns a canned payload.
	Is *IsResponse `json:"is,omitempty" yaml:"is,omitempty"`
	// Proxy forwards the request to an upstream service and relays its reply.
	Proxy *ProxyResponse `json:"proxy,omitempty" yaml:"proxy,omitempty"`
	// Inject evaluates an expression against the request and imposter state.
	Inject string `json:"inject,omitempty" yaml:"inject,omitempty"`
}

// IsResponse is a canned response payload.
type IsResponse struct {
	Data string `json:"data" yaml:"data"`
}

// ProxyResponse forwards the request to an upstream address.
type ProxyResponse struct {
	// To is the upstream address in host:port form.
	To string `json:"to" yaml:"to"`
}

// MatchRecord is a diagnostic entry recorded against a stub when the
// repository runs in debug mode.
type MatchRecord struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestFrom string    `json:"requestFrom"`
	Data        string    `json:"data"`
}

// Validate checks the stub's predicates and responses for configuration
// errors that would otherwise surface as silent non-matches at runtime.
func (s *Stub) Validate() error {
	for i := range s.Predicates {
		if err := s.Predicates[i].Validate(); err != nil {
			return fmt.Errorf("predicate %d: %w", i, err)
		}
	}
	for i, r := range s.Responses {
		if r.Is == nil && r.Proxy == nil && r.Inject == "" {
			return fmt.Errorf("response %d: no strategy configured", i)
		}
		if r.Proxy != nil && r.Proxy.To == "" {
			return fmt.Errorf("response %d: proxy requires a target address", i)
		}
	}
	return nil
}

// Validate checks the predicate's patterns and selectors compile.
func (p *Predicate) Validate() error {
	for field, pattern := range p.Matches {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("invalid pattern for %s: %w", field, err)
		}
	}
	if p.JSONPath != nil && p.JSONPath.Selector == "" {
		return fmt.Errorf("jsonpath requires a selector")
	}
	if p.XPath != nil && p.XPath.Selector == "" {
		return fmt.Errorf("xpath requires a selector")
	}
	return nil
}
