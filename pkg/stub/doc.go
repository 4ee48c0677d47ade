// Package stub holds the configured request/response rules an imposter plays
// back, and the predicate matching that selects between them.
//
// A Stub pairs a list of predicates with a list of responses. Stubs are
// evaluated in insertion order and the first stub whose predicates all match
// wins; its responses are served round-robin across successive requests.
// A stub with no predicates matches every request.
//
// Predicates inspect the captured request fields (data, requestFrom) with
// equals/contains/startsWith/endsWith/matches operators, plus jsonpath and
// xpath selectors for structured payloads. Matching is case-insensitive
// unless caseSensitive is set, and any operator can be inverted with not.
package stub
