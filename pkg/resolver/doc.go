// Package resolver turns a captured request into a raw response by applying
// stub strategies.
//
// The Resolver interface is the seam between the connection pipeline and the
// matching logic: the pipeline hands over the captured request and gets back
// a raw response to normalize and write. StubResolver is the standard
// implementation, supporting three strategies per stub response:
//
//   - is: return the canned payload verbatim
//   - proxy: forward the request payload to an upstream TCP service and
//     relay its reply
//   - inject: evaluate an expression against the request and the imposter's
//     state mapping, so stubs can compute replies and persist values across
//     requests
//
// When no stub matches, the resolver returns an empty raw response; the
// pipeline's post-processing substitutes the imposter's default payload.
package resolver
