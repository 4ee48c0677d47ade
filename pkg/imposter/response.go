package imposter

import (
	"github.com/imposterd/imposterd/pkg/resolver"
)

// Response is a complete, well-formed reply. After normalization the Data
// field is always present.
type Response struct {
	Data string `json:"data"`
}

// normalize turns a resolver's possibly partial response into a complete
// one. Data present in the raw response passes through verbatim; a missing
// or empty data field is substituted with the imposter's default payload.
// Never fails, including on a nil raw response.
func normalize(raw *resolver.RawResponse, defaultData string) Response {
	if raw != nil && raw.Data != "" {
		return Response{Data: raw.Data}
	}
	return Response{Data: defaultData}
}
