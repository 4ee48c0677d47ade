package imposter

import (
	"encoding/base64"

	"golang.org/x/text/encoding/unicode"

	"github.com/imposterd/imposterd/pkg/protocol"
)

// decodePayload turns wire bytes into the textual request payload. Text
// mode decodes as UTF-8 with invalid sequences replaced, so a malformed
// payload never fails capture. Binary mode records the bytes base64-encoded.
func decodePayload(mode protocol.Mode, b []byte) string {
	if mode == protocol.ModeBinary {
		return base64.StdEncoding.EncodeToString(b)
	}
	decoded, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}

// encodePayload turns a response payload back into wire bytes. Binary mode
// expects base64; a payload that doesn't decode is written as-is.
func encodePayload(mode protocol.Mode, data string) []byte {
	if mode == protocol.ModeBinary {
		if raw, err := base64.StdEncoding.DecodeString(data); err == nil {
			return raw
		}
	}
	return []byte(data)
}
