// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bodyparser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// JSON returns middleware that ingests JSON request bodies.
//
// Defaults: content types "application/json" and "+json" suffixes, 100 KiB
// limit, utf-8 charset, UTF-family charset validation per RFC 7159 §8.1, and
// strict mode (the body must be an object or array). All defaults can be
// overridden per option.
//
// Handlers read the result with [Decode] or [DecodeTo]:
//
//	mux.Handle("/users", bodyparser.JSON()(http.HandlerFunc(createUser)))
//
//	func createUser(w http.ResponseWriter, r *http.Request) {
//	    user, err := bodyparser.Decode[CreateUserRequest](r)
//	    ...
//	}
//
// Panics on invalid options, like [MustNew].
func JSON(opts ...Option) Middleware {
	base := []Option{
		WithTypes("application/json", "+json"),
		WithDefaultCharset("utf-8"),
		WithCharsetValidator(IsUTFCharset),
		WithTextDecoding(),
	}
	p := MustNew(append(base, opts...)...)

	return p.middleware(p.jsonPost)
}

// jsonPost enforces strict mode on the decoded text.
func (p *Parser) jsonPost(w http.ResponseWriter, r *http.Request, st *requestState) bool {
	if p.cfg.strict {
		switch firstToken(st.text) {
		case '{', '[':
		default:
			p.reject(w, r, st, http.StatusBadRequest,
				fmt.Errorf("%w: strict mode requires an object or array", ErrMalformedBody))

			return false
		}
	}

	return true
}

// firstToken returns the first non-whitespace byte of s, or 0.
func firstToken(s string) byte {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return s[i]
		}
	}

	return 0
}

// Decode unmarshals the ingested JSON body of r into type T.
//
// Example:
//
//	user, err := bodyparser.Decode[CreateUserRequest](r)
//
// Errors:
//   - [ErrBodyNotIngested]: no body was accepted for this request
//   - json decode errors for type mismatches or trailing garbage
func Decode[T any](r *http.Request) (T, error) {
	var out T
	err := DecodeTo(r, &out)

	return out, err
}

// DecodeTo unmarshals the ingested JSON body of r into out.
//
// Example:
//
//	var user CreateUserRequest
//	err := bodyparser.DecodeTo(r, &user)
func DecodeTo(r *http.Request, out any) error {
	st := stateOf(r)
	if st == nil || st.body == nil {
		return ErrBodyNotIngested
	}

	src := st.body
	if st.hasText {
		// Decoded text is already normalized to utf-8.
		src = []byte(st.text)
	}

	return json.Unmarshal(bytes.TrimSpace(src), out)
}
