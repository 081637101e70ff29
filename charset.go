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
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

// IsUTFCharset reports whether name belongs to the Unicode transformation
// family (utf-8, utf-16le, ...). RFC 7159 §8.1 restricts JSON text to these
// encodings; [JSON] installs it as the default charset validator.
func IsUTFCharset(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	rest, ok := strings.CutPrefix(name, "utf")
	if !ok {
		return false
	}
	rest = strings.TrimPrefix(rest, "-")

	switch rest {
	case "8", "16", "16le", "16be", "32", "32le", "32be":
		return true
	}

	return false
}

// decodeText converts body from the negotiated charset to a Go (UTF-8)
// string. An empty or utf-8 charset takes a validation-only fast path with
// no transform. Unknown charset names reject with 415; byte sequences that
// are invalid or undefined under the charset reject with 400.
func decodeText(body []byte, charset string) (string, error) {
	switch charset {
	case "", "utf-8", "utf8":
		if !utf8.Valid(body) {
			return "", fmt.Errorf("%w: invalid utf-8 sequence", ErrMalformedBody)
		}

		return string(body), nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", rejection(http.StatusUnsupportedMediaType,
			fmt.Errorf("%w: %q", ErrUnsupportedCharset, charset))
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("%w: %q decode: %v", ErrMalformedBody, charset, err)
	}

	// The x/text decoders substitute U+FFFD for bytes the charset leaves
	// undefined instead of failing; a replacement in the output therefore
	// means the body was not valid under the declared charset.
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", fmt.Errorf("%w: byte sequence not valid in charset %q", ErrMalformedBody, charset)
	}

	return string(decoded), nil
}
