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
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestText_UTF8 tests the default utf-8 text path.
func TestText_UTF8(t *testing.T) {
	t.Parallel()

	req := newRequest("text/plain", []byte("grüße aus köln"))

	handled, seen := serve(Text(), newStatusRecorder(), req)

	require.True(t, handled)

	text, ok := TextBody(seen)
	require.True(t, ok)
	assert.Equal(t, "grüße aus köln", text)

	charset, _ := BodyCharset(seen)
	assert.Equal(t, "utf-8", charset)
}

// TestText_DeclaredCharset tests decoding under an explicit charset
// parameter.
func TestText_DeclaredCharset(t *testing.T) {
	t.Parallel()

	req := newRequest("text/plain; charset=iso-8859-1", []byte{'c', 'a', 'f', 0xe9})

	handled, seen := serve(Text(), newStatusRecorder(), req)

	require.True(t, handled)

	text, ok := TextBody(seen)
	require.True(t, ok)
	assert.Equal(t, "café", text)

	charset, _ := BodyCharset(seen)
	assert.Equal(t, "iso-8859-1", charset)
}

// TestText_InvalidForCharset tests that bytes invalid under the declared
// charset reject with 400.
func TestText_InvalidForCharset(t *testing.T) {
	t.Parallel()

	req := newRequest("text/plain; charset=latin1", []byte{'x', 0x81, 'y'})
	rec := newStatusRecorder()

	handled, _ := serve(Text(), rec, req)

	assert.False(t, handled)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, rec.headerWrites)
}

// TestText_RawBytesStillAvailable tests that the raw buffer survives next
// to the decoded text.
func TestText_RawBytesStillAvailable(t *testing.T) {
	t.Parallel()

	raw := []byte{'c', 'a', 'f', 0xe9}
	req := newRequest("text/plain; charset=iso-8859-1", raw)

	handled, seen := serve(Text(), newStatusRecorder(), req)

	require.True(t, handled)

	body, ok := RawBody(seen)
	require.True(t, ok)
	assert.Equal(t, raw, body)
}
