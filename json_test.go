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

// serve runs the middleware chain against the request and reports whether
// the inner handler ran, handing the handler's view of the request back.
func serve(mw Middleware, rec http.ResponseWriter, req *http.Request) (handled bool, seen *http.Request) {
	mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		handled = true
		seen = r
	})).ServeHTTP(rec, req)

	return handled, seen
}

// TestJSON_GzipScenario tests the canonical accepted path: gzip-compressed
// {"a":1} under a 100kb limit decodes to utf-8 JSON.
func TestJSON_GzipScenario(t *testing.T) {
	t.Parallel()

	req := newRequest("application/json", gzipBytes(t, []byte(`{"a":1}`)))
	req.Header.Set("Content-Encoding", "gzip")
	rec := newStatusRecorder()

	handled, seen := serve(JSON(WithLimitString("100kb")), rec, req)

	require.True(t, handled)
	assert.Zero(t, rec.headerWrites)

	text, ok := TextBody(seen)
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, text)

	charset, ok := BodyCharset(seen)
	require.True(t, ok)
	assert.Equal(t, "utf-8", charset)

	payload, err := Decode[map[string]int](seen)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, payload)
}

// TestJSON_BombRejected tests the same scenario with a decompressed size of
// 200KB against a 100kb limit.
func TestJSON_BombRejected(t *testing.T) {
	t.Parallel()

	big := append([]byte(`{"pad":"`), make([]byte, 200<<10)...)
	for i := 8; i < len(big); i++ {
		big[i] = 'x'
	}
	big = append(big, '"', '}')

	req := newRequest("application/json", gzipBytes(t, big))
	req.Header.Set("Content-Encoding", "gzip")
	rec := newStatusRecorder()

	handled, _ := serve(JSON(WithLimitString("100kb")), rec, req)

	assert.False(t, handled)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, 1, rec.headerWrites)
}

// TestJSON_Strict tests strict mode on bare scalars.
func TestJSON_Strict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		opts        []Option
		wantHandled bool
	}{
		{name: "object accepted", body: `{"ok":true}`, wantHandled: true},
		{name: "array accepted", body: `[1,2,3]`, wantHandled: true},
		{name: "leading whitespace accepted", body: "\n\t {}", wantHandled: true},
		{name: "bare number rejected", body: `42`, wantHandled: false},
		{name: "bare string rejected", body: `"hello"`, wantHandled: false},
		{name: "bare number allowed without strict", body: `42`, opts: []Option{WithStrict(false)}, wantHandled: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := newRequest("application/json", []byte(tt.body))
			rec := newStatusRecorder()

			handled, _ := serve(JSON(tt.opts...), rec, req)

			assert.Equal(t, tt.wantHandled, handled)
			if !tt.wantHandled {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			}
		})
	}
}

// TestJSON_RejectsNonUTFCharset tests the RFC 7159 charset gate.
func TestJSON_RejectsNonUTFCharset(t *testing.T) {
	t.Parallel()

	req := newRequest("application/json; charset=latin1", []byte(`{}`))
	rec := newStatusRecorder()

	handled, _ := serve(JSON(), rec, req)

	assert.False(t, handled)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

// TestJSON_SuffixTypes tests that +json structured syntax types are ingested.
func TestJSON_SuffixTypes(t *testing.T) {
	t.Parallel()

	req := newRequest("application/vnd.api+json", []byte(`{"id":"7"}`))

	handled, seen := serve(JSON(), newStatusRecorder(), req)

	require.True(t, handled)
	_, ok := RawBody(seen)
	assert.True(t, ok)
}

// TestJSON_PassesThroughOtherTypes tests that a mismatched content type is
// skipped, not rejected.
func TestJSON_PassesThroughOtherTypes(t *testing.T) {
	t.Parallel()

	req := newRequest("text/plain", []byte("not json"))
	rec := newStatusRecorder()

	handled, seen := serve(JSON(), rec, req)

	require.True(t, handled)
	assert.Zero(t, rec.headerWrites)

	_, ok := RawBody(seen)
	assert.False(t, ok)

	_, err := Decode[map[string]any](seen)
	assert.ErrorIs(t, err, ErrBodyNotIngested)
}

// TestJSON_Stacked tests that a second body-parsing middleware on the same
// request skips instead of re-reading the body.
func TestJSON_Stacked(t *testing.T) {
	t.Parallel()

	req := newRequest("application/json", []byte(`{"a":1}`))
	rec := newStatusRecorder()

	outer := JSON()
	inner := JSON()

	var handled bool
	var seen *http.Request
	outer(inner(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		handled = true
		seen = r
	}))).ServeHTTP(rec, req)

	require.True(t, handled)
	assert.Zero(t, rec.headerWrites)

	payload, err := Decode[map[string]int](seen)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, payload)
}

// TestDecode_TypeMismatch tests decode errors surfacing to the handler.
func TestDecode_TypeMismatch(t *testing.T) {
	t.Parallel()

	req := newRequest("application/json", []byte(`{"n":"not a number"}`))

	handled, seen := serve(JSON(), newStatusRecorder(), req)
	require.True(t, handled)

	type payload struct {
		N int `json:"n"`
	}
	_, err := Decode[payload](seen)
	assert.Error(t, err)
}
