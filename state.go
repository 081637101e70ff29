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
	"context"
	"net/http"
	"net/url"
)

// stateKey is the context key for the per-request ingestion state.
type stateKey struct{}

// requestState tracks one request's passage through the pipeline. It is
// exclusively owned by that request and never shared; the parser itself
// stays immutable across requests.
type requestState struct {
	received  bool // body ingestion attempted; later attempts skip
	responded bool // status response written; at most one per request

	body    []byte
	text    string
	hasText bool
	charset string
	form    url.Values
	hasForm bool
}

// withState attaches a fresh ingestion state to r, or returns r unchanged
// when one is already present (the idempotence path).
func withState(r *http.Request) (*http.Request, *requestState) {
	if st := stateOf(r); st != nil {
		return r, st
	}

	st := &requestState{}

	return r.WithContext(context.WithValue(r.Context(), stateKey{}, st)), st
}

// stateOf returns the ingestion state attached to r, or nil.
func stateOf(r *http.Request) *requestState {
	st, _ := r.Context().Value(stateKey{}).(*requestState)

	return st
}

// Ingested reports whether a body ingestion attempt has already run for r.
func Ingested(r *http.Request) bool {
	st := stateOf(r)

	return st != nil && st.received
}

// RawBody returns the materialized body bytes for r. The second return is
// false if no body has been accepted.
func RawBody(r *http.Request) ([]byte, bool) {
	st := stateOf(r)
	if st == nil || st.body == nil {
		return nil, false
	}

	return st.body, true
}

// TextBody returns the charset-decoded body for r. The second return is
// false unless a text-decoding middleware ([Text], [JSON], [Form]) accepted
// the body.
func TextBody(r *http.Request) (string, bool) {
	st := stateOf(r)
	if st == nil || !st.hasText {
		return "", false
	}

	return st.text, true
}

// BodyCharset returns the charset the body text was decoded from, e.g.
// "utf-8". The second return is false when no text decoding happened.
func BodyCharset(r *http.Request) (string, bool) {
	st := stateOf(r)
	if st == nil || !st.hasText {
		return "", false
	}

	return st.charset, true
}

// FormBody returns the parsed form values for r. The second return is false
// unless the [Form] middleware accepted the body.
func FormBody(r *http.Request) (url.Values, bool) {
	st := stateOf(r)
	if st == nil || !st.hasForm {
		return nil, false
	}

	return st.form, true
}
