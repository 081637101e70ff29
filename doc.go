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

// Package bodyparser ingests untrusted HTTP request bodies into bounded
// in-memory buffers.
//
// The package converts a potentially compressed, potentially oversized
// network payload into a validated buffer with a known text encoding before
// any format-specific interpretation happens. It enforces a byte limit
// before and after decompression, negotiates and applies a charset, runs an
// optional caller-supplied verification hook against the raw bytes, and maps
// every failure to a single protocol-level rejection while keeping the
// underlying connection drained and reusable.
//
// # Quick Start
//
// Install one of the format middlewares in front of your handlers:
//
//	mux := http.NewServeMux()
//	mux.Handle("/users", bodyparser.JSON()(http.HandlerFunc(createUser)))
//
//	func createUser(w http.ResponseWriter, r *http.Request) {
//	    user, err := bodyparser.Decode[CreateUserRequest](r)
//	    ...
//	}
//
// Raw bytes and plain text work the same way:
//
//	mux.Handle("/upload", bodyparser.Raw(bodyparser.WithLimitString("4mb"))(uploadHandler))
//	mux.Handle("/notes", bodyparser.Text()(notesHandler))
//
//	body, ok := bodyparser.RawBody(r)
//	text, ok := bodyparser.TextBody(r)
//
// # Configuration Options
//
// All middlewares share the same functional options:
//
//	bodyparser.JSON(
//	    bodyparser.WithLimitString("100kb"),        // size limit, post-decompression
//	    bodyparser.WithInflate(false),              // reject compressed bodies
//	    bodyparser.WithTypes("application/json"),   // content types to ingest
//	    bodyparser.WithVerifier(checkSignature),    // inspect raw bytes, 403 on false
//	)
//
// # Rejection Semantics
//
// Every terminal failure produces exactly one status-only response:
//
//   - 400: malformed body, corrupt compressed stream, or text that is not
//     valid in the negotiated charset
//   - 403: the verification hook returned false
//   - 413: the declared or streamed size exceeds the limit, including a small
//     compressed payload that expands past the limit
//   - 415: unsupported content encoding, or a charset rejected by the
//     configured charset validator
//
// On overflow the remaining transport bytes are discarded before the 413 is
// written so the connection stays usable. Requests whose content type does
// not match are passed through untouched.
//
// # Direct Engine Use
//
// The middlewares are thin adaptors over [Parser], which can be driven
// directly when more control is needed:
//
//	p := bodyparser.MustNew(bodyparser.WithLimitString("1mb"))
//	r, outcome := p.Ingest(w, r)
//	if outcome.Kind == bodyparser.Accepted {
//	    process(outcome.Body)
//	}
//
// A request is ingested at most once: a second ingestion attempt on the same
// request reports [Skipped].
package bodyparser
