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

// Text returns middleware that ingests plain-text request bodies, decoding
// them from the negotiated charset.
//
// Defaults: content type "text/plain", utf-8 charset, 100 KiB limit. No
// charset validator is installed; add one with [WithCharsetValidator] to
// restrict the accepted family.
//
//	mux.Handle("/notes", bodyparser.Text()(notesHandler))
//
//	text, ok := bodyparser.TextBody(r)
//	charset, _ := bodyparser.BodyCharset(r)
//
// Panics on invalid options, like [MustNew].
func Text(opts ...Option) Middleware {
	base := []Option{
		WithTypes("text/plain"),
		WithDefaultCharset("utf-8"),
		WithTextDecoding(),
	}
	p := MustNew(append(base, opts...)...)

	return p.middleware(nil)
}
