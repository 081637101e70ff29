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

// Raw returns middleware that ingests request bodies as opaque bytes.
// No charset stage runs; the buffer is handed to the handler unchanged.
//
// Defaults: content type "application/octet-stream", 100 KiB limit.
//
//	mux.Handle("/upload", bodyparser.Raw(bodyparser.WithLimitString("4mb"))(uploadHandler))
//
//	body, ok := bodyparser.RawBody(r)
//
// Panics on invalid options, like [MustNew].
func Raw(opts ...Option) Middleware {
	base := []Option{
		WithTypes("application/octet-stream"),
	}
	p := MustNew(append(base, opts...)...)

	return p.middleware(nil)
}
