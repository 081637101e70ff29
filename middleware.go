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

import "net/http"

// Middleware wraps an http.Handler with body ingestion.
type Middleware func(http.Handler) http.Handler

// middleware adapts the parser into net/http middleware. A rejected request
// never reaches next; a skipped request passes through untouched. The
// optional post step lets a format adaptor finish interpreting an accepted
// body (and veto it) before the handler runs.
func (p *Parser) middleware(post func(w http.ResponseWriter, r *http.Request, st *requestState) bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, st := withState(r)

			switch out := p.ingest(w, r, st); out.Kind {
			case Rejected:
				return
			case Accepted:
				if post != nil && !post(w, r, st) {
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Handler returns plain ingestion middleware for this parser, with no
// format-specific post-processing.
func (p *Parser) Handler() Middleware {
	return p.middleware(nil)
}
