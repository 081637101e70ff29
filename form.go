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
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Form returns middleware that ingests urlencoded form bodies.
//
// Defaults: content type "application/x-www-form-urlencoded", utf-8 charset,
// 100 KiB limit, at most [DefaultMaxFormParams] parameters.
//
//	mux.Handle("/login", bodyparser.Form()(loginHandler))
//
//	values, ok := bodyparser.FormBody(r)
//
// Panics on invalid options, like [MustNew].
func Form(opts ...Option) Middleware {
	base := []Option{
		WithTypes("application/x-www-form-urlencoded"),
		WithDefaultCharset("utf-8"),
		WithTextDecoding(),
	}
	p := MustNew(append(base, opts...)...)

	return p.middleware(p.formPost)
}

// formPost parses the decoded text into url.Values, bounding the parameter
// count before the parse touches it.
func (p *Parser) formPost(w http.ResponseWriter, r *http.Request, st *requestState) bool {
	if p.cfg.maxFormParams > 0 && strings.Count(st.text, "&")+1 > p.cfg.maxFormParams {
		p.reject(w, r, st, http.StatusBadRequest,
			fmt.Errorf("%w: more than %d form parameters", ErrMalformedBody, p.cfg.maxFormParams))

		return false
	}

	values, err := url.ParseQuery(st.text)
	if err != nil {
		p.reject(w, r, st, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrMalformedBody, err))

		return false
	}

	st.form, st.hasForm = values, true

	return true
}
