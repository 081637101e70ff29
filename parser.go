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
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/docker/go-units"
)

// Parser is the body ingestion engine. It is built once by [New], immutable
// afterwards, and safe for concurrent use across requests.
type Parser struct {
	cfg config
}

// New creates a parser from the given options.
//
// Errors:
//   - [ErrInvalidLimit]: the size limit is zero, negative, or an unparsable
//     size string was given to [WithLimitString]
//
// Example:
//
//	p, err := bodyparser.New(
//	    bodyparser.WithLimitString("100kb"),
//	    bodyparser.WithTypes("application/json"),
//	)
func New(opts ...Option) (*Parser, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.limitStr != "" {
		n, err := units.RAMInBytes(cfg.limitStr)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLimit, cfg.limitStr)
		}
		cfg.limit = n
	}
	if cfg.limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, cfg.limit)
	}

	return &Parser{cfg: *cfg}, nil
}

// MustNew creates a parser from the given options and panics on error.
// Intended for package-level setup where a bad limit is a programming error.
func MustNew(opts ...Option) *Parser {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}

	return p
}

// Limit returns the resolved size limit in bytes.
func (p *Parser) Limit() int64 {
	return p.cfg.limit
}

// Ingest runs the ingestion pipeline against r, writing at most one status
// response to w on rejection. State (the idempotence flag and the buffered
// body) is carried on the returned request, which callers must use from
// then on.
func (p *Parser) Ingest(w http.ResponseWriter, r *http.Request) (*http.Request, Outcome) {
	r, st := withState(r)

	return r, p.ingest(w, r, st)
}

// ingest drives the request through gate, stream reader, decompression,
// materialization, verification, and charset decoding. Each stage
// short-circuits into reject.
func (p *Parser) ingest(w http.ResponseWriter, r *http.Request, st *requestState) Outcome {
	if !p.eligible(r, st) {
		return Outcome{Kind: Skipped}
	}
	st.received = true

	charset := p.negotiateCharset(r)
	if p.cfg.charsetValidator != nil && charset != "" && !p.cfg.charsetValidator(charset) {
		return p.reject(w, r, st, http.StatusUnsupportedMediaType,
			fmt.Errorf("%w: %q", ErrUnsupportedCharset, charset))
	}

	encoding := contentEncoding(r)
	if !p.cfg.inflate && encoding != encodingIdentity {
		// Rejected before any body bytes are read.
		return p.reject(w, r, st, http.StatusUnsupportedMediaType,
			fmt.Errorf("%w: %q (decompression disabled)", ErrUnsupportedEncoding, encoding))
	}

	body, err := p.materialize(r, encoding)
	r.Body = http.NoBody
	if err != nil {
		var rej *RejectionError
		if errors.As(err, &rej) {
			return p.reject(w, r, st, rej.Status, err)
		}

		return p.reject(w, r, st, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrMalformedBody, err))
	}

	if p.cfg.verifier != nil && !p.cfg.verifier(r, body, encoding) {
		return p.reject(w, r, st, http.StatusForbidden, ErrVerificationFailed)
	}

	st.body = body
	out := Outcome{Kind: Accepted, Body: body}

	if p.cfg.decodeText {
		text, err := decodeText(body, charset)
		if err != nil {
			var rej *RejectionError
			if errors.As(err, &rej) {
				return p.reject(w, r, st, rej.Status, err)
			}

			return p.reject(w, r, st, http.StatusBadRequest, err)
		}
		st.text, st.charset, st.hasText = text, charset, true
		out.Text, out.Charset = text, charset
	}

	return out
}

// eligible is the gate: pure decision, no side effects.
func (p *Parser) eligible(r *http.Request, st *requestState) bool {
	if st.received {
		return false
	}
	// ContentLength 0 means no body; -1 means chunked framing, so a body may
	// still arrive. net/http strips the Transfer-Encoding header itself.
	if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
		return false
	}

	return p.cfg.matcher == nil || p.cfg.matcher(r)
}

// reject is the single response authority: it writes the status header once
// per request and never a body, so nothing leaks to the client beyond the
// status line. When the client has already gone away no response is written.
func (p *Parser) reject(w http.ResponseWriter, r *http.Request, st *requestState, status int, err error) Outcome {
	if r.Context().Err() == nil && !st.responded {
		st.responded = true
		w.WriteHeader(status)
	}

	if p.cfg.logger != nil {
		p.cfg.logger.LogAttrs(r.Context(), slog.LevelWarn, "request body rejected",
			slog.Int("status", status),
			slog.String("content_type", r.Header.Get("Content-Type")),
			slog.String("content_encoding", contentEncoding(r)),
			slog.Int64("limit", p.cfg.limit),
			slog.String("error", err.Error()),
		)
	}

	return Outcome{Kind: Rejected, Status: status}
}

// negotiateCharset resolves the text charset: the charset parameter on the
// content type, falling back to the configured default.
func (p *Parser) negotiateCharset(r *http.Request) string {
	if _, params, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil {
		if cs := params["charset"]; cs != "" {
			return strings.ToLower(cs)
		}
	}

	return p.cfg.charset
}

// matchTypes builds an applicability predicate from a media type list.
// Supported forms: exact ("application/json"), subtype wildcard ("text/*"),
// and structured-syntax suffix ("+json").
func matchTypes(types []string) func(*http.Request) bool {
	normalized := make([]string, 0, len(types))
	for _, t := range types {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(t)))
	}

	return func(r *http.Request) bool {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType == "" {
			return false
		}

		for _, t := range normalized {
			switch {
			case t == "*/*":
				return true
			case strings.HasPrefix(t, "+"):
				if strings.HasSuffix(mediaType, t) {
					return true
				}
			case strings.HasSuffix(t, "/*"):
				if strings.HasPrefix(mediaType, t[:len(t)-1]) {
					return true
				}
			default:
				if mediaType == t {
					return true
				}
			}
		}

		return false
	}
}
