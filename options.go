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
	"log/slog"
	"net/http"
)

// Option defines functional options for parser configuration.
type Option func(*config)

// Verifier inspects the raw body bytes before any text interpretation.
// Returning false rejects the request with 403. A panic inside the hook is
// not recovered; it is a caller bug, not an ingestion failure.
type Verifier func(r *http.Request, body []byte, encoding string) bool

// Defaults and resource limits for ingestion.
const (
	// DefaultLimit is the default maximum body size (100 KiB),
	// applied after decompression.
	DefaultLimit int64 = 100 << 10

	// DefaultMaxFormParams is the default maximum number of parameters the
	// [Form] middleware accepts in one body. It prevents resource
	// exhaustion from adversarial query-string payloads.
	DefaultMaxFormParams = 1000
)

// config holds the configuration for a parser. It is resolved once in [New]
// and immutable afterwards, so a single parser is safely shared across
// concurrent requests without locking.
type config struct {
	// limit is the maximum accepted byte count, post-decompression.
	limit int64

	// limitStr is a human-readable limit ("100kb"), resolved in New.
	limitStr string

	// inflate permits compressed bodies. When false, any non-identity
	// Content-Encoding is rejected with 415 before the body is touched.
	inflate bool

	// matcher decides applicability by declared content type. Nil matches
	// every request.
	matcher func(*http.Request) bool

	// verifier is the optional raw-byte verification hook.
	verifier Verifier

	// charset is the default charset when the content type carries none.
	charset string

	// charsetValidator vets the negotiated charset before any body bytes
	// are read; a failure rejects with 415.
	charsetValidator func(string) bool

	// decodeText enables the charset-decoding stage. Off for raw mode.
	decodeText bool

	// strict requires the first JSON token to open an object or array.
	strict bool

	// maxFormParams bounds the number of form parameters.
	maxFormParams int

	// logger receives rejection diagnostics. Nil stays silent.
	logger *slog.Logger
}

// defaultConfig returns the default parser configuration.
func defaultConfig() *config {
	return &config{
		limit:         DefaultLimit,
		inflate:       true,
		strict:        true,
		maxFormParams: DefaultMaxFormParams,
	}
}

// WithLimit sets the maximum accepted body size in bytes. The limit applies
// to the decoded byte count, so a small compressed payload that expands past
// it is rejected with 413.
//
// Example:
//
//	bodyparser.Raw(bodyparser.WithLimit(1 << 20)) // 1MB
func WithLimit(n int64) Option {
	return func(cfg *config) {
		cfg.limit = n
		cfg.limitStr = ""
	}
}

// WithLimitString sets the maximum accepted body size from a human-readable
// string such as "100kb" or "4mb". The string is resolved once at
// configuration time; an unparsable value makes [New] fail.
//
// Example:
//
//	bodyparser.JSON(bodyparser.WithLimitString("250kb"))
func WithLimitString(s string) Option {
	return func(cfg *config) {
		cfg.limitStr = s
	}
}

// WithInflate controls whether compressed request bodies are accepted.
// When disabled, any request with a non-identity Content-Encoding is
// rejected with 415 without reading a single body byte.
// Default: enabled.
//
// Example:
//
//	bodyparser.JSON(bodyparser.WithInflate(false))
func WithInflate(enabled bool) Option {
	return func(cfg *config) {
		cfg.inflate = enabled
	}
}

// WithTypes sets the content types the parser ingests. Entries may be exact
// media types ("application/json"), wildcard subtypes ("text/*"), or
// structured-syntax suffixes ("+json"). Requests that match none are passed
// through with a Skipped outcome.
//
// Example:
//
//	bodyparser.Raw(bodyparser.WithTypes("application/octet-stream", "image/*"))
func WithTypes(types ...string) Option {
	return func(cfg *config) {
		cfg.matcher = matchTypes(types)
	}
}

// WithTypeMatcher sets a custom applicability predicate, replacing the
// content-type list from [WithTypes].
//
// Example:
//
//	bodyparser.Raw(bodyparser.WithTypeMatcher(func(r *http.Request) bool {
//	    return r.Header.Get("X-Ingest") == "yes"
//	}))
func WithTypeMatcher(fn func(*http.Request) bool) Option {
	return func(cfg *config) {
		cfg.matcher = fn
	}
}

// WithVerifier sets a hook that observes the raw body bytes (and the
// transport encoding they arrived under) after materialization and before
// charset decoding. Returning anything but true rejects with 403.
//
// Example:
//
//	bodyparser.JSON(bodyparser.WithVerifier(func(r *http.Request, body []byte, enc string) bool {
//	    return hmac.Equal(sign(body), []byte(r.Header.Get("X-Signature")))
//	}))
func WithVerifier(fn Verifier) Option {
	return func(cfg *config) {
		cfg.verifier = fn
	}
}

// WithDefaultCharset sets the charset assumed when the Content-Type header
// carries no charset parameter. Only meaningful with text decoding enabled.
//
// Example:
//
//	bodyparser.Text(bodyparser.WithDefaultCharset("iso-8859-1"))
func WithDefaultCharset(name string) Option {
	return func(cfg *config) {
		cfg.charset = name
	}
}

// WithCharsetValidator sets a predicate vetting the negotiated charset
// before the body is read at all, so an unacceptable charset costs no
// streaming work. A failing charset rejects with 415.
//
// [JSON] installs [IsUTFCharset] by default, per RFC 7159 §8.1.
//
// Example:
//
//	bodyparser.Text(bodyparser.WithCharsetValidator(bodyparser.IsUTFCharset))
func WithCharsetValidator(fn func(charset string) bool) Option {
	return func(cfg *config) {
		cfg.charsetValidator = fn
	}
}

// WithTextDecoding enables the charset-decoding stage, producing decoded
// text alongside the raw buffer. The [Text], [JSON], and [Form] middlewares
// enable it implicitly; [Raw] leaves it off.
func WithTextDecoding() Option {
	return func(cfg *config) {
		cfg.decodeText = true
	}
}

// WithStrict controls strict JSON mode: the first token of the body must
// open an object or array, rejecting bare scalars with 400. Only the [JSON]
// middleware consults it.
// Default: enabled.
//
// Example:
//
//	bodyparser.JSON(bodyparser.WithStrict(false)) // accept `"hello"` or `42`
func WithStrict(enabled bool) Option {
	return func(cfg *config) {
		cfg.strict = enabled
	}
}

// WithMaxFormParams sets the maximum number of parameters the [Form]
// middleware accepts in one body. Exceeding it rejects with 400.
// The default is DefaultMaxFormParams (1000).
func WithMaxFormParams(n int) Option {
	return func(cfg *config) {
		cfg.maxFormParams = n
	}
}

// WithLogger sets the slog.Logger for rejection diagnostics.
// If not provided, rejections are silently ignored.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	bodyparser.JSON(bodyparser.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}
