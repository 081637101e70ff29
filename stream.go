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
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Supported transport encodings.
const (
	encodingIdentity = "identity"
	encodingGzip     = "gzip"
	encodingDeflate  = "deflate"
)

// contentEncoding returns the declared transport encoding, normalized to
// lowercase, with an absent header reading as identity.
func contentEncoding(r *http.Request) string {
	enc := strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Encoding")))
	if enc == "" {
		return encodingIdentity
	}

	return enc
}

// materialize drains the request body into a single contiguous buffer,
// selecting a decompression transform from the declared encoding and
// enforcing the size limit against the decoded byte count. On every failure
// path the remaining transport bytes are discarded first, so the connection
// stays in a reusable state, and the transform is torn down.
func (p *Parser) materialize(r *http.Request, encoding string) (body []byte, err error) {
	src := r.Body
	defer func() {
		if err != nil {
			drain(src)
		}
	}()

	switch encoding {
	case encodingIdentity:
		return p.readIdentity(r)

	case encodingGzip:
		zr, zerr := gzip.NewReader(src)
		if zerr != nil {
			// The decompressor itself refused the stream.
			return nil, rejection(http.StatusUnsupportedMediaType,
				fmt.Errorf("%w: gzip: %v", ErrUnsupportedEncoding, zerr))
		}
		defer zr.Close()

		return p.readDecoded(zr)

	case encodingDeflate:
		zr, zerr := zlib.NewReader(src)
		if zerr != nil {
			return nil, rejection(http.StatusUnsupportedMediaType,
				fmt.Errorf("%w: deflate: %v", ErrUnsupportedEncoding, zerr))
		}
		defer zr.Close()

		return p.readDecoded(zr)

	default:
		return nil, rejection(http.StatusUnsupportedMediaType,
			fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding))
	}
}

// readIdentity materializes an uncompressed body. With a declared length the
// transport already knows whether the bound is exceeded, and on acceptance
// the buffer is allocated exactly once; chunked bodies go through the
// bounded reader instead.
//
// The declared-length check applies only here: under a compression
// transform Content-Length counts compressed bytes, and the limit binds the
// decoded size.
func (p *Parser) readIdentity(r *http.Request) ([]byte, error) {
	if r.ContentLength > p.cfg.limit {
		return nil, rejection(http.StatusRequestEntityTooLarge,
			fmt.Errorf("%w: declared %d bytes, limit %d", ErrSizeExceeded, r.ContentLength, p.cfg.limit))
	}

	if n := r.ContentLength; n > 0 {
		buf := make([]byte, n)
		if _, err := io.ReadFull(r.Body, buf); err != nil {
			return nil, fmt.Errorf("%w: short body: %v", ErrMalformedBody, err)
		}

		return buf, nil
	}

	return p.readBounded(r.Body)
}

// readDecoded materializes the output of a decompression transform,
// re-enforcing the limit against the decoded byte count. This is the
// decompression-bomb guard.
func (p *Parser) readDecoded(zr io.Reader) ([]byte, error) {
	body, err := p.readBounded(zr)
	if err != nil {
		var rej *RejectionError
		if errors.As(err, &rej) {
			return nil, err
		}

		// Corrupt stream mid-decode.
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	return body, nil
}

// readBounded reads src into memory, failing with 413 once more than the
// configured limit has been produced.
func (p *Parser) readBounded(src io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(src, p.cfg.limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > p.cfg.limit {
		return nil, rejection(http.StatusRequestEntityTooLarge,
			fmt.Errorf("%w: limit %d", ErrSizeExceeded, p.cfg.limit))
	}

	return body, nil
}

// drain discards whatever remains of the transport stream. Go's server only
// auto-discards small remainders, so an overflowing body is flushed here
// before the rejection response fires.
func drain(src io.Reader) {
	_, _ = io.Copy(io.Discard, src)
}
