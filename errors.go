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
	"net/http"
)

// Static errors for ingestion operations.
var (
	ErrSizeExceeded        = errors.New("request body exceeds size limit")
	ErrUnsupportedEncoding = errors.New("unsupported content encoding")
	ErrUnsupportedCharset  = errors.New("unsupported charset")
	ErrVerificationFailed  = errors.New("body verification failed")
	ErrMalformedBody       = errors.New("malformed request body")
	ErrInvalidLimit        = errors.New("invalid size limit")
	ErrBodyNotIngested     = errors.New("request body has not been ingested")
)

// RejectionError describes a terminal ingestion failure together with the
// HTTP status the client was (or would be) sent.
//
// Use [errors.As] to recover it from a wrapped error:
//
//	var rej *bodyparser.RejectionError
//	if errors.As(err, &rej) {
//	    fmt.Printf("status: %d\n", rej.Status)
//	}
type RejectionError struct {
	Status int   // HTTP status for the rejection (400, 403, 413, 415)
	Err    error // Underlying cause
}

// Error returns a formatted error message.
func (e *RejectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("body rejected (%d): %v", e.Status, e.Err)
	}

	return fmt.Sprintf("body rejected (%d)", e.Status)
}

// Unwrap returns the underlying error for errors.Is/As compatibility.
func (e *RejectionError) Unwrap() error {
	return e.Err
}

// HTTPStatus implements rivaas.dev/errors.ErrorType.
func (e *RejectionError) HTTPStatus() int {
	if e.Status == 0 {
		return http.StatusBadRequest
	}

	return e.Status
}

// Code implements rivaas.dev/errors.ErrorCode.
func (e *RejectionError) Code() string {
	switch e.Status {
	case http.StatusForbidden:
		return "verification_failed"
	case http.StatusRequestEntityTooLarge:
		return "size_exceeded"
	case http.StatusUnsupportedMediaType:
		return "unsupported_media"
	default:
		return "malformed_body"
	}
}

// rejection builds a RejectionError wrapping cause.
func rejection(status int, cause error) *RejectionError {
	return &RejectionError{Status: status, Err: cause}
}
