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

// Kind reports how an ingestion attempt terminated.
type Kind int

const (
	// Skipped means the eligibility gate declined the request: no body was
	// present, the content type did not match, or the body was already
	// ingested. Not an error; the request passes through untouched.
	Skipped Kind = iota

	// Accepted means the body was materialized (and, when requested,
	// text-decoded) within the configured bounds.
	Accepted

	// Rejected means a terminal failure occurred. The status response has
	// already been written, unless the client went away first.
	Rejected
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	default:
		return "skipped"
	}
}

// Outcome is the terminal result of one ingestion attempt. Exactly one
// outcome is produced per request, and at most one response is written
// across the whole pipeline.
type Outcome struct {
	// Kind is Accepted, Rejected, or Skipped.
	Kind Kind

	// Body holds the materialized raw bytes when Kind is Accepted.
	Body []byte

	// Text holds the decoded text when Kind is Accepted and text decoding
	// was requested.
	Text string

	// Charset is the negotiated charset name that produced Text.
	Charset string

	// Status is the HTTP status sent to the client when Kind is Rejected:
	// one of 400, 403, 413, 415.
	Status int
}
