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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_Defaults tests the default configuration.
func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	p, err := New()

	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, p.Limit())
	assert.True(t, p.cfg.inflate)
	assert.True(t, p.cfg.strict)
	assert.Equal(t, DefaultMaxFormParams, p.cfg.maxFormParams)
	assert.Nil(t, p.cfg.matcher)
}

// TestNew_LimitStrings tests human-readable limit resolution at
// configuration time.
func TestNew_LimitStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		limit string
		want  int64
	}{
		{limit: "100kb", want: 100 << 10},
		{limit: "1mb", want: 1 << 20},
		{limit: "512b", want: 512},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.limit, func(t *testing.T) {
			t.Parallel()

			p, err := New(WithLimitString(tt.limit))

			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Limit())
		})
	}
}

// TestNew_InvalidLimits tests that bad limits fail construction.
func TestNew_InvalidLimits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
	}{
		{name: "unparsable string", opts: []Option{WithLimitString("a lot")}},
		{name: "zero", opts: []Option{WithLimit(0)}},
		{name: "negative", opts: []Option{WithLimit(-1)}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.opts...)

			assert.ErrorIs(t, err, ErrInvalidLimit)
		})
	}
}

// TestMustNew_Panics tests that MustNew panics on configuration errors.
func TestMustNew_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustNew(WithLimitString("not a size"))
	})
}

// TestWithLimit_OverridesString tests that a later WithLimit clears a
// pending limit string.
func TestWithLimit_OverridesString(t *testing.T) {
	t.Parallel()

	p, err := New(WithLimitString("100kb"), WithLimit(64))

	require.NoError(t, err)
	assert.Equal(t, int64(64), p.Limit())
}
