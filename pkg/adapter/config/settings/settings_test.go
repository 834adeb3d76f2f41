// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings_test

import (
	"testing"
	"time"

	"github.com/soutside/bookweb/pkg/adapter/config/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	var p *int
	settings.Default(&p, 5)
	require.NotNil(t, p)
	assert.Equal(t, 5, *p)
	settings.Default(&p, 7)
	assert.Equal(t, 5, *p)

	var b *bool
	settings.Nil2Zero(&b)
	require.NotNil(t, b)
	assert.False(t, *b)
}

func TestFromEnv(t *testing.T) {
	lookup := func(key string) (string, bool) {
		switch key {
		case "EMPTY":
			return "", true
		case "NUM":
			return "42", true
		case "BAD":
			return "4x", true
		}
		return "", false
	}
	s := "file"
	p := &s
	settings.FromEnv(&p, lookup, "UNSET")
	assert.Equal(t, "file", *p)
	settings.FromEnv(&p, lookup, "EMPTY")
	assert.Equal(t, "", *p)

	var n *int
	require.NoError(t, settings.IntFromEnv(&n, lookup, "EMPTY"))
	assert.Nil(t, n)
	require.NoError(t, settings.IntFromEnv(&n, lookup, "NUM"))
	assert.Equal(t, 42, *n)
	assert.Error(t, settings.IntFromEnv(&n, lookup, "BAD"))
	assert.Equal(t, 42, *n)
}

func TestVerifyRange(t *testing.T) {
	assert.NoError(t, settings.VerifyRange[int]("x", nil, 1, 2))
	v := 3
	assert.NoError(t, settings.VerifyRange("x", &v, 1, 3))
	err := settings.VerifyRange("x", &v, 1, 2)
	var oor *settings.OutOfRangeError[int]
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 3, oor.Value)
	assert.EqualError(t, err, "x=3 is not in [1, 2]")
}

func TestDuration(t *testing.T) {
	var d settings.Duration
	require.NoError(t, d.UnmarshalText([]byte("1h0m0s")))
	assert.Equal(t, settings.Duration(time.Hour), d)
	assert.Equal(t, "1h", d.String())
	assert.Equal(t, "2m", settings.Duration(2*time.Minute).String())
	assert.Equal(t, "1h30m", settings.Duration(90*time.Minute).String())
	b, err := (&d).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1h", string(b))
	assert.Error(t, d.UnmarshalText([]byte("soon")))
	assert.Error(t, d.UnmarshalText([]byte("-1s")))
	assert.Equal(t, settings.Duration(time.Hour), d)
	assert.Equal(t, "nil-duration", (*settings.Duration)(nil).LogValue().String())
}
