/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package opts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptions_CanContinue(t *testing.T) {
	o := Options { MaxRounds: 2 }
	require.True(t, o.CanContinue(0))
	require.True(t, o.CanContinue(1))
	require.False(t, o.CanContinue(2))
	o.MaxRounds = 0
	require.True(t, o.CanContinue(1 << 20))
}

func TestParseOrDefault(t *testing.T) {
	t.Setenv("TACOPT_TEST_ROUNDS", "12")
	require.Equal(t, 12, parseOrDefault("TACOPT_TEST_ROUNDS", 3, 1))
	require.Equal(t, 3, parseOrDefault("TACOPT_TEST_MISSING", 3, 1))
	t.Setenv("TACOPT_TEST_ROUNDS", "0")
	require.Panics(t, func() { parseOrDefault("TACOPT_TEST_ROUNDS", 3, 1) })
}

func TestBoolOrDefault(t *testing.T) {
	require.True(t, boolOrDefault("TACOPT_TEST_MISSING", true))
	t.Setenv("TACOPT_TEST_FLAG", "false")
	require.False(t, boolOrDefault("TACOPT_TEST_FLAG", true))
	t.Setenv("TACOPT_TEST_FLAG", "true")
	require.True(t, boolOrDefault("TACOPT_TEST_FLAG", false))
}
