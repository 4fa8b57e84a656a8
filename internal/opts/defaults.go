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
	"github.com/xyproto/env/v2"
)

const (
	_DefaultMaxRounds = 64 // cutoff at 64 rounds of the optimization driver
	_MinMaxRounds     = 1
)

var (
	MaxRounds   = parseOrDefault("TACOPT_MAX_ROUNDS", _DefaultMaxRounds, _MinMaxRounds)
	Renumber    = boolOrDefault("TACOPT_RENUMBER", true)
	Unreachable = boolOrDefault("TACOPT_UNREACHABLE", true)
)

func parseOrDefault(key string, def int, min int) int {
	if !env.Has(key) {
		return def
	} else if val := env.Int(key, -1); val < 0 {
		panic("tacopt: invalid value for " + key)
	} else if val < min {
		panic("tacopt: value too small for " + key)
	} else {
		return val
	}
}

func boolOrDefault(key string, def bool) bool {
	if !env.Has(key) {
		return def
	} else {
		return env.Bool(key)
	}
}
