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

package tac

import (
	"strconv"
	"strings"
)

// IsIdent reports whether an operand names a variable (user variables and "#t" temporaries).
func IsIdent(s string) bool {
	if s == "" {
		return false
	}

	/* boolean literals look like identifiers */
	if _, ok := ParseBool(s); ok {
		return false
	}

	/* temporaries, or a letter or an underscore first */
	switch c := s[0]; {
		case IsTemp(s)            : return true
		case c == '_'             : return true
		case c >= 'a' && c <= 'z' : return true
		case c >= 'A' && c <= 'Z' : return true
		default                   : return false
	}
}

// IsLiteral reports whether an operand is an integer or boolean literal.
func IsLiteral(s string) bool {
	if _, ok := ParseInt(s); ok {
		return true
	}
	_, ok := ParseBool(s)
	return ok
}

// IsTemp reports whether a name is a compiler generated temporary.
func IsTemp(s string) bool {
	return strings.HasPrefix(s, "#")
}

func ParseInt(s string) (int64, bool) {
	if v, err := strconv.ParseInt(s, 10, 64); err != nil {
		return 0, false
	} else {
		return v, true
	}
}

// ParseBool accepts "true" and "false" in any letter case, nothing else.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
		case "true"  : return true, true
		case "false" : return false, true
		default      : return false, false
	}
}

func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func FormatBool(v bool) string {
	return strconv.FormatBool(v)
}
