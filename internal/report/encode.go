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

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/nikandfor/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/cloudwego/tacopt/internal/config"
)

// Textual is implemented by the reports that have a plain text rendering.
type Textual interface {
	WriteText(w io.Writer)
}

var dumper = func() *spew.ConfigState {
	c := spew.NewDefaultConfig()
	c.SortKeys = true
	c.DisablePointerAddresses = true
	c.DisableCapacities = true
	return c
}()

// Debug renders any value with its full structure, map keys sorted.
func Debug(v interface{}) string {
	return dumper.Sdump(v)
}

// Encode writes v in the given format. The text format uses WriteText when v
// has one and falls back to fmt otherwise, the debug format dumps the whole
// structure of v.
func Encode(w io.Writer, format string, v interface{}) error {
	switch format {
		case config.FormatJSON: {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			if err := enc.Encode(v); err != nil {
				return errors.Wrap(err, "encode json")
			}
		}
		case config.FormatMsgpack: {
			if err := msgpack.NewEncoder(w).Encode(v); err != nil {
				return errors.Wrap(err, "encode msgpack")
			}
		}
		case config.FormatText: {
			if t, ok := v.(Textual); ok {
				t.WriteText(w)
			} else if _, err := fmt.Fprintln(w, v); err != nil {
				return errors.Wrap(err, "write text")
			}
		}
		case config.FormatDebug: {
			if _, err := io.WriteString(w, Debug(v)); err != nil {
				return errors.Wrap(err, "write debug dump")
			}
		}
		default: {
			return errors.New("unknown output format: %q", format)
		}
	}
	return nil
}

// DecodeMsgpack reads back a value written by Encode in the msgpack format.
func DecodeMsgpack(r io.Reader, v interface{}) error {
	if err := msgpack.NewDecoder(r).Decode(v); err != nil {
		return errors.Wrap(err, "decode msgpack")
	}
	return nil
}
