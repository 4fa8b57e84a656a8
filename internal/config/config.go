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

package config

import (
	"os"

	"github.com/nikandfor/errors"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"github.com/cloudwego/tacopt/internal/lang"
	"github.com/cloudwego/tacopt/internal/opts"
	"github.com/cloudwego/tacopt/internal/passes"
)

// Output formats of the command line tool.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
	FormatDebug   = "debug"
)

// Config is the configuration file of the command line tool. A nil pass list
// selects every pass of its table, an empty one selects none.
type Config struct {
	ASTRewrites   []int  `yaml:"ast_rewrites"`
	BlockPasses   []int  `yaml:"block_passes"`
	ProgramPasses []int  `yaml:"program_passes"`
	Unreachable   bool   `yaml:"unreachable"`
	MaxRounds     int    `yaml:"max_rounds"`
	Renumber      bool   `yaml:"renumber"`
	Format        string `yaml:"format"`
	Trace         bool   `yaml:"trace"`
}

func DefaultConfig() *Config {
	return &Config {
		Unreachable : opts.Unreachable,
		MaxRounds   : opts.MaxRounds,
		Renumber    : opts.Renumber,
		Format      : FormatText,
	}
}

// Load reads the configuration file at path over the defaults, then applies the
// TACOPT_FORMAT and TACOPT_TRACE environment variables. An empty path skips the
// file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	/* the configuration file */
	if path != "" {
		if data, err := os.ReadFile(path); err != nil {
			return nil, errors.Wrap(err, "read config %v", path)
		} else if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "parse config %v", path)
		}
	}

	/* environment overrides */
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if env.Has("TACOPT_FORMAT") {
		cfg.Format = env.Str("TACOPT_FORMAT")
	}
	if env.Has("TACOPT_TRACE") {
		cfg.Trace = env.Bool("TACOPT_TRACE")
	}
}

func checkRange(what string, sel []int, n int) error {
	for _, v := range sel {
		if v < 0 || v >= n {
			return errors.New("invalid %s index: %d", what, v)
		}
	}
	return nil
}

// Validate checks the output format, the round limit and the pass indices.
func (self *Config) Validate() error {
	switch self.Format {
		case FormatText, FormatJSON, FormatMsgpack, FormatDebug : break
		default                                                 : return errors.New("unknown output format: %q", self.Format)
	}

	/* a zero round limit means no limit */
	if self.MaxRounds < 0 {
		return errors.New("invalid round limit: %d", self.MaxRounds)
	}

	/* every pass must exist */
	if err := checkRange("ast rewrite", self.ASTRewrites, len(lang.Rewrites)); err != nil {
		return err
	}
	if err := checkRange("block pass", self.BlockPasses, len(passes.BlockPasses)); err != nil {
		return err
	}
	return checkRange("program pass", self.ProgramPasses, len(passes.ProgramPasses))
}

// Options converts the configuration into driver options.
func (self *Config) Options() opts.Options {
	return opts.Options {
		MaxRounds     : self.MaxRounds,
		Renumber      : self.Renumber,
		Unreachable   : self.Unreachable,
		ASTRewrites   : self.ASTRewrites,
		BlockPasses   : self.BlockPasses,
		ProgramPasses : self.ProgramPasses,
	}
}

func expand(sel []int, n int) []int {
	if sel != nil {
		return sel
	}
	ret := make([]int, n)
	for i := range ret {
		ret[i] = i
	}
	return ret
}

// Save writes the configuration as YAML. Selections of every pass are written
// out as explicit index lists.
func (self *Config) Save(path string) error {
	out := *self
	out.ASTRewrites = expand(self.ASTRewrites, len(lang.Rewrites))
	out.BlockPasses = expand(self.BlockPasses, len(passes.BlockPasses))
	out.ProgramPasses = expand(self.ProgramPasses, len(passes.ProgramPasses))

	/* encode and write */
	data, err := yaml.Marshal(&out)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "write config %v", path)
	}
	return nil
}
