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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudwego/tacopt/internal/lang"
	"github.com/cloudwego/tacopt/internal/passes"
)

func writeConfig(t *testing.T, text string) string {
	path := filepath.Join(t.TempDir(), "tacopt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
	require.Nil(t, cfg.Options().BlockPasses)
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
block_passes: [6, 5]
program_passes: []
unreachable: false
max_rounds: 3
format: json
`))
	require.NoError(t, err)
	require.Equal(t, []int { passes.ConstantFolding, passes.ConstantPropagation }, cfg.BlockPasses)
	require.NotNil(t, cfg.ProgramPasses)
	require.Empty(t, cfg.ProgramPasses)
	require.Nil(t, cfg.ASTRewrites)
	require.False(t, cfg.Unreachable)
	require.Equal(t, FormatJSON, cfg.Format)

	/* converted into driver options */
	o := cfg.Options()
	require.Equal(t, 3, o.MaxRounds)
	require.Equal(t, cfg.BlockPasses, o.BlockPasses)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("TACOPT_FORMAT", "msgpack")
	t.Setenv("TACOPT_TRACE", "true")
	cfg, err := Load(writeConfig(t, "format: json\n"))
	require.NoError(t, err)
	require.Equal(t, FormatMsgpack, cfg.Format)
	require.True(t, cfg.Trace)

	/* structure dumps are a valid format too */
	t.Setenv("TACOPT_FORMAT", "debug")
	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, FormatDebug, cfg.Format)
}

func TestLoad_Errors(t *testing.T) {
	tests := []string {
		"format: xml\n",
		"max_rounds: -1\n",
		"block_passes: [7]\n",
		"program_passes: [-1]\n",
		"ast_rewrites: [99]\n",
		"block_passes: {\n",
	}
	for _, text := range tests {
		_, err := Load(writeConfig(t, text))
		require.Error(t, err, text)
	}
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestSave(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlockPasses = []int { passes.CopyPropagation }
	cfg.Format = FormatMsgpack
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.Save(path))
	ret, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []int { passes.CopyPropagation }, ret.BlockPasses)
	require.Equal(t, []int { passes.GotoToGoto, passes.GotoThroughGoto, passes.RemoveNoops }, ret.ProgramPasses)
	require.Len(t, ret.ASTRewrites, len(lang.Rewrites))
	require.Equal(t, FormatMsgpack, ret.Format)
	require.Equal(t, cfg.MaxRounds, ret.MaxRounds)
}
