// Copyright 2026 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2026 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package terminology

import (
	"bytes"
	"testing"

	"fnreg/tables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRootDir = "testdata"

func TestLoadPaths(t *testing.T) {
	paths, err := LoadPaths(testRootDir, CategoryFrameRelations)
	require.NoError(t, err)
	assert.Equal(t, "testdata/terminology/frame-to-frame-relations.json", paths.DefinitionsPath)
	assert.Equal(t, "testdata/terminology/main.bib", paths.BibtexPath)
}

func TestLoadPathsUnknownCategory(t *testing.T) {
	_, err := LoadPaths(testRootDir, "fe-to-fe-relations")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestLoadPathsMissingFiles(t *testing.T) {
	_, err := LoadPaths(t.TempDir(), CategoryFrameRelations)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownCategory)
}

func TestLoadDefinitionsKeepsOrder(t *testing.T) {
	defs, err := LoadDefinitions("testdata/terminology/frame-to-frame-relations.json")
	require.NoError(t, err)
	require.Len(t, defs, 4)
	values := make([]string, len(defs))
	for i, d := range defs {
		values[i] = d.Value
	}
	assert.Equal(t, []string{"Inheritance", "Using", "See_also", "Precedes"}, values)
}

func TestReference(t *testing.T) {
	assert.Equal(
		t, `\citep[p. 80]{ruppenhofer2016framenet}`,
		Definition{BibtexKey: "ruppenhofer2016framenet", Page: "80"}.Reference())
	assert.Equal(
		t, `\citep{fillmore2003background}`,
		Definition{BibtexKey: "fillmore2003background"}.Reference())
}

func TestLoadBibtexKeys(t *testing.T) {
	keys, err := LoadBibtexKeys("testdata/terminology/main.bib")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"ruppenhofer2016framenet": true, "fillmore2003background": true}, keys)
}

func TestDefinitionsTable(t *testing.T) {
	paths, err := LoadPaths(testRootDir, CategoryFrameRelations)
	require.NoError(t, err)
	tab, err := DefinitionsTable(paths)
	require.NoError(t, err)
	assert.Equal(t, []string{CategoryFrameRelations, "Definition", "Reference"}, tab.Header())
	require.Equal(t, 4, tab.Len())
	assert.Equal(t, `\citep[p. 80]{ruppenhofer2016framenet}`, tab.Rows[0].Reference)
	assert.Equal(t, `\citep[p. 83-84]{ruppenhofer2016framenet}`, tab.Rows[1].Reference)
	assert.Equal(t, `\citep{fillmore2003background}`, tab.Rows[2].Reference)
	assert.Equal(t, `\citep{unknown2020}`, tab.Rows[3].Reference)

	var buf bytes.Buffer
	require.NoError(t, tables.Write(&buf, tab, tables.FormatTSV))
	assert.Contains(t, buf.String(), "Using\tA child frame presupposes the parent frame as background.\t")
}
