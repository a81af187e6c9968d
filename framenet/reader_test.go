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

package framenet

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDataDir = "testdata/fn_mini"

func loadTestCorpus(t *testing.T) *Corpus {
	corp, err := LoadCorpus(
		context.Background(), Version17, testDataDir, LoadOptions{ExpectedNumFrames: -1})
	require.NoError(t, err)
	return corp
}

func TestLoadCorpusFrames(t *testing.T) {
	corp := loadTestCorpus(t)
	assert.Equal(t, Version17, corp.Version())
	assert.Equal(t, testDataDir, corp.DataDir())
	names := make([]string, 0, 4)
	for _, f := range corp.Frames() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Intentionally_act", "Abandonment", "Departing", "Quitting"}, names)

	frame, err := corp.FrameByName("Abandonment")
	require.NoError(t, err)
	assert.Equal(t, 20, frame.ID)
	assert.Equal(t, "An Agent leaves behind a Theme. She abandoned the car.", frame.Definition)
	assert.Len(t, frame.FEs, 4)
	assert.Len(t, frame.LexUnits, 3)

	byID, err := corp.FrameByID(20)
	require.NoError(t, err)
	assert.Same(t, frame, byID)
}

func TestLoadCorpusFrameElements(t *testing.T) {
	corp := loadTestCorpus(t)
	frame, err := corp.FrameByName("Abandonment")
	require.NoError(t, err)

	agent := frame.FEByName("Agent")
	require.NotNil(t, agent)
	assert.Equal(t, CoreTypeCore, agent.CoreType)
	assert.Equal(t, "Age", agent.Abbrev)
	assert.Equal(t, "The one who leaves the Theme.", agent.Definition)
	assert.Equal(t, []FERef{{ID: 201, Name: "Theme"}}, agent.Requires)

	place := frame.FEByName("Place")
	require.NotNil(t, place)
	assert.Equal(t, CoreTypePeripheral, place.CoreType)
	assert.Equal(t, []FERef{{ID: 203, Name: "Explanation"}}, place.Excludes)

	assert.Equal(t, CoreTypeExtraThematic, frame.FEByName("Explanation").CoreType)
	assert.Nil(t, frame.FEByName("Goal"))

	assert.Equal(
		t,
		[][]FERef{{{ID: 200, Name: "Agent"}, {ID: 201, Name: "Theme"}}},
		frame.FECoreSets,
	)

	ia, err := corp.FrameByName("Intentionally_act")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sentient"}, ia.FEByName("Agent").SemTypes)
}

func TestLoadCorpusFrameRelatedFrames(t *testing.T) {
	corp := loadTestCorpus(t)
	frame, err := corp.FrameByName("Intentionally_act")
	require.NoError(t, err)
	assert.Equal(
		t,
		[]RelatedFrames{
			{Type: "Is Inherited by", Frames: []string{"Abandonment", "Quitting"}},
			{Type: "Is Used by", Frames: []string{"Abandonment"}},
		},
		frame.Relations,
	)
}

func TestLoadCorpusLUs(t *testing.T) {
	corp := loadTestCorpus(t)
	lus := corp.LUs()
	require.Len(t, lus, 10)
	assert.Equal(t, "do.v", lus[0].Name)
	assert.Equal(t, "do", lus[0].Lemma())

	abandon := lus[2]
	assert.Equal(t, "abandon.v", abandon.Name)
	assert.Equal(t, "V", abandon.POS)
	assert.Equal(t, "Abandonment", abandon.FrameName)
	assert.Equal(t, 1, abandon.NumAnnotated)
	assert.Equal(t, "COD: leave permanently.", abandon.Definition)

	orphan := lus[9]
	assert.Equal(t, "orphan.n", orphan.Name)
	assert.Equal(t, "N", orphan.POS)
	assert.Equal(t, 99, orphan.FrameID)
	_, err := corp.FrameByID(orphan.FrameID)
	assert.True(t, errors.Is(err, ErrFrameNotFound))

	leave := corp.LUsByName("leave.v")
	require.Len(t, leave, 3)
	assert.Equal(t, "Abandonment", leave[0].FrameName)
	assert.Equal(t, "Departing", leave[1].FrameName)
	assert.Equal(t, "Quitting", leave[2].FrameName)
	assert.Len(t, corp.LUsByName("nonexistent.v"), 0)
}

func TestLoadCorpusFrameRelations(t *testing.T) {
	corp := loadTestCorpus(t)
	rels := corp.FrameRelations()
	require.Len(t, rels, 4)
	assert.Equal(
		t,
		&FrameRelation{
			ID:             501,
			Type:           "Inheritance",
			SuperFrameID:   10,
			SuperFrameName: "Intentionally_act",
			SubFrameID:     20,
			SubFrameName:   "Abandonment",
		},
		rels[0],
	)
	assert.Equal(t, "Using", rels[2].Type)
	assert.Equal(t, []string{"Inheritance", "Using"}, corp.RelationTypes())
}

func TestLoadCorpusProgressCallback(t *testing.T) {
	var cnt atomic.Int32
	_, err := LoadCorpus(
		context.Background(),
		Version15,
		testDataDir,
		LoadOptions{
			NumWorkers:        2,
			ExpectedNumFrames: -1,
			OnFrameLoaded: func(name string) {
				cnt.Add(1)
			},
		},
	)
	assert.NoError(t, err)
	assert.Equal(t, int32(4), cnt.Load())
}

func TestLoadCorpusMissingDir(t *testing.T) {
	_, err := LoadCorpus(
		context.Background(), Version17, "testdata/nonexistent", LoadOptions{})
	assert.Error(t, err)
}

func TestLoadCorpusUnsupportedVersion(t *testing.T) {
	_, err := LoadCorpus(
		context.Background(), Version("1.6"), testDataDir, LoadOptions{})
	assert.True(t, errors.Is(err, ErrUnsupportedVersion))
}

func TestLoadCorpusMissingFrameFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, frameSubdir), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, frameIndexFile),
		[]byte(`<frameIndex><frame ID="1" name="Ghost_frame"/></frameIndex>`),
		0644,
	))
	_, err := LoadCorpus(context.Background(), Version17, dir, LoadOptions{ExpectedNumFrames: -1})
	assert.ErrorContains(t, err, "Ghost_frame")
}

func TestLoadCorpusCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LoadCorpus(ctx, Version17, testDataDir, LoadOptions{ExpectedNumFrames: -1})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestStripMarkup(t *testing.T) {
	assert.Equal(
		t,
		"A Theme moves away.",
		stripMarkup("<def-root>A <fen>Theme</fen>\n   moves away.</def-root>"),
	)
	assert.Equal(t, "", stripMarkup("  "))
}
