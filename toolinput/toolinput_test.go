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

package toolinput

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fnreg/framenet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestCorpus(t *testing.T) *framenet.Corpus {
	corp, err := framenet.LoadCorpus(
		context.Background(),
		framenet.Version17,
		"../framenet/testdata/fn_mini",
		framenet.LoadOptions{ExpectedNumFrames: -1},
	)
	require.NoError(t, err)
	return corp
}

func TestSplitLU(t *testing.T) {
	v, err := SplitLU("abandon.v", Options{})
	assert.NoError(t, err)
	assert.Equal(t, "abandon", v)

	v, err = SplitLU("abandon.v", Options{POSInLU: true})
	assert.NoError(t, err)
	assert.Equal(t, "abandon.v", v)

	v, err = SplitLU("e.g.adv", Options{POSInLU: true, POSMapping: map[string]string{"adv": "ADV"}})
	assert.NoError(t, err)
	assert.Equal(t, "e.g.ADV", v)

	v, err = SplitLU("give up.v", Options{POSMapping: map[string]string{"v": "VERB"}})
	assert.NoError(t, err)
	assert.Equal(t, "give up", v)
}

func TestSplitLUInvalid(t *testing.T) {
	_, err := SplitLU("abandon.n", Options{POSMapping: map[string]string{"v": "VERB"}})
	assert.True(t, errors.Is(err, ErrUnknownPOS))
	for _, name := range []string{"abandon", "abandon.", ".v", ""} {
		_, err = SplitLU(name, Options{})
		assert.True(t, errors.Is(err, ErrInvalidLUName), "name %q", name)
	}
}

func TestLUToFrames(t *testing.T) {
	ans, err := LUToFrames(loadTestCorpus(t), Options{})
	require.NoError(t, err)
	assert.Equal(
		t,
		map[string][]string{
			"do":          {"10"},
			"act":         {"10"},
			"abandon":     {"20"},
			"leave":       {"20", "30", "40"},
			"abandonment": {"20"},
			"depart":      {"30"},
			"quit":        {"40"},
		},
		ans,
	)
}

func TestLUToFramesWithPOS(t *testing.T) {
	ans, err := LUToFrames(
		loadTestCorpus(t),
		Options{POSInLU: true, POSMapping: map[string]string{"v": "VERB", "n": "NOUN"}},
	)
	require.NoError(t, err)
	assert.Len(t, ans, 7)
	assert.Equal(t, []string{"20"}, ans["abandonment.NOUN"])
	assert.Equal(t, []string{"20", "30", "40"}, ans["leave.VERB"])

	_, err = LUToFrames(loadTestCorpus(t), Options{POSMapping: map[string]string{"v": "VERB"}})
	assert.True(t, errors.Is(err, ErrUnknownPOS))
}

func TestFrameToInfo(t *testing.T) {
	ans := FrameToInfo(loadTestCorpus(t))
	require.Len(t, ans, 4)
	info := ans["20"]
	assert.Equal(t, "Abandonment", info.FrameLabel)
	assert.Equal(t, "An Agent leaves behind a Theme. She abandoned the car.", info.Definition)
	require.Len(t, info.Roles, 4)
	assert.Equal(
		t,
		RoleInfo{
			RoleDefinition: "The one who leaves the Theme.",
			RoleID:         "200",
			RoleLabel:      "Agent",
			RoleType:       "Core",
		},
		info.Roles[0],
	)
	assert.Equal(t, "Extra-Thematic", info.Roles[3].RoleType)
}

const testEventTypes = `{
	"abandon_event": {
		"description": "leaving something behind",
		"main_frame_labels": ["Abandonment"],
		"subframe_labels": ["Departing", "Quitting"],
		"weight": 2
	}
}`

func TestDominantFrameInfo(t *testing.T) {
	var eventTypes map[string]*EventTypeInfo
	require.NoError(t, json.Unmarshal([]byte(testEventTypes), &eventTypes))
	err := DominantFrameInfo(loadTestCorpus(t), eventTypes, Options{})
	require.NoError(t, err)
	info := eventTypes["abandon_event"]
	assert.Equal(t, []int{20}, info.MainFrameIDs)
	assert.Equal(t, []int{30, 40}, info.SubframeIDs)
	assert.Equal(
		t,
		map[string]int{"abandon": 20, "abandonment": 20, "depart": 30, "quit": 40},
		info.LUToDominantFrame,
	)
}

func TestDominantFrameInfoUnknownFrame(t *testing.T) {
	eventTypes := map[string]*EventTypeInfo{
		"x": {MainFrameLabels: []string{"Nonexistent_frame"}},
	}
	err := DominantFrameInfo(loadTestCorpus(t), eventTypes, Options{})
	assert.True(t, errors.Is(err, framenet.ErrFrameNotFound))
}

func TestEventTypeInfoPreservesUnknownKeys(t *testing.T) {
	var eventTypes map[string]*EventTypeInfo
	require.NoError(t, json.Unmarshal([]byte(testEventTypes), &eventTypes))
	data, err := json.Marshal(eventTypes)
	require.NoError(t, err)
	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	item := decoded["abandon_event"]
	assert.Equal(t, "leaving something behind", item["description"])
	assert.Equal(t, 2.0, item["weight"])
	assert.Equal(t, []any{"Departing", "Quitting"}, item["subframe_labels"])
	_, hasIDs := item["main_frame_ids"]
	assert.False(t, hasIDs)
}

func prepareExportInputs(t *testing.T) ExportArgs {
	dir := t.TempDir()
	readme := filepath.Join(dir, "input.md")
	require.NoError(t, os.WriteFile(readme, []byte("# FrameNet tool input\n"), 0644))
	eventTypes := filepath.Join(dir, "event_types.json")
	require.NoError(t, os.WriteFile(eventTypes, []byte(testEventTypes), 0644))
	return ExportArgs{
		OutputDir:      filepath.Join(dir, "out"),
		ReadmePath:     readme,
		EventTypesPath: eventTypes,
	}
}

func TestCreateToolInput(t *testing.T) {
	args := prepareExportInputs(t)
	require.NoError(t, os.MkdirAll(args.OutputDir, 0755))
	stale := filepath.Join(args.OutputDir, "stale.json")
	require.NoError(t, os.WriteFile(stale, []byte("{}"), 0644))

	result, err := CreateToolInput(context.Background(), loadTestCorpus(t), args)
	require.NoError(t, err)
	assert.Equal(t, 7, result.NumLUs)
	assert.Equal(t, 4, result.NumFrames)
	assert.Equal(t, 1, result.NumEventTypes)
	assert.Len(t, result.Files, 4)
	assert.NoFileExists(t, stale)

	readme, err := os.ReadFile(filepath.Join(args.OutputDir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# FrameNet tool input\n", string(readme))

	raw, err := os.ReadFile(filepath.Join(args.OutputDir, "lu_to_frames.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "{\n    \"abandon\": [\n        \"20\"\n    ],"))

	raw, err = os.ReadFile(filepath.Join(args.OutputDir, "event_type_to_dominant_frame.json"))
	require.NoError(t, err)
	var eventTypes map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &eventTypes))
	assert.Equal(t, "leaving something behind", eventTypes["abandon_event"]["description"])
	assert.Equal(
		t,
		map[string]any{"abandon": 20.0, "abandonment": 20.0, "depart": 30.0, "quit": 40.0},
		eventTypes["abandon_event"]["lu_to_dominant_frame"],
	)

	raw, err = os.ReadFile(filepath.Join(args.OutputDir, "frame_to_info.json"))
	require.NoError(t, err)
	var frameInfo map[string]FrameInfo
	require.NoError(t, json.Unmarshal(raw, &frameInfo))
	assert.Equal(t, "Quitting", frameInfo["40"].FrameLabel)
}

func TestCreateToolInputMissingReadme(t *testing.T) {
	args := prepareExportInputs(t)
	require.NoError(t, os.MkdirAll(args.OutputDir, 0755))
	kept := filepath.Join(args.OutputDir, "previous.json")
	require.NoError(t, os.WriteFile(kept, []byte("{}"), 0644))
	args.ReadmePath = filepath.Join(filepath.Dir(args.ReadmePath), "nonexistent.md")

	_, err := CreateToolInput(context.Background(), loadTestCorpus(t), args)
	assert.Error(t, err)
	assert.FileExists(t, kept)
}

func TestLoadEventTypesRejectsNullEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event_types.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Leaving": null}`), 0644))
	_, err := LoadEventTypes(path)
	assert.ErrorIs(t, err, ErrInvalidEventType)
	assert.Contains(t, err.Error(), "Leaving")
}

func TestDominantFrameInfoNilEntry(t *testing.T) {
	eventTypes := map[string]*EventTypeInfo{"Leaving": nil}
	assert.NotPanics(t, func() {
		err := DominantFrameInfo(loadTestCorpus(t), eventTypes, Options{})
		assert.ErrorIs(t, err, ErrInvalidEventType)
	})
}

func TestCreateToolInputNullEventType(t *testing.T) {
	args := prepareExportInputs(t)
	require.NoError(t, os.WriteFile(args.EventTypesPath, []byte(`{"Leaving": null}`), 0644))
	_, err := CreateToolInput(context.Background(), loadTestCorpus(t), args)
	assert.ErrorIs(t, err, ErrInvalidEventType)
}

func TestEventTypeInfoNoHTMLEscaping(t *testing.T) {
	var eventTypes map[string]*EventTypeInfo
	require.NoError(t, json.Unmarshal(
		[]byte(`{"motion": {"description": "<A> & <B>", "main_frame_labels": ["Departing"]}}`),
		&eventTypes,
	))
	data, err := eventTypes["motion"].MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"description":"<A> & <B>"`)

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, writeJSONFile(path, eventTypes))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<A> & <B>")
	assert.NotContains(t, string(raw), `\u003c`)
}

func TestWriteJSONFileReportsWriteError(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	err := writeJSONFile("/dev/full", map[string]string{"abandon": "20"})
	assert.Error(t, err)

	err = writeJSONFile(filepath.Join(t.TempDir(), "nonexistent", "out.json"), map[string]string{})
	assert.Error(t, err)
}
