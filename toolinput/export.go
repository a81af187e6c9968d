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
	"fmt"
	"os"
	"path/filepath"

	"fnreg/framenet"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"
)

const (
	luToFramesFile        = "lu_to_frames.json"
	readmeFile            = "README.md"
	frameToInfoFile       = "frame_to_info.json"
	dominantFrameInfoFile = "event_type_to_dominant_frame.json"
)

// Conf configures the export of tool input data
type Conf struct {
	OutputDir      string            `json:"outputDir"`
	ReadmePath     string            `json:"readmePath"`
	EventTypesPath string            `json:"eventTypesPath"`
	POSMapping     map[string]string `json:"posMapping"`
	POSInLU        bool              `json:"posInLU"`
}

type ExportArgs struct {
	OutputDir      string  `json:"outputDir"`
	ReadmePath     string  `json:"readmePath"`
	EventTypesPath string  `json:"eventTypesPath"`
	Options        Options `json:"options"`
}

type ExportResult struct {
	OutputDir     string   `json:"outputDir"`
	Files         []string `json:"files"`
	NumLUs        int      `json:"numLUs"`
	NumFrames     int      `json:"numFrames"`
	NumEventTypes int      `json:"numEventTypes"`
}

func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return nil
}

// CreateToolInput creates a directory with JSON files describing lexical
// units, frames and event types for an annotation tool. The output
// directory is removed first in case it exists. Input files are validated
// before anything is removed.
func CreateToolInput(ctx context.Context, c *framenet.Corpus, args ExportArgs) (ExportResult, error) {
	var ans ExportResult
	if isFile, err := fs.IsFile(args.ReadmePath); err != nil || !isFile {
		return ans, fmt.Errorf("README file %s not found", args.ReadmePath)
	}
	eventTypes, err := LoadEventTypes(args.EventTypesPath)
	if err != nil {
		return ans, err
	}
	luToFrames, err := LUToFrames(c, args.Options)
	if err != nil {
		return ans, err
	}
	if err := DominantFrameInfo(c, eventTypes, args.Options); err != nil {
		return ans, err
	}
	frameToInfo := FrameToInfo(c)

	if fs.PathExists(args.OutputDir) {
		if err := os.RemoveAll(args.OutputDir); err != nil {
			return ans, fmt.Errorf("failed to remove previous output: %w", err)
		}
	}
	if err := os.MkdirAll(args.OutputDir, 0755); err != nil {
		return ans, fmt.Errorf("failed to create output directory: %w", err)
	}
	ans.OutputDir = args.OutputDir
	steps := []struct {
		name  string
		write func(path string) error
	}{
		{luToFramesFile, func(p string) error { return writeJSONFile(p, luToFrames) }},
		{readmeFile, func(p string) error { return copyFile(args.ReadmePath, p) }},
		{frameToInfoFile, func(p string) error { return writeJSONFile(p, frameToInfo) }},
		{dominantFrameInfoFile, func(p string) error { return writeJSONFile(p, eventTypes) }},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return ans, err
		}
		path := filepath.Join(args.OutputDir, step.name)
		if err := step.write(path); err != nil {
			return ans, err
		}
		ans.Files = append(ans.Files, path)
		log.Debug().Str("path", path).Msg("written tool input file")
	}
	ans.NumLUs = len(luToFrames)
	ans.NumFrames = len(frameToInfo)
	ans.NumEventTypes = len(eventTypes)
	log.Info().
		Str("outputDir", args.OutputDir).
		Int("numLUs", ans.NumLUs).
		Int("numFrames", ans.NumFrames).
		Int("numEventTypes", ans.NumEventTypes).
		Msg("created tool input")
	return ans, nil
}
