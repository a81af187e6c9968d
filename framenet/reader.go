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
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	frameIndexFile = "frameIndex.xml"
	luIndexFile    = "luIndex.xml"
	frRelationFile = "frRelation.xml"
	frameSubdir    = "frame"
	luSubdir       = "lu"
	dfltNumWorkers = 4
)

type LoadOptions struct {
	// NumWorkers limits the number of frame files parsed concurrently.
	// Zero means a default value.
	NumWorkers int

	// ExpectedNumFrames is compared with the number of loaded frames.
	// A mismatch is only logged. Negative value disables the check,
	// zero means "use the official count of the version".
	ExpectedNumFrames int

	// OnFrameLoaded, if set, is called after each parsed frame file.
	// It may be called from multiple goroutines.
	OnFrameLoaded func(frameName string)
}

func (opts LoadOptions) numWorkers() int {
	if opts.NumWorkers > 0 {
		return opts.NumWorkers
	}
	return min(dfltNumWorkers, runtime.NumCPU())
}

func loadFrameIndex(dataDir string) ([]string, error) {
	var idx xmlFrameIndex
	if err := decodeXMLFile(filepath.Join(dataDir, frameIndexFile), &idx); err != nil {
		return nil, fmt.Errorf("failed to load frame index: %w", err)
	}
	ans := make([]string, len(idx.Frames))
	for i, v := range idx.Frames {
		ans[i] = v.Name
	}
	return ans, nil
}

func loadFrames(ctx context.Context, dataDir string, names []string, opts LoadOptions) ([]*Frame, error) {
	frames := make([]*Frame, len(names))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.numWorkers())
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			var xf xmlFrame
			path := filepath.Join(dataDir, frameSubdir, name+".xml")
			if err := decodeXMLFile(path, &xf); err != nil {
				return fmt.Errorf("failed to load frame %s: %w", name, err)
			}
			frames[i] = xf.toFrame()
			if opts.OnFrameLoaded != nil {
				opts.OnFrameLoaded(name)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

func loadLUIndex(dataDir string, frames []*Frame) ([]*LexUnit, error) {
	var idx xmlLUIndex
	if err := decodeXMLFile(filepath.Join(dataDir, luIndexFile), &idx); err != nil {
		return nil, fmt.Errorf("failed to load LU index: %w", err)
	}
	frameLUs := make(map[int]*LexUnit)
	for _, f := range frames {
		for _, lu := range f.LexUnits {
			frameLUs[lu.ID] = lu
		}
	}
	ans := make([]*LexUnit, len(idx.LUs))
	for i, v := range idx.LUs {
		if lu, ok := frameLUs[v.ID]; ok {
			ans[i] = lu
			continue
		}
		lu := &LexUnit{
			ID:           v.ID,
			Name:         v.Name,
			Status:       v.Status,
			FrameID:      v.FrameID,
			FrameName:    v.FrameName,
			NumAnnotated: v.NumAnnotInstances,
		}
		lu.POS = posFromLUName(v.Name)
		ans[i] = lu
	}
	return ans, nil
}

func posFromLUName(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return strings.ToUpper(name[i+1:])
		}
	}
	return ""
}

func loadFrameRelations(dataDir string) ([]*FrameRelation, error) {
	var doc xmlFrameRelations
	if err := decodeXMLFile(filepath.Join(dataDir, frRelationFile), &doc); err != nil {
		return nil, fmt.Errorf("failed to load frame relations: %w", err)
	}
	ans := make([]*FrameRelation, 0, 2000)
	for _, rt := range doc.Types {
		for _, rel := range rt.Relations {
			ans = append(ans, &FrameRelation{
				ID:             rel.ID,
				Type:           rt.Name,
				SuperFrameID:   rel.SupID,
				SuperFrameName: rel.SuperFrameName,
				SubFrameID:     rel.SubID,
				SubFrameName:   rel.SubFrameName,
			})
		}
	}
	return ans, nil
}

// LoadCorpus reads a FrameNet release from its XML data directory
// (the one containing frameIndex.xml, luIndex.xml, frRelation.xml
// and the `frame` and `lu` subdirectories).
func LoadCorpus(ctx context.Context, version Version, dataDir string, opts LoadOptions) (*Corpus, error) {
	if err := version.Validate(); err != nil {
		return nil, err
	}
	if !fs.PathExists(dataDir) {
		return nil, fmt.Errorf("failed to load FrameNet %s: data directory %s not found", version, dataDir)
	}
	names, err := loadFrameIndex(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load FrameNet %s: %w", version, err)
	}
	frames, err := loadFrames(ctx, dataDir, names, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load FrameNet %s: %w", version, err)
	}
	lus, err := loadLUIndex(dataDir, frames)
	if err != nil {
		return nil, fmt.Errorf("failed to load FrameNet %s: %w", version, err)
	}
	relations, err := loadFrameRelations(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load FrameNet %s: %w", version, err)
	}
	corp := NewCorpus(version, frames, lus, relations)
	corp.dataDir = dataDir

	expected := opts.ExpectedNumFrames
	if expected == 0 {
		expected = version.ExpectedNumFrames()
	}
	if expected > 0 && expected != len(frames) {
		log.Warn().
			Str("version", version.String()).
			Str("dataDir", dataDir).
			Int("expected", expected).
			Int("loaded", len(frames)).
			Msg("number of loaded frames differs from the expected one")
	}
	log.Info().
		Str("version", version.String()).
		Int("frames", len(frames)).
		Int("lus", len(lus)).
		Int("relations", len(relations)).
		Msg("loaded FrameNet")
	return corp, nil
}
