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

package datasets

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"fnreg/framenet"
	"fnreg/relgraph"
	"fnreg/search"
	"fnreg/tables"
)

// Conf configures a single dataset (i.e. a loaded FrameNet release)
type Conf struct {
	ID      string `json:"id"`
	Version string `json:"version"`

	// DataDir is the FrameNet XML data directory. If empty, the directory
	// is derived from the NLTK data directory and the version.
	DataDir string `json:"dataDir"`

	// ExpectedNumFrames overrides the official number of frames
	// of the release; -1 disables the check
	ExpectedNumFrames int `json:"expectedNumFrames"`
}

type Info struct {
	ID            string   `json:"id"`
	Version       string   `json:"version"`
	DataDir       string   `json:"dataDir"`
	NumFrames     int      `json:"numFrames"`
	NumLUs        int      `json:"numLUs"`
	NumRelations  int      `json:"numRelations"`
	RelationTypes []string `json:"relationTypes"`
}

// annotScan is a (possibly still running) grouping of exemplar
// annotations of a single layer. The done channel is closed once
// groups or err are set.
type annotScan struct {
	done   chan struct{}
	groups tables.AnnotationGroups
	err    error
}

// Dataset wraps a loaded corpus together with lazily created
// derived data (relation graphs, search index, annotation groups).
type Dataset struct {
	id             string
	corpus         *framenet.Corpus
	maxAnnotPerKey int

	mu          sync.Mutex
	graphs      map[string]*relgraph.Graph
	searchIndex *search.Index

	// annotations are scanned outside of mu as the scan reads
	// all the lu/*.xml files
	annotMu     sync.Mutex
	annotScans  map[tables.Layer]*annotScan
	scanCtx     context.Context
	cancelScans context.CancelFunc
}

func (ds *Dataset) ID() string {
	return ds.id
}

func (ds *Dataset) Corpus() *framenet.Corpus {
	return ds.corpus
}

func (ds *Dataset) Info() Info {
	return Info{
		ID:            ds.id,
		Version:       ds.corpus.Version().String(),
		DataDir:       ds.corpus.DataDir(),
		NumFrames:     len(ds.corpus.Frames()),
		NumLUs:        len(ds.corpus.LUs()),
		NumRelations:  len(ds.corpus.FrameRelations()),
		RelationTypes: ds.corpus.RelationTypes(),
	}
}

func graphKey(relationTypes []string) string {
	tmp := slices.Clone(relationTypes)
	slices.Sort(tmp)
	return strings.Join(slices.Compact(tmp), ",")
}

// RelationGraph returns a (cached) frame relation graph for the
// provided relation types. Empty relationTypes means all the types.
func (ds *Dataset) RelationGraph(relationTypes []string) (*relgraph.Graph, error) {
	known := ds.corpus.RelationTypes()
	for _, rt := range relationTypes {
		if !slices.Contains(known, rt) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRelationType, rt)
		}
	}
	key := graphKey(relationTypes)
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if g, ok := ds.graphs[key]; ok {
		return g, nil
	}
	g, err := relgraph.Build(ds.corpus, relationTypes)
	if err != nil {
		return nil, err
	}
	ds.graphs[key] = g
	return g, nil
}

// SearchIndex returns the frame search index, creating it on first use
func (ds *Dataset) SearchIndex(ctx context.Context) (*search.Index, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ds.searchIndex != nil {
		return ds.searchIndex, nil
	}
	idx, err := search.NewIndex(ctx, ds.corpus)
	if err != nil {
		return nil, err
	}
	ds.searchIndex = idx
	return idx, nil
}

func (ds *Dataset) runAnnotScan(layer tables.Layer, scan *annotScan) {
	scan.groups, scan.err = tables.GroupAnnotations(ds.scanCtx, ds.corpus, layer, ds.maxAnnotPerKey)
	if scan.err != nil {
		ds.annotMu.Lock()
		if ds.annotScans[layer] == scan {
			delete(ds.annotScans, layer)
		}
		ds.annotMu.Unlock()
	}
	close(scan.done)
}

// AnnotationGroups returns (cached) exemplar annotations grouped
// by (POS, label) of the provided layer. The first call starts a scan
// shared by all the callers. A cancelled ctx only stops waiting for
// the result, the scan itself continues. A failed scan is not cached.
func (ds *Dataset) AnnotationGroups(ctx context.Context, layer tables.Layer) (tables.AnnotationGroups, error) {
	ds.annotMu.Lock()
	scan, ok := ds.annotScans[layer]
	if !ok {
		scan = &annotScan{done: make(chan struct{})}
		ds.annotScans[layer] = scan
		go ds.runAnnotScan(layer, scan)
	}
	ds.annotMu.Unlock()
	select {
	case <-scan.done:
		return scan.groups, scan.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// FindLUs finds lexical units by lemma and optionally by POS
// (case insensitive).
func (ds *Dataset) FindLUs(lemma, pos string) []*framenet.LexUnit {
	ans := make([]*framenet.LexUnit, 0, 5)
	for _, lu := range ds.corpus.LUs() {
		if lu.Lemma() == lemma && (pos == "" || strings.EqualFold(lu.POS, pos)) {
			ans = append(ans, lu)
		}
	}
	return ans
}

func (ds *Dataset) Close() error {
	ds.cancelScans()
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ds.searchIndex != nil {
		err := ds.searchIndex.Close()
		ds.searchIndex = nil
		return err
	}
	return nil
}

func NewDataset(id string, corpus *framenet.Corpus, maxAnnotPerKey int) *Dataset {
	scanCtx, cancelScans := context.WithCancel(context.Background())
	return &Dataset{
		id:             id,
		corpus:         corpus,
		maxAnnotPerKey: maxAnnotPerKey,
		graphs:         make(map[string]*relgraph.Graph),
		annotScans:     make(map[tables.Layer]*annotScan),
		scanCtx:        scanCtx,
		cancelScans:    cancelScans,
	}
}
