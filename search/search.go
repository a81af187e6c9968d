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

package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"fnreg/framenet"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/rs/zerolog/log"
)

const (
	batchSize    = 500
	dfltLimit    = 20
	maxLimit     = 200
	fieldName    = "name"
	fieldDef     = "definition"
	fieldLemmas  = "lemmas"
	fieldLUs     = "lus"
	fieldFEs     = "fes"
	fieldFrameID = "frameId"
)

var ErrEmptyQuery = errors.New("empty query")

// Hit is a single frame matching a search query
type Hit struct {
	FrameID    int                 `json:"frameId"`
	FrameName  string              `json:"frameName"`
	Score      float64             `json:"score"`
	Highlights map[string][]string `json:"highlights,omitempty"`
}

type Result struct {
	Query string `json:"query"`
	Total uint64 `json:"total"`
	Hits  []Hit  `json:"hits"`
}

// Index is an in-memory full-text index of frames. Each frame
// is indexed along with its LU lemmas and FE names.
type Index struct {
	index bleve.Index
	mu    sync.RWMutex
}

func buildMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()

	nameMapping := bleve.NewTextFieldMapping()
	nameMapping.Analyzer = "standard"
	nameMapping.Store = true

	defMapping := bleve.NewTextFieldMapping()
	defMapping.Analyzer = "en"
	defMapping.Store = true
	defMapping.IncludeTermVectors = true

	lemmaMapping := bleve.NewTextFieldMapping()
	lemmaMapping.Analyzer = "standard"
	lemmaMapping.Store = false

	// full LU names (e.g. `abandon.v`) are matched exactly
	luMapping := bleve.NewTextFieldMapping()
	luMapping.Analyzer = "keyword"
	luMapping.Store = false

	feMapping := bleve.NewTextFieldMapping()
	feMapping.Analyzer = "standard"
	feMapping.Store = false

	idMapping := bleve.NewTextFieldMapping()
	idMapping.Analyzer = "keyword"
	idMapping.Store = true
	idMapping.Index = false
	idMapping.IncludeInAll = false

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt(fieldName, nameMapping)
	docMapping.AddFieldMappingsAt(fieldDef, defMapping)
	docMapping.AddFieldMappingsAt(fieldLemmas, lemmaMapping)
	docMapping.AddFieldMappingsAt(fieldLUs, luMapping)
	docMapping.AddFieldMappingsAt(fieldFEs, feMapping)
	docMapping.AddFieldMappingsAt(fieldFrameID, idMapping)
	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

func frameToDocument(frame *framenet.Frame) map[string]any {
	lemmas := make([]string, len(frame.LexUnits))
	lus := make([]string, len(frame.LexUnits))
	for i, lu := range frame.LexUnits {
		lemmas[i] = lu.Lemma()
		lus[i] = lu.Name
	}
	fes := make([]string, len(frame.FEs))
	for i, fe := range frame.FEs {
		fes[i] = fe.Name
	}
	return map[string]any{
		fieldName:    frame.Name,
		fieldDef:     frame.Definition,
		fieldLemmas:  lemmas,
		fieldLUs:     lus,
		fieldFEs:     fes,
		fieldFrameID: strconv.Itoa(frame.ID),
	}
}

// NewIndex creates an in-memory index of all the frames of a corpus
func NewIndex(ctx context.Context, c *framenet.Corpus) (*Index, error) {
	index, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}
	batch := index.NewBatch()
	for i, frame := range c.Frames() {
		if i%batchSize == 0 {
			if err := ctx.Err(); err != nil {
				index.Close()
				return nil, err
			}
		}
		if err := batch.Index(frame.Name, frameToDocument(frame)); err != nil {
			index.Close()
			return nil, fmt.Errorf("failed to index frame %s: %w", frame.Name, err)
		}
		if batch.Size() >= batchSize {
			if err := index.Batch(batch); err != nil {
				index.Close()
				return nil, fmt.Errorf("failed to create search index: %w", err)
			}
			batch = index.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			index.Close()
			return nil, fmt.Errorf("failed to create search index: %w", err)
		}
	}
	log.Debug().
		Str("version", c.Version().String()).
		Int("numFrames", len(c.Frames())).
		Msg("created frame search index")
	return &Index{index: index}, nil
}

// Search runs a query in bleve's query string syntax
// (e.g. `lemmas:leave`, `fes:Agent +definition:car`).
// The limit is clamped to a sensible range, zero means a default value.
func (idx *Index) Search(ctx context.Context, q string, limit int) (Result, error) {
	if q == "" {
		return Result{}, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = dfltLimit

	} else if limit > maxLimit {
		limit = maxLimit
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(bleve.NewQueryStringQuery(q), limit, 0, false)
	req.Fields = []string{fieldName, fieldFrameID}
	req.Highlight = bleve.NewHighlight()
	req.Highlight.Fields = []string{fieldDef}
	res, err := idx.index.SearchInContext(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to search frames: %w", err)
	}
	ans := Result{Query: q, Total: res.Total, Hits: make([]Hit, 0, len(res.Hits))}
	for _, hit := range res.Hits {
		name, _ := hit.Fields[fieldName].(string)
		strID, _ := hit.Fields[fieldFrameID].(string)
		frameID, _ := strconv.Atoi(strID)
		ans.Hits = append(ans.Hits, Hit{
			FrameID:    frameID,
			FrameName:  name,
			Score:      hit.Score,
			Highlights: hit.Fragments,
		})
	}
	return ans, nil
}

func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.index.Close()
}
