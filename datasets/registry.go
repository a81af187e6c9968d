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
	"errors"
	"fmt"
	"sort"
	"sync"

	"fnreg/framenet"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/rs/zerolog/log"
)

var (
	ErrDatasetNotFound     = errors.New("dataset not found")
	ErrDuplicateDataset    = errors.New("duplicate dataset ID")
	ErrUnknownRelationType = errors.New("unknown relation type")
)

// Registry holds all the loaded datasets
type Registry struct {
	datasets *collections.ConcurrentMap[string, *Dataset]
	ids      []string
	mu       sync.Mutex
}

func (r *Registry) Add(ds *Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.datasets.HasKey(ds.ID()) {
		return fmt.Errorf("%w: %s", ErrDuplicateDataset, ds.ID())
	}
	r.datasets.Set(ds.ID(), ds)
	r.ids = append(r.ids, ds.ID())
	return nil
}

func (r *Registry) Get(datasetID string) (*Dataset, bool) {
	return r.datasets.GetWithTest(datasetID)
}

// Corpus returns a corpus of a dataset
func (r *Registry) Corpus(datasetID string) (*framenet.Corpus, bool) {
	ds, ok := r.datasets.GetWithTest(datasetID)
	if !ok {
		return nil, false
	}
	return ds.Corpus(), true
}

// IDs returns sorted dataset IDs
func (r *Registry) IDs() []string {
	r.mu.Lock()
	ans := make([]string, len(r.ids))
	copy(ans, r.ids)
	r.mu.Unlock()
	sort.Strings(ans)
	return ans
}

func (r *Registry) Len() int {
	return r.datasets.Len()
}

func (r *Registry) Close() {
	for _, id := range r.IDs() {
		ds, ok := r.Get(id)
		if !ok {
			continue
		}
		if err := ds.Close(); err != nil {
			log.Error().Err(err).Str("datasetId", id).Msg("failed to close dataset")
		}
	}
}

func NewRegistry() *Registry {
	return &Registry{
		datasets: collections.NewConcurrentMap[string, *Dataset](),
		ids:      make([]string, 0, 4),
	}
}

// LoadOptions controls loading of configured datasets
type LoadOptions struct {
	NLTKDataDir    string
	MaxAnnotPerKey int
	NumWorkers     int

	// OnFrameLoaded is called after each loaded frame file
	OnFrameLoaded func(datasetID, frameName string)
}

// LoadRegistry loads all the configured datasets
func LoadRegistry(ctx context.Context, confs []Conf, opts LoadOptions) (*Registry, error) {
	ans := NewRegistry()
	for _, conf := range confs {
		version, err := framenet.ParseVersion(conf.Version)
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset %s: %w", conf.ID, err)
		}
		dataDir := conf.DataDir
		if dataDir == "" {
			dataDir = framenet.DefaultDataDir(opts.NLTKDataDir, version)
		}
		loadOpts := framenet.LoadOptions{
			NumWorkers:        opts.NumWorkers,
			ExpectedNumFrames: conf.ExpectedNumFrames,
		}
		if opts.OnFrameLoaded != nil {
			loadOpts.OnFrameLoaded = func(frameName string) {
				opts.OnFrameLoaded(conf.ID, frameName)
			}
		}
		corp, err := framenet.LoadCorpus(ctx, version, dataDir, loadOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset %s: %w", conf.ID, err)
		}
		if err := ans.Add(NewDataset(conf.ID, corp, opts.MaxAnnotPerKey)); err != nil {
			return nil, fmt.Errorf("failed to load dataset %s: %w", conf.ID, err)
		}
		log.Info().Str("datasetId", conf.ID).Str("dataDir", dataDir).Msg("dataset ready")
	}
	return ans, nil
}
