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
	"fmt"
	"sort"
)

// Corpus is a loaded FrameNet release. Once created, it is read-only
// and can be shared between goroutines.
type Corpus struct {
	version      Version
	dataDir      string
	frames       []*Frame
	framesByName map[string]*Frame
	framesByID   map[int]*Frame
	lus          []*LexUnit
	relations    []*FrameRelation
}

func (c *Corpus) Version() Version {
	return c.version
}

// DataDir returns the directory the corpus has been loaded from.
// For in-memory corpora, the value is empty.
func (c *Corpus) DataDir() string {
	return c.dataDir
}

// Frames returns all the frames in the order of the frame index
func (c *Corpus) Frames() []*Frame {
	return c.frames
}

func (c *Corpus) FrameByName(name string) (*Frame, error) {
	f, ok := c.framesByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFrameNotFound, name)
	}
	return f, nil
}

func (c *Corpus) FrameByID(id int) (*Frame, error) {
	f, ok := c.framesByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrFrameNotFound, id)
	}
	return f, nil
}

// LUs returns lexical units as listed by the LU index
func (c *Corpus) LUs() []*LexUnit {
	return c.lus
}

// LUsByName returns all the lexical units with the provided
// name (e.g. `run.v`). A name can evoke multiple frames.
func (c *Corpus) LUsByName(name string) []*LexUnit {
	ans := make([]*LexUnit, 0, 4)
	for _, frame := range c.frames {
		for _, lu := range frame.LexUnits {
			if lu.Name == name {
				ans = append(ans, lu)
			}
		}
	}
	return ans
}

func (c *Corpus) FrameRelations() []*FrameRelation {
	return c.relations
}

// RelationTypes returns sorted unique frame-to-frame relation types
// found in the corpus.
func (c *Corpus) RelationTypes() []string {
	uniq := make(map[string]bool)
	for _, rel := range c.relations {
		uniq[rel.Type] = true
	}
	ans := make([]string, 0, len(uniq))
	for k := range uniq {
		ans = append(ans, k)
	}
	sort.Strings(ans)
	return ans
}

// NewCorpus creates a corpus out of already available data.
// In case lus is nil, the LU list is derived from the frames.
func NewCorpus(version Version, frames []*Frame, lus []*LexUnit, relations []*FrameRelation) *Corpus {
	c := &Corpus{
		version:      version,
		frames:       frames,
		framesByName: make(map[string]*Frame, len(frames)),
		framesByID:   make(map[int]*Frame, len(frames)),
		lus:          lus,
		relations:    relations,
	}
	for _, f := range frames {
		c.framesByName[f.Name] = f
		c.framesByID[f.ID] = f
	}
	if c.lus == nil {
		c.lus = make([]*LexUnit, 0, len(frames)*10)
		for _, f := range frames {
			c.lus = append(c.lus, f.LexUnits...)
		}
	}
	if c.relations == nil {
		c.relations = []*FrameRelation{}
	}
	return c
}
