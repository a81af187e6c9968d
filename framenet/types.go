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
	"errors"
	"strings"
)

var (
	ErrFrameNotFound = errors.New("frame not found")
	ErrLUNotFound    = errors.New("lexical unit not found")
)

// CoreType is a coreness status of a frame element
type CoreType string

const (
	CoreTypeCore            CoreType = "Core"
	CoreTypeCoreUnexpressed CoreType = "Core-Unexpressed"
	CoreTypeExtraThematic   CoreType = "Extra-Thematic"
	CoreTypePeripheral      CoreType = "Peripheral"
)

// CoreTypes lists all the coreness types in the order used
// by the tabular outputs.
var CoreTypes = []CoreType{
	CoreTypeCore,
	CoreTypeCoreUnexpressed,
	CoreTypeExtraThematic,
	CoreTypePeripheral,
}

// FERef refers to a frame element of the same frame
type FERef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type FrameElement struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Abbrev     string   `json:"abbrev"`
	Definition string   `json:"definition"`
	CoreType   CoreType `json:"coreType"`
	SemTypes   []string `json:"semTypes,omitempty"`
	Requires   []FERef  `json:"requires,omitempty"`
	Excludes   []FERef  `json:"excludes,omitempty"`
}

// LexUnit is a lemma+PoS pairing evoking a frame.
// The Name has the form `lemma.pos` (e.g. `abandon.v`).
type LexUnit struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	POS        string `json:"pos"`
	Status     string `json:"status,omitempty"`
	Definition string `json:"definition,omitempty"`
	FrameID    int    `json:"frameId"`
	FrameName  string `json:"frameName"`

	// NumAnnotated is the number of annotated exemplar sentences
	NumAnnotated int `json:"numAnnotated"`
}

// Lemma returns the part of the name preceding the last dot.
func (lu *LexUnit) Lemma() string {
	if i := strings.LastIndex(lu.Name, "."); i >= 0 {
		return lu.Name[:i]
	}
	return lu.Name
}

// RelatedFrames groups frames related to a frame by a single
// relation direction (e.g. "Inherits from").
type RelatedFrames struct {
	Type   string   `json:"type"`
	Frames []string `json:"frames"`
}

type Frame struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Definition string          `json:"definition"`
	FEs        []*FrameElement `json:"fes"`
	FECoreSets [][]FERef       `json:"feCoreSets,omitempty"`
	LexUnits   []*LexUnit      `json:"lexUnits"`
	Relations  []RelatedFrames `json:"relations,omitempty"`
	SemTypes   []string        `json:"semTypes,omitempty"`
}

func (f *Frame) FEByName(name string) *FrameElement {
	for _, fe := range f.FEs {
		if fe.Name == name {
			return fe
		}
	}
	return nil
}

// FrameRelation is a directed frame-to-frame relation
// between a super-frame and a sub-frame.
type FrameRelation struct {
	ID             int    `json:"id"`
	Type           string `json:"type"`
	SuperFrameID   int    `json:"superFrameId"`
	SuperFrameName string `json:"superFrameName"`
	SubFrameID     int    `json:"subFrameId"`
	SubFrameName   string `json:"subFrameName"`
}

// Span is a labelled character range within a sentence
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

// AnnotationSet is a single exemplar annotation of a lexical unit
type AnnotationSet struct {
	ID         int    `json:"id"`
	SentenceID int    `json:"sentenceId"`
	Text       string `json:"text"`
	LUID       int    `json:"luId"`
	LUName     string `json:"luName"`
	POS        string `json:"pos"`
	FrameName  string `json:"frameName"`
	GF         []Span `json:"gf"`
	PT         []Span `json:"pt"`
}
