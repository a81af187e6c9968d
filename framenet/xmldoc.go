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
	"encoding/xml"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	markupRegexp     = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegexp = regexp.MustCompile(`\s+`)
)

// stripMarkup removes FrameNet's inline markup (<def-root>, <fen>,
// <ex>, ...) from a definition. Note that the XML decoder has already
// unescaped the `&lt;`, `&gt;` entities so the tags are plain text here.
func stripMarkup(s string) string {
	s = markupRegexp.ReplaceAllString(s, "")
	return strings.TrimSpace(whitespaceRegexp.ReplaceAllString(s, " "))
}

type xmlFrameIndex struct {
	Frames []struct {
		ID   int    `xml:"ID,attr"`
		Name string `xml:"name,attr"`
	} `xml:"frame"`
}

type xmlSemType struct {
	ID   int    `xml:"ID,attr"`
	Name string `xml:"name,attr"`
}

type xmlFERef struct {
	ID   int    `xml:"ID,attr"`
	Name string `xml:"name,attr"`
}

type xmlFE struct {
	ID         int          `xml:"ID,attr"`
	Name       string       `xml:"name,attr"`
	Abbrev     string       `xml:"abbrev,attr"`
	CoreType   string       `xml:"coreType,attr"`
	Definition string       `xml:"definition"`
	SemTypes   []xmlSemType `xml:"semType"`
	Requires   []xmlFERef   `xml:"requiresFE"`
	Excludes   []xmlFERef   `xml:"excludesFE"`
}

type xmlFrameLU struct {
	ID            int    `xml:"ID,attr"`
	Name          string `xml:"name,attr"`
	POS           string `xml:"POS,attr"`
	Status        string `xml:"status,attr"`
	Definition    string `xml:"definition"`
	SentenceCount struct {
		Annotated int `xml:"annotated,attr"`
		Total     int `xml:"total,attr"`
	} `xml:"sentenceCount"`
}

type xmlFrame struct {
	ID         int          `xml:"ID,attr"`
	Name       string       `xml:"name,attr"`
	Definition string       `xml:"definition"`
	SemTypes   []xmlSemType `xml:"semType"`
	FEs        []xmlFE      `xml:"FE"`
	FECoreSets []struct {
		Members []xmlFERef `xml:"memberFE"`
	} `xml:"FEcoreSet"`
	Relations []struct {
		Type    string `xml:"type,attr"`
		Related []struct {
			ID   int    `xml:"ID,attr"`
			Name string `xml:",chardata"`
		} `xml:"relatedFrame"`
	} `xml:"frameRelation"`
	LexUnits []xmlFrameLU `xml:"lexUnit"`
}

func (xf *xmlFrame) toFrame() *Frame {
	frame := &Frame{
		ID:         xf.ID,
		Name:       xf.Name,
		Definition: stripMarkup(xf.Definition),
		FEs:        make([]*FrameElement, 0, len(xf.FEs)),
		LexUnits:   make([]*LexUnit, 0, len(xf.LexUnits)),
	}
	for _, st := range xf.SemTypes {
		frame.SemTypes = append(frame.SemTypes, st.Name)
	}
	for _, xfe := range xf.FEs {
		fe := &FrameElement{
			ID:         xfe.ID,
			Name:       xfe.Name,
			Abbrev:     xfe.Abbrev,
			CoreType:   CoreType(xfe.CoreType),
			Definition: stripMarkup(xfe.Definition),
		}
		for _, st := range xfe.SemTypes {
			fe.SemTypes = append(fe.SemTypes, st.Name)
		}
		for _, r := range xfe.Requires {
			fe.Requires = append(fe.Requires, FERef(r))
		}
		for _, r := range xfe.Excludes {
			fe.Excludes = append(fe.Excludes, FERef(r))
		}
		frame.FEs = append(frame.FEs, fe)
	}
	for _, cs := range xf.FECoreSets {
		members := make([]FERef, len(cs.Members))
		for i, m := range cs.Members {
			members[i] = FERef(m)
		}
		frame.FECoreSets = append(frame.FECoreSets, members)
	}
	for _, rel := range xf.Relations {
		if len(rel.Related) == 0 {
			continue
		}
		item := RelatedFrames{Type: rel.Type, Frames: make([]string, len(rel.Related))}
		for i, rf := range rel.Related {
			item.Frames[i] = strings.TrimSpace(rf.Name)
		}
		frame.Relations = append(frame.Relations, item)
	}
	for _, xlu := range xf.LexUnits {
		frame.LexUnits = append(frame.LexUnits, &LexUnit{
			ID:           xlu.ID,
			Name:         xlu.Name,
			POS:          xlu.POS,
			Status:       xlu.Status,
			Definition:   strings.TrimSpace(xlu.Definition),
			FrameID:      xf.ID,
			FrameName:    xf.Name,
			NumAnnotated: xlu.SentenceCount.Annotated,
		})
	}
	return frame
}

type xmlLUIndex struct {
	LUs []struct {
		ID                int    `xml:"ID,attr"`
		Name              string `xml:"name,attr"`
		Status            string `xml:"status,attr"`
		FrameID           int    `xml:"frameID,attr"`
		FrameName         string `xml:"frameName,attr"`
		NumAnnotInstances int    `xml:"numAnnotInstances,attr"`
	} `xml:"lu"`
}

type xmlFrameRelations struct {
	Types []struct {
		ID        int    `xml:"ID,attr"`
		Name      string `xml:"name,attr"`
		Relations []struct {
			ID             int    `xml:"ID,attr"`
			SubFrameName   string `xml:"subFrameName,attr"`
			SuperFrameName string `xml:"superFrameName,attr"`
			SubID          int    `xml:"subID,attr"`
			SupID          int    `xml:"supID,attr"`
		} `xml:"frameRelation"`
	} `xml:"frameRelationType"`
}

type xmlLabel struct {
	Name  string `xml:"name,attr"`
	Start string `xml:"start,attr"`
	End   string `xml:"end,attr"`
}

type xmlLayer struct {
	Name   string     `xml:"name,attr"`
	Rank   int        `xml:"rank,attr"`
	Labels []xmlLabel `xml:"label"`
}

type xmlAnnotationSet struct {
	ID     int        `xml:"ID,attr"`
	Status string     `xml:"status,attr"`
	Layers []xmlLayer `xml:"layer"`
}

type xmlSentence struct {
	ID             int                `xml:"ID,attr"`
	Text           string             `xml:"text"`
	AnnotationSets []xmlAnnotationSet `xml:"annotationSet"`
}

type xmlLUDoc struct {
	ID         int    `xml:"ID,attr"`
	Name       string `xml:"name,attr"`
	POS        string `xml:"POS,attr"`
	Frame      string `xml:"frame,attr"`
	FrameID    int    `xml:"frameID,attr"`
	SubCorpora []struct {
		Name      string        `xml:"name,attr"`
		Sentences []xmlSentence `xml:"sentence"`
	} `xml:"subCorpus"`
}

func decodeXMLFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	if err := xml.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
