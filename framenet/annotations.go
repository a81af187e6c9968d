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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	layerGF            = "GF"
	layerPT            = "PT"
	annotStatusUnannot = "UNANN"
)

var (
	ErrNoAnnotationData = errors.New("no exemplar annotation data available")

	// ErrStopIteration can be returned by an annotation callback
	// to stop the iteration without reporting an error.
	ErrStopIteration = errors.New("stop iteration")
)

func layerSpans(layer xmlLayer) []Span {
	ans := make([]Span, 0, len(layer.Labels))
	for _, lab := range layer.Labels {
		if lab.Start == "" || lab.End == "" {
			// null instantiations (CNI, DNI, INI) have no position
			continue
		}
		start, err1 := strconv.Atoi(lab.Start)
		end, err2 := strconv.Atoi(lab.End)
		if err1 != nil || err2 != nil {
			continue
		}
		ans = append(ans, Span{Start: start, End: end, Label: lab.Name})
	}
	return ans
}

func (c *Corpus) luFiles() ([]string, error) {
	if c.dataDir == "" {
		return nil, ErrNoAnnotationData
	}
	dirPath := filepath.Join(c.dataDir, luSubdir)
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoAnnotationData
		}
		return nil, fmt.Errorf("failed to list LU files: %w", err)
	}
	ans := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".xml") {
			ans = append(ans, filepath.Join(dirPath, e.Name()))
		}
	}
	sort.Strings(ans)
	return ans, nil
}

// Annotations iterates over exemplar annotation sets of all the lexical
// units (files lu/lu*.xml). Only rank 1 GF and PT layers are extracted.
// The iteration is stopped by the first error returned by fn.
// In such case, the error is returned unless it is ErrStopIteration.
func (c *Corpus) Annotations(ctx context.Context, fn func(annot *AnnotationSet) error) error {
	files, err := c.luFiles()
	if err != nil {
		return err
	}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		var doc xmlLUDoc
		if err := decodeXMLFile(path, &doc); err != nil {
			return fmt.Errorf("failed to read annotations: %w", err)
		}
		for _, subc := range doc.SubCorpora {
			for _, sent := range subc.Sentences {
				for _, aset := range sent.AnnotationSets {
					if aset.Status == annotStatusUnannot {
						continue
					}
					item := &AnnotationSet{
						ID:         aset.ID,
						SentenceID: sent.ID,
						Text:       sent.Text,
						LUID:       doc.ID,
						LUName:     doc.Name,
						POS:        doc.POS,
						FrameName:  doc.Frame,
					}
					for _, layer := range aset.Layers {
						if layer.Rank > 1 {
							continue
						}
						switch layer.Name {
						case layerGF:
							item.GF = append(item.GF, layerSpans(layer)...)
						case layerPT:
							item.PT = append(item.PT, layerSpans(layer)...)
						}
					}
					if err := fn(item); err != nil {
						if err == ErrStopIteration {
							return nil
						}
						return err
					}
				}
			}
		}
	}
	return nil
}
