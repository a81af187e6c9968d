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

package tables

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"fnreg/framenet"
)

// Layer selects a span layer of annotation sets
type Layer string

const (
	LayerGF Layer = "GF"
	LayerPT Layer = "PT"
)

type AnnotationKey struct {
	POS   string `json:"pos"`
	Label string `json:"label"`
}

// AnnotationGroup holds annotation sets sharing the same (POS, label)
// pair. Count is always exact, Examples may be capped.
type AnnotationGroup struct {
	Key      AnnotationKey             `json:"key"`
	Count    int                       `json:"count"`
	Examples []*framenet.AnnotationSet `json:"examples"`
}

type AnnotationGroups map[AnnotationKey]*AnnotationGroup

// Keys returns all the group keys sorted by POS and label
func (ag AnnotationGroups) Keys() []AnnotationKey {
	ans := make([]AnnotationKey, 0, len(ag))
	for k := range ag {
		ans = append(ans, k)
	}
	sort.Slice(ans, func(i, j int) bool {
		if ans[i].POS != ans[j].POS {
			return ans[i].POS < ans[j].POS
		}
		return ans[i].Label < ans[j].Label
	})
	return ans
}

// GroupAnnotations maps (POS of LU, GF or PT label) to annotation sets
// containing a span with such label. An annotation set is counted once
// per matching span. With maxPerKey > 0, at most maxPerKey examples
// are stored for each key.
func GroupAnnotations(
	ctx context.Context,
	c *framenet.Corpus,
	layer Layer,
	maxPerKey int,
) (AnnotationGroups, error) {
	if layer != LayerGF && layer != LayerPT {
		return nil, fmt.Errorf("unknown annotation layer %s", layer)
	}
	ans := make(AnnotationGroups)
	err := c.Annotations(ctx, func(annot *framenet.AnnotationSet) error {
		spans := annot.GF
		if layer == LayerPT {
			spans = annot.PT
		}
		for _, span := range spans {
			key := AnnotationKey{POS: annot.POS, Label: span.Label}
			grp, ok := ans[key]
			if !ok {
				grp = &AnnotationGroup{Key: key}
				ans[key] = grp
			}
			grp.Count++
			if maxPerKey <= 0 || len(grp.Examples) < maxPerKey {
				grp.Examples = append(grp.Examples, annot)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to group %s annotations: %w", layer, err)
	}
	return ans, nil
}

type AnnotationSummaryRow struct {
	POS        string `json:"pos"`
	Label      string `json:"label"`
	Count      int    `json:"count"`
	ExampleIDs []int  `json:"examples"`
}

func (r AnnotationSummaryRow) Values() []string {
	return []string{r.POS, r.Label, strconv.Itoa(r.Count), joinInts(r.ExampleIDs)}
}

// AnnotationSummary converts annotation groups into a table with IDs
// of the stored example annotation sets.
func AnnotationSummary(groups AnnotationGroups) *Table[AnnotationSummaryRow] {
	ans := NewTable[AnnotationSummaryRow]("POS", "Label", "Count", "Examples")
	for _, k := range groups.Keys() {
		grp := groups[k]
		ids := make([]int, len(grp.Examples))
		for i, ex := range grp.Examples {
			ids[i] = ex.ID
		}
		ans.Append(AnnotationSummaryRow{POS: k.POS, Label: k.Label, Count: grp.Count, ExampleIDs: ids})
	}
	return ans
}
