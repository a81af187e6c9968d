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

package relgraph

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"fnreg/framenet"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
)

const (
	feRelExcludes = "excludes"
	feRelRequires = "requires"
)

func addFEEdge(g graph.Graph[string, string], fe1, fe2, label string) error {
	if err := addVertexIfMissing(g, fe1); err != nil {
		return err
	}
	if err := addVertexIfMissing(g, fe2); err != nil {
		return err
	}
	err := g.AddEdge(fe1, fe2, graph.EdgeAttribute("label", label))
	if errors.Is(err, graph.ErrEdgeAlreadyExists) {
		edge, err := g.Edge(fe1, fe2)
		if err != nil {
			return err
		}
		current := edge.Properties.Attributes["label"]
		if slices.Contains(strings.Split(current, ", "), label) {
			return nil
		}
		return g.UpdateEdge(fe1, fe2, graph.EdgeAttribute("label", current+", "+label))
	}
	return err
}

// FERelationsGraph creates an undirected graph of the frame's FEs.
// FEs are connected by `excludes` and `requires` relations and
// members of each core set are connected pairwise by `coreset N`
// edges (N is a zero-based index of the core set). Multiple labels
// of the same FE pair are joined.
func FERelationsGraph(frame *framenet.Frame) (graph.Graph[string, string], error) {
	g := graph.New(graph.StringHash)
	for _, fe := range frame.FEs {
		var err error
		if fe.CoreType == framenet.CoreTypeCore {
			err = g.AddVertex(fe.Name, graph.VertexAttribute("style", "bold"))
		} else {
			err = g.AddVertex(fe.Name)
		}
		if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("failed to create FE graph of %s: %w", frame.Name, err)
		}
	}
	for _, fe := range frame.FEs {
		for _, ex := range fe.Excludes {
			if err := addFEEdge(g, fe.Name, ex.Name, feRelExcludes); err != nil {
				return nil, fmt.Errorf("failed to create FE graph of %s: %w", frame.Name, err)
			}
		}
		for _, req := range fe.Requires {
			if err := addFEEdge(g, fe.Name, req.Name, feRelRequires); err != nil {
				return nil, fmt.Errorf("failed to create FE graph of %s: %w", frame.Name, err)
			}
		}
	}
	for i, coreSet := range frame.FECoreSets {
		label := fmt.Sprintf("coreset %d", i)
		for j := 0; j < len(coreSet); j++ {
			for k := j + 1; k < len(coreSet); k++ {
				if err := addFEEdge(g, coreSet[j].Name, coreSet[k].Name, label); err != nil {
					return nil, fmt.Errorf("failed to create FE graph of %s: %w", frame.Name, err)
				}
			}
		}
	}
	return g, nil
}

// FERelationsDOT writes FE relations of the frame in the DOT format
func FERelationsDOT(frame *framenet.Frame, w io.Writer) error {
	g, err := FERelationsGraph(frame)
	if err != nil {
		return err
	}
	return draw.DOT(g, w)
}
