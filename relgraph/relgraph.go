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
	"slices"
	"strconv"

	"fnreg/framenet"

	"github.com/dominikbraun/graph"
	"github.com/rs/zerolog/log"
)

var ErrFrameNotInGraph = errors.New("frame not found in the relation graph")

// Graph is a directed graph of frame-to-frame relations with
// edges going from super-frames to sub-frames. Once built,
// the graph is read-only.
type Graph struct {
	g             graph.Graph[string, string]
	adjacency     map[string]map[string]graph.Edge[string]
	relationTypes []string
}

// RelationTypes returns relation types the graph has been restricted to.
// An empty value means all the types.
func (g *Graph) RelationTypes() []string {
	return g.relationTypes
}

func (g *Graph) HasFrame(name string) bool {
	_, ok := g.adjacency[name]
	return ok
}

// Successors returns sorted names of frames directly below the frame.
func (g *Graph) Successors(name string) ([]string, error) {
	succ, ok := g.adjacency[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFrameNotInGraph, name)
	}
	ans := make([]string, 0, len(succ))
	for k := range succ {
		ans = append(ans, k)
	}
	slices.Sort(ans)
	return ans, nil
}

// Order returns number of frames (vertices) in the graph
func (g *Graph) Order() int {
	return len(g.adjacency)
}

// Size returns number of edges in the graph. Multiple relations
// between the same pair of frames form a single edge.
func (g *Graph) Size() int {
	var ans int
	for _, v := range g.adjacency {
		ans += len(v)
	}
	return ans
}

// EdgeRelations returns relation type -> relation ID map of all the
// relations between the super-frame and the sub-frame.
func (g *Graph) EdgeRelations(superFrame, subFrame string) (map[string]int, error) {
	succ, ok := g.adjacency[superFrame]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFrameNotInGraph, superFrame)
	}
	edge, ok := succ[subFrame]
	if !ok {
		return nil, fmt.Errorf("no relation between %s and %s", superFrame, subFrame)
	}
	ans := make(map[string]int, len(edge.Properties.Attributes))
	for relType, v := range edge.Properties.Attributes {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid relation ID %s for %s: %w", v, relType, err)
		}
		ans[relType] = id
	}
	return ans, nil
}

func addVertexIfMissing(g graph.Graph[string, string], name string) error {
	err := g.AddVertex(name)
	if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return err
	}
	return nil
}

// Build creates a relation graph out of the corpus frame relations.
// With empty relationTypes, all the relations are used. Otherwise,
// only the listed ones. Only frames involved in at least one of
// the relations become part of the graph.
func Build(c *framenet.Corpus, relationTypes []string) (*Graph, error) {
	g := graph.New(graph.StringHash, graph.Directed())
	for _, rel := range c.FrameRelations() {
		if len(relationTypes) > 0 && !slices.Contains(relationTypes, rel.Type) {
			continue
		}
		if err := addVertexIfMissing(g, rel.SuperFrameName); err != nil {
			return nil, fmt.Errorf("failed to build relation graph: %w", err)
		}
		if err := addVertexIfMissing(g, rel.SubFrameName); err != nil {
			return nil, fmt.Errorf("failed to build relation graph: %w", err)
		}
		relID := strconv.Itoa(rel.ID)
		err := g.AddEdge(
			rel.SuperFrameName, rel.SubFrameName, graph.EdgeAttribute(rel.Type, relID))
		if errors.Is(err, graph.ErrEdgeAlreadyExists) {
			err = g.UpdateEdge(
				rel.SuperFrameName, rel.SubFrameName, graph.EdgeAttribute(rel.Type, relID))
		}
		if err != nil {
			return nil, fmt.Errorf(
				"failed to add relation %s -> %s: %w", rel.SuperFrameName, rel.SubFrameName, err)
		}
	}
	adj, err := g.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("failed to build relation graph: %w", err)
	}
	ans := &Graph{
		g:             g,
		adjacency:     adj,
		relationTypes: relationTypes,
	}
	log.Debug().
		Strs("relationTypes", relationTypes).
		Int("order", ans.Order()).
		Int("size", ans.Size()).
		Msg("built frame relation graph")
	return ans, nil
}
