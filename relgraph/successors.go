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
	"slices"
	"strings"
)

// Levels maps depth to sorted frame names found at the depth.
// Depth 1 contains direct successors of a starting frame.
type Levels map[int][]string

// Depth returns the deepest level
func (lv Levels) Depth() int {
	var ans int
	for k := range lv {
		ans = max(ans, k)
	}
	return ans
}

// AllSuccessorsByLevel collects all the frames below the start frame,
// grouped by their distance. A frame reachable by paths of different
// lengths appears on multiple levels. In case the start frame is not
// part of the graph, the result is {0: [start]}.
//
// In a graph with cycles, the sequence of levels eventually repeats.
// The expansion stops before the first level equal to an already
// recorded one.
func AllSuccessorsByLevel(g *Graph, start string) Levels {
	current, err := g.Successors(start)
	if err != nil {
		return Levels{0: {start}}
	}
	ans := make(Levels)
	seenLevels := make(map[string]bool)
	for level := 1; len(current) > 0; level++ {
		levelKey := strings.Join(current, "\x00")
		if seenLevels[levelKey] {
			break
		}
		seenLevels[levelKey] = true
		ans[level] = current

		next := make(map[string]bool)
		for _, node := range current {
			for succ := range g.adjacency[node] {
				next[succ] = true
			}
		}
		current = make([]string, 0, len(next))
		for k := range next {
			current = append(current, k)
		}
		slices.Sort(current)
	}
	return ans
}
