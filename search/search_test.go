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
	"testing"

	"fnreg/framenet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) *Index {
	corp, err := framenet.LoadCorpus(
		context.Background(),
		framenet.Version17,
		"../framenet/testdata/fn_mini",
		framenet.LoadOptions{ExpectedNumFrames: -1},
	)
	require.NoError(t, err)
	idx, err := NewIndex(context.Background(), corp)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func hitNames(res Result) []string {
	ans := make([]string, len(res.Hits))
	for i, h := range res.Hits {
		ans[i] = h.FrameName
	}
	return ans
}

func TestSearchByLemma(t *testing.T) {
	idx := newTestIndex(t)
	res, err := idx.Search(context.Background(), "lemmas:leave", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), res.Total)
	assert.ElementsMatch(t, []string{"Abandonment", "Departing", "Quitting"}, hitNames(res))
}

func TestSearchByLUName(t *testing.T) {
	idx := newTestIndex(t)
	res, err := idx.Search(context.Background(), "lus:depart.v", 0)
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "Departing", res.Hits[0].FrameName)
	assert.Equal(t, 30, res.Hits[0].FrameID)
}

func TestSearchByFE(t *testing.T) {
	idx := newTestIndex(t)
	res, err := idx.Search(context.Background(), "fes:source", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Departing"}, hitNames(res))
}

func TestSearchLimit(t *testing.T) {
	idx := newTestIndex(t)
	res, err := idx.Search(context.Background(), "lemmas:leave", 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), res.Total)
	assert.Len(t, res.Hits, 1)
}

func TestSearchEmptyQuery(t *testing.T) {
	idx := newTestIndex(t)
	_, err := idx.Search(context.Background(), "", 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}
