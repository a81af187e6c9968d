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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fnreg/framenet"
	"fnreg/relgraph"
	"fnreg/tables"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDataDir = "../framenet/testdata/fn_mini"

func newTestRegistry(t *testing.T) *Registry {
	reg, err := LoadRegistry(
		context.Background(),
		[]Conf{{ID: "fn17", Version: "1.7", DataDir: testDataDir, ExpectedNumFrames: -1}},
		LoadOptions{MaxAnnotPerKey: 2},
	)
	require.NoError(t, err)
	t.Cleanup(reg.Close)
	return reg
}

func newTestEngine(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	actions := NewActions(newTestRegistry(t))
	engine := gin.New()
	engine.GET("/datasets", actions.List)
	engine.GET("/datasets/:datasetId/frames", actions.Frames)
	engine.GET("/datasets/:datasetId/frames/:frameName", actions.Frame)
	engine.GET("/datasets/:datasetId/frames/:frameName/successors", actions.Successors)
	engine.GET("/datasets/:datasetId/frames/:frameName/feGraph", actions.FEGraph)
	engine.GET("/datasets/:datasetId/lus/:lemma", actions.LUs)
	engine.GET("/datasets/:datasetId/tables/:tableId", actions.Table)
	engine.GET("/datasets/:datasetId/relationTypes", actions.RelationTypes)
	engine.GET("/datasets/:datasetId/search", actions.Search)
	return engine
}

func doGet(engine *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestLoadRegistry(t *testing.T) {
	reg := newTestRegistry(t)
	assert.Equal(t, []string{"fn17"}, reg.IDs())
	corp, ok := reg.Corpus("fn17")
	require.True(t, ok)
	assert.Len(t, corp.Frames(), 4)
	_, ok = reg.Corpus("fn15")
	assert.False(t, ok)
}

func TestLoadRegistryFrameCallback(t *testing.T) {
	var numCalls atomic.Int32
	_, err := LoadRegistry(
		context.Background(),
		[]Conf{{ID: "fn17", Version: "1.7", DataDir: testDataDir, ExpectedNumFrames: -1}},
		LoadOptions{
			OnFrameLoaded: func(datasetID, frameName string) {
				assert.Equal(t, "fn17", datasetID)
				numCalls.Add(1)
			},
		},
	)
	require.NoError(t, err)
	assert.Equal(t, int32(4), numCalls.Load())
}

func TestLoadRegistryInvalidVersion(t *testing.T) {
	_, err := LoadRegistry(
		context.Background(),
		[]Conf{{ID: "fn16", Version: "1.6", DataDir: testDataDir}},
		LoadOptions{},
	)
	assert.Error(t, err)
}

func TestDuplicateDataset(t *testing.T) {
	reg := newTestRegistry(t)
	ds, _ := reg.Get("fn17")
	assert.ErrorIs(t, reg.Add(NewDataset("fn17", ds.Corpus(), 0)), ErrDuplicateDataset)
}

func TestRelationGraphCached(t *testing.T) {
	reg := newTestRegistry(t)
	ds, _ := reg.Get("fn17")
	g1, err := ds.RelationGraph([]string{"Using", "Inheritance"})
	require.NoError(t, err)
	g2, err := ds.RelationGraph([]string{"Inheritance", "Using"})
	require.NoError(t, err)
	assert.Same(t, g1, g2)

	_, err = ds.RelationGraph([]string{"Precedes"})
	assert.ErrorIs(t, err, ErrUnknownRelationType)
}

func TestFindLUs(t *testing.T) {
	reg := newTestRegistry(t)
	ds, _ := reg.Get("fn17")
	assert.Len(t, ds.FindLUs("leave", ""), 3)
	assert.Len(t, ds.FindLUs("leave", "v"), 3)
	assert.Len(t, ds.FindLUs("leave", "N"), 0)
}

func TestListAction(t *testing.T) {
	w := doGet(newTestEngine(t), "/datasets")
	require.Equal(t, http.StatusOK, w.Code)
	var ans []Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ans))
	require.Len(t, ans, 1)
	assert.Equal(t, "1.7", ans[0].Version)
	assert.Equal(t, 4, ans[0].NumFrames)
	assert.Equal(t, []string{"Inheritance", "Using"}, ans[0].RelationTypes)
}

func TestFrameAction(t *testing.T) {
	engine := newTestEngine(t)
	w := doGet(engine, "/datasets/fn17/frames/Departing")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Departing"`)

	w = doGet(engine, "/datasets/fn17/frames/Ghost")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doGet(engine, "/datasets/fn99/frames/Departing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSuccessorsAction(t *testing.T) {
	engine := newTestEngine(t)
	w := doGet(engine, "/datasets/fn17/frames/Intentionally_act/successors?relations=Inheritance")
	require.Equal(t, http.StatusOK, w.Code)
	var ans SuccessorsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ans))
	assert.Equal(t, relgraph.Levels{1: {"Abandonment", "Quitting"}}, ans.Levels)
	assert.Equal(t, 1, ans.Depth)

	w = doGet(engine, "/datasets/fn17/frames/Intentionally_act/successors")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ans))
	assert.Equal(t, relgraph.Levels{1: {"Abandonment", "Quitting"}, 2: {"Departing"}}, ans.Levels)

	w = doGet(engine, "/datasets/fn17/frames/Intentionally_act/successors?relations=Foo")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFEGraphAction(t *testing.T) {
	w := doGet(newTestEngine(t), "/datasets/fn17/frames/Abandonment/feGraph")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/vnd.graphviz"))
	assert.Contains(t, w.Body.String(), "Explanation")
}

func TestLUsAction(t *testing.T) {
	engine := newTestEngine(t)
	w := doGet(engine, "/datasets/fn17/lus/abandon?pos=V")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"abandon.v"`)

	w = doGet(engine, "/datasets/fn17/lus/nonexistent")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTableAction(t *testing.T) {
	engine := newTestEngine(t)
	w := doGet(engine, "/datasets/fn17/tables/frameLUs?format=tsv")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "Frame ID\tLU IDs\tFreq\n"))

	w = doGet(engine, "/datasets/fn17/tables/posGF?format=csv")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "V,Ext,2,")

	w = doGet(engine, "/datasets/fn17/tables/unknown")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doGet(engine, "/datasets/fn17/tables/frameLUs?format=xlsx")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchAction(t *testing.T) {
	engine := newTestEngine(t)
	w := doGet(engine, "/datasets/fn17/search?q=lemmas:quit")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"frameName":"Quitting"`)

	w = doGet(engine, "/datasets/fn17/search")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnnotationGroupsShared(t *testing.T) {
	reg := newTestRegistry(t)
	ds, _ := reg.Get("fn17")
	results := make([]tables.AnnotationGroups, 8)
	var wg sync.WaitGroup
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			groups, err := ds.AnnotationGroups(context.Background(), tables.LayerGF)
			assert.NoError(t, err)
			results[i] = groups
		}()
	}
	wg.Wait()
	require.NotEmpty(t, results[0])
	for _, groups := range results[1:] {
		assert.Equal(t, reflect.ValueOf(results[0]).Pointer(), reflect.ValueOf(groups).Pointer())
	}
}

func TestAnnotationGroupsCancelledCaller(t *testing.T) {
	reg := newTestRegistry(t)
	ds, _ := reg.Get("fn17")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ds.AnnotationGroups(ctx, tables.LayerPT)
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
	groups, err := ds.AnnotationGroups(context.Background(), tables.LayerPT)
	require.NoError(t, err)
	assert.NotEmpty(t, groups)
}

func TestAnnotationScanDoesNotBlockOtherData(t *testing.T) {
	reg := newTestRegistry(t)
	ds, _ := reg.Get("fn17")
	// simulate a long running scan
	pending := &annotScan{done: make(chan struct{})}
	ds.annotMu.Lock()
	ds.annotScans[tables.LayerGF] = pending
	ds.annotMu.Unlock()

	done := make(chan error, 1)
	go func() {
		_, err := ds.RelationGraph(nil)
		done <- err
	}()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("relation graph blocked by a running annotation scan")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := ds.AnnotationGroups(ctx, tables.LayerGF)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	pending.groups = tables.AnnotationGroups{}
	close(pending.done)
	groups, err := ds.AnnotationGroups(context.Background(), tables.LayerGF)
	assert.NoError(t, err)
	assert.Empty(t, groups)
}

func TestAnnotationGroupsFailureNotCached(t *testing.T) {
	ds := NewDataset("mem", framenet.NewCorpus(framenet.Version17, []*framenet.Frame{}, nil, nil), 0)
	defer ds.Close()
	_, err := ds.AnnotationGroups(context.Background(), tables.LayerGF)
	assert.ErrorIs(t, err, framenet.ErrNoAnnotationData)
	ds.annotMu.Lock()
	_, cached := ds.annotScans[tables.LayerGF]
	ds.annotMu.Unlock()
	assert.False(t, cached)
}
