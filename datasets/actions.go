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
	"errors"
	"fmt"
	"net/http"
	"strings"

	"fnreg/framenet"
	"fnreg/relgraph"
	"fnreg/search"
	"fnreg/tables"

	"github.com/czcorpus/cnc-gokit/unireq"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

const (
	dfltSearchLimit = 20

	TableFrameLUs      = "frameLUs"
	TableLUFrames      = "luFrames"
	TableFrameFETypes  = "frameFETypes"
	TableFEFrames      = "feFrames"
	TableFECoreness    = "feCoreness"
	TableLUFreqClasses = "luFreqClasses"
	TablePOSGF         = "posGF"
	TablePOSPT         = "posPT"
)

var ErrUnknownTable = errors.New("unknown table")

// FrameListItem is a brief overview of a frame
type FrameListItem struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	NumFEs int    `json:"numFEs"`
	NumLUs int    `json:"numLUs"`
}

type SuccessorsResponse struct {
	Frame         string          `json:"frame"`
	RelationTypes []string        `json:"relationTypes"`
	Levels        relgraph.Levels `json:"levels"`
	Depth         int             `json:"depth"`
}

type Actions struct {
	registry *Registry
}

func (a *Actions) dataset(ctx *gin.Context) (*Dataset, bool) {
	datasetID := ctx.Param("datasetId")
	ds, ok := a.registry.Get(datasetID)
	if !ok {
		uniresp.RespondWithErrorJSON(
			ctx, fmt.Errorf("%w: %s", ErrDatasetNotFound, datasetID), http.StatusNotFound)
		return nil, false
	}
	return ds, true
}

func (a *Actions) frame(ctx *gin.Context, ds *Dataset) (*framenet.Frame, bool) {
	frame, err := ds.Corpus().FrameByName(ctx.Param("frameName"))
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusNotFound)
		return nil, false
	}
	return frame, true
}

func (a *Actions) List(ctx *gin.Context) {
	ans := make([]Info, 0, a.registry.Len())
	for _, id := range a.registry.IDs() {
		if ds, ok := a.registry.Get(id); ok {
			ans = append(ans, ds.Info())
		}
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func (a *Actions) Frames(ctx *gin.Context) {
	ds, ok := a.dataset(ctx)
	if !ok {
		return
	}
	frames := ds.Corpus().Frames()
	ans := make([]FrameListItem, len(frames))
	for i, f := range frames {
		ans[i] = FrameListItem{
			ID:     f.ID,
			Name:   f.Name,
			NumFEs: len(f.FEs),
			NumLUs: len(f.LexUnits),
		}
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func (a *Actions) Frame(ctx *gin.Context) {
	ds, ok := a.dataset(ctx)
	if !ok {
		return
	}
	frame, ok := a.frame(ctx, ds)
	if !ok {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, frame)
}

func (a *Actions) RelationTypes(ctx *gin.Context) {
	ds, ok := a.dataset(ctx)
	if !ok {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, ds.Corpus().RelationTypes())
}

func parseRelationTypes(arg string) []string {
	if arg == "" {
		return []string{}
	}
	items := strings.Split(arg, ",")
	ans := make([]string, 0, len(items))
	for _, item := range items {
		if v := strings.TrimSpace(item); v != "" {
			ans = append(ans, v)
		}
	}
	return ans
}

// Successors lists all the frames reachable from a frame, grouped
// by distance. The `relations` URL argument limits the relation types
// (comma separated).
func (a *Actions) Successors(ctx *gin.Context) {
	ds, ok := a.dataset(ctx)
	if !ok {
		return
	}
	frame, ok := a.frame(ctx, ds)
	if !ok {
		return
	}
	relTypes := parseRelationTypes(ctx.Query("relations"))
	g, err := ds.RelationGraph(relTypes)
	if errors.Is(err, ErrUnknownRelationType) {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return

	} else if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	levels := relgraph.AllSuccessorsByLevel(g, frame.Name)
	uniresp.WriteJSONResponse(
		ctx.Writer,
		SuccessorsResponse{
			Frame:         frame.Name,
			RelationTypes: relTypes,
			Levels:        levels,
			Depth:         levels.Depth(),
		},
	)
}

// FEGraph provides a DOT representation of FE relations of a frame
func (a *Actions) FEGraph(ctx *gin.Context) {
	ds, ok := a.dataset(ctx)
	if !ok {
		return
	}
	frame, ok := a.frame(ctx, ds)
	if !ok {
		return
	}
	var buf strings.Builder
	if err := relgraph.FERelationsDOT(frame, &buf); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	ctx.Data(http.StatusOK, "text/vnd.graphviz; charset=utf-8", []byte(buf.String()))
}

// LUs finds lexical units by lemma, optionally filtered by the `pos` argument
func (a *Actions) LUs(ctx *gin.Context) {
	ds, ok := a.dataset(ctx)
	if !ok {
		return
	}
	lemma := ctx.Param("lemma")
	ans := ds.FindLUs(lemma, ctx.Query("pos"))
	if len(ans) == 0 {
		uniresp.RespondWithErrorJSON(
			ctx, fmt.Errorf("%w: %s", framenet.ErrLUNotFound, lemma), http.StatusNotFound)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// CreateTable creates one of the supported summary tables of a dataset
func CreateTable(ctx context.Context, ds *Dataset, tableID string) (tables.Exportable, error) {
	c := ds.Corpus()
	switch tableID {
	case TableFrameLUs:
		return tables.FrameLUs(c), nil
	case TableLUFrames:
		return tables.LUFrames(c), nil
	case TableFrameFETypes:
		return tables.FrameFETypeCounts(c), nil
	case TableFEFrames:
		return tables.FEFrames(c), nil
	case TableFECoreness:
		return tables.FECorenessTypes(c), nil
	case TableLUFreqClasses:
		return tables.LUFreqClasses(c), nil
	case TablePOSGF, TablePOSPT:
		layer := tables.LayerGF
		if tableID == TablePOSPT {
			layer = tables.LayerPT
		}
		groups, err := ds.AnnotationGroups(ctx, layer)
		if err != nil {
			return nil, err
		}
		return tables.AnnotationSummary(groups), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTable, tableID)
}

// Table writes a summary table in the format specified by
// the `format` argument (csv, tsv, json).
func (a *Actions) Table(ctx *gin.Context) {
	ds, ok := a.dataset(ctx)
	if !ok {
		return
	}
	format, err := tables.ParseFormat(ctx.Query("format"))
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}
	tab, err := CreateTable(ctx, ds, ctx.Param("tableId"))
	if errors.Is(err, ErrUnknownTable) {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusNotFound)
		return

	} else if errors.Is(err, framenet.ErrNoAnnotationData) {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusNotFound)
		return

	} else if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	ctx.Writer.Header().Set("Content-Type", format.ContentType())
	if err := tables.Write(ctx.Writer, tab, format); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
	}
}

// Search searches frames using the query in the `q` argument
func (a *Actions) Search(ctx *gin.Context) {
	ds, ok := a.dataset(ctx)
	if !ok {
		return
	}
	limit, ok := unireq.GetURLIntArgOrFail(ctx, "limit", dfltSearchLimit)
	if !ok {
		return
	}
	idx, err := ds.SearchIndex(ctx)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	ans, err := idx.Search(ctx, ctx.Query("q"), limit)
	if errors.Is(err, search.ErrEmptyQuery) {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return

	} else if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func NewActions(registry *Registry) *Actions {
	return &Actions{registry: registry}
}
