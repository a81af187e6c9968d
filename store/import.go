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

package store

import (
	"context"
	"database/sql"
	"fmt"

	"fnreg/framenet"

	"github.com/rs/zerolog/log"
)

const (
	dfltChunkSize = 200
)

// ImportResult summarizes numbers of inserted rows
type ImportResult struct {
	NumFrames    int `json:"numFrames"`
	NumFEs       int `json:"numFEs"`
	NumLUs       int `json:"numLUs"`
	NumRelations int `json:"numRelations"`
}

type tableRows struct {
	table   string
	columns []string
	rows    [][]any
}

func frameRows(c *framenet.Corpus) tableRows {
	ans := tableRows{
		table:   TableFrame,
		columns: []string{"id", "name", "definition"},
		rows:    make([][]any, 0, len(c.Frames())),
	}
	for _, f := range c.Frames() {
		ans.rows = append(ans.rows, []any{f.ID, f.Name, f.Definition})
	}
	return ans
}

func feRows(c *framenet.Corpus) tableRows {
	ans := tableRows{
		table:   TableFE,
		columns: []string{"id", "frame_id", "name", "abbrev", "core_type", "definition"},
		rows:    make([][]any, 0, len(c.Frames())*10),
	}
	for _, f := range c.Frames() {
		for _, fe := range f.FEs {
			ans.rows = append(ans.rows, []any{fe.ID, f.ID, fe.Name, fe.Abbrev, string(fe.CoreType), fe.Definition})
		}
	}
	return ans
}

func luRows(c *framenet.Corpus) tableRows {
	ans := tableRows{
		table:   TableLU,
		columns: []string{"id", "frame_id", "frame_name", "name", "lemma", "pos", "status", "num_annotated"},
		rows:    make([][]any, 0, len(c.LUs())),
	}
	for _, lu := range c.LUs() {
		ans.rows = append(
			ans.rows,
			[]any{lu.ID, lu.FrameID, lu.FrameName, lu.Name, lu.Lemma(), lu.POS, lu.Status, lu.NumAnnotated},
		)
	}
	return ans
}

func relationRows(c *framenet.Corpus) tableRows {
	ans := tableRows{
		table:   TableFrameRelation,
		columns: []string{"id", "rel_type", "super_frame_id", "sub_frame_id"},
		rows:    make([][]any, 0, len(c.FrameRelations())),
	}
	for _, rel := range c.FrameRelations() {
		ans.rows = append(ans.rows, []any{rel.ID, rel.Type, rel.SuperFrameID, rel.SubFrameID})
	}
	return ans
}

func insertChunk(ctx context.Context, tx *sql.Tx, datasetID string, data tableRows, chunk [][]any) error {
	args := make([]any, 0, len(chunk)*len(data.columns))
	for _, row := range chunk {
		args = append(args, row...)
	}
	_, err := tx.ExecContext(
		ctx,
		insertSQL(TableName(datasetID, data.table), data.columns, len(chunk)),
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to insert rows into %s: %w", data.table, err)
	}
	return nil
}

func insertRows(ctx context.Context, tx *sql.Tx, datasetID string, data tableRows, chunkSize int) error {
	for start := 0; start < len(data.rows); start += chunkSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+chunkSize, len(data.rows))
		if err := insertChunk(ctx, tx, datasetID, data, data.rows[start:end]); err != nil {
			return err
		}
	}
	log.Debug().
		Str("datasetId", datasetID).
		Str("table", data.table).
		Int("numRows", len(data.rows)).
		Msg("inserted table data")
	return nil
}

// ImportCorpus recreates the dataset tables and fills them with
// the corpus data within a single transaction.
func ImportCorpus(ctx context.Context, db *sql.DB, datasetID string, c *framenet.Corpus) (ImportResult, error) {
	tx, err := CreateTables(ctx, db, datasetID)
	if err != nil {
		return ImportResult{}, err
	}
	frames := frameRows(c)
	fes := feRows(c)
	lus := luRows(c)
	relations := relationRows(c)
	for _, data := range []tableRows{frames, fes, lus, relations} {
		if err := insertRows(ctx, tx, datasetID, data, dfltChunkSize); err != nil {
			tx.Rollback()
			return ImportResult{}, fmt.Errorf("failed to import dataset %s: %w", datasetID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("failed to import dataset %s: %w", datasetID, err)
	}
	ans := ImportResult{
		NumFrames:    len(frames.rows),
		NumFEs:       len(fes.rows),
		NumLUs:       len(lus.rows),
		NumRelations: len(relations.rows),
	}
	log.Info().
		Str("datasetId", datasetID).
		Any("result", ans).
		Msg("imported FrameNet data into database")
	return ans, nil
}
