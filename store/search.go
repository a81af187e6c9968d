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
)

// LURecord is a lexical unit as stored in the database
type LURecord struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Lemma        string `json:"lemma"`
	POS          string `json:"pos"`
	FrameID      int    `json:"frameId"`
	FrameName    string `json:"frameName"`
	NumAnnotated int    `json:"numAnnotated"`
}

// SearchLU finds lexical units by their lemma. An empty pos
// matches any part of speech.
func SearchLU(ctx context.Context, db *sql.DB, datasetID, lemma, pos string) ([]LURecord, error) {
	if err := ValidateDatasetID(datasetID); err != nil {
		return nil, fmt.Errorf("failed to search LU: %w", err)
	}
	q := "SELECT id, name, lemma, pos, frame_id, frame_name, num_annotated " +
		fmt.Sprintf("FROM %s ", TableName(datasetID, TableLU)) +
		"WHERE lemma = ?"
	args := []any{lemma}
	if pos != "" {
		q += " AND pos = ?"
		args = append(args, pos)
	}
	q += " ORDER BY id"
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search LU: %w", err)
	}
	defer rows.Close()
	ans := make([]LURecord, 0, 10)
	for rows.Next() {
		var item LURecord
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Lemma, &item.POS, &item.FrameID, &item.FrameName, &item.NumAnnotated); err != nil {
			return nil, fmt.Errorf("failed to search LU: %w", err)
		}
		ans = append(ans, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to search LU: %w", err)
	}
	return ans, nil
}
