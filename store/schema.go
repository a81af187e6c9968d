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
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	TableFrame         = "fn_frame"
	TableFE            = "fn_fe"
	TableLU            = "fn_lu"
	TableFrameRelation = "fn_frame_relation"
)

var (
	ErrInvalidDatasetID = errors.New("invalid dataset ID")

	datasetIDRegexp = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]{0,39}$`)
)

// table definitions in the order of creation; %s stands for the dataset prefix
var tableDefs = []struct {
	name string
	ddl  string
}{
	{
		TableFrame,
		`CREATE TABLE %s_fn_frame (
    id INT PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    definition TEXT,
    UNIQUE KEY name_idx (name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin`,
	},
	{
		TableFE,
		`CREATE TABLE %s_fn_fe (
    id INT PRIMARY KEY,
    frame_id INT NOT NULL,
    name VARCHAR(100) NOT NULL,
    abbrev VARCHAR(50),
    core_type VARCHAR(30) NOT NULL,
    definition TEXT,
    KEY name_idx (name),
    FOREIGN KEY (frame_id) REFERENCES %s_fn_frame(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin`,
	},
	{
		TableLU,
		`CREATE TABLE %s_fn_lu (
    id INT PRIMARY KEY,
    frame_id INT NOT NULL,
    frame_name VARCHAR(100) NOT NULL,
    name VARCHAR(150) NOT NULL,
    lemma VARCHAR(150) NOT NULL,
    pos VARCHAR(10) NOT NULL,
    status VARCHAR(50),
    num_annotated INT NOT NULL DEFAULT 0,
    KEY lemma_idx (lemma, pos)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci`,
	},
	{
		TableFrameRelation,
		`CREATE TABLE %s_fn_frame_relation (
    id INT PRIMARY KEY,
    rel_type VARCHAR(50) NOT NULL,
    super_frame_id INT NOT NULL,
    sub_frame_id INT NOT NULL,
    KEY super_idx (super_frame_id),
    KEY sub_idx (sub_frame_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin`,
	},
}

// ValidateDatasetID tests whether the ID can be used as a table prefix
func ValidateDatasetID(datasetID string) error {
	if !datasetIDRegexp.MatchString(datasetID) {
		return fmt.Errorf("%w: %s", ErrInvalidDatasetID, datasetID)
	}
	return nil
}

// TableName returns a dataset-prefixed table name
func TableName(datasetID, table string) string {
	return datasetID + "_" + table
}

// CreateTables (re)creates all the tables of a dataset and returns
// an open transaction to be used for the import.
func CreateTables(ctx context.Context, db *sql.DB, datasetID string) (*sql.Tx, error) {
	if err := ValidateDatasetID(datasetID); err != nil {
		return nil, fmt.Errorf("failed to create FrameNet tables: %w", err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create FrameNet tables: %w", err)
	}
	for i := len(tableDefs) - 1; i >= 0; i-- {
		q := fmt.Sprintf("DROP TABLE IF EXISTS %s", TableName(datasetID, tableDefs[i].name))
		if _, err := tx.ExecContext(ctx, q); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to create FrameNet tables: %w", err)
		}
	}
	for _, def := range tableDefs {
		if _, err := tx.ExecContext(ctx, createTableSQL(def.ddl, datasetID)); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to create table %s: %w", def.name, err)
		}
	}
	return tx, nil
}

func createTableSQL(ddl, datasetID string) string {
	n := strings.Count(ddl, "%s")
	args := make([]any, n)
	for i := range args {
		args[i] = datasetID
	}
	return fmt.Sprintf(ddl, args...)
}

// insertSQL creates a multi-row insert statement with placeholders
func insertSQL(table string, columns []string, numRows int) string {
	var ans strings.Builder
	ans.WriteString(fmt.Sprintf("INSERT INTO %s (%s) VALUES ", table, strings.Join(columns, ", ")))
	rowTpl := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	for i := 0; i < numRows; i++ {
		if i > 0 {
			ans.WriteString(", ")
		}
		ans.WriteString(rowTpl)
	}
	return ans.String()
}
