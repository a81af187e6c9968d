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
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Row is a single table record. Values must return
// the same number of items as is the number of table columns.
type Row interface {
	Values() []string
}

// Exportable is implemented by any Table regardless
// of its row type.
type Exportable interface {
	Len() int
	Header() []string
	WriteCSV(w io.Writer, sep rune) error
	WriteJSON(w io.Writer) error
}

type Table[T Row] struct {
	Columns []string `json:"columns"`
	Rows    []T      `json:"rows"`
}

func (t *Table[T]) Append(row T) {
	t.Rows = append(t.Rows, row)
}

func (t *Table[T]) Len() int {
	return len(t.Rows)
}

func (t *Table[T]) Header() []string {
	return t.Columns
}

// WriteCSV writes the table including a header row.
// The sep argument is typically ',' or '\t'.
func (t *Table[T]) WriteCSV(w io.Writer, sep rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = sep
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row.Values()); err != nil {
			return fmt.Errorf("failed to write table row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (t *Table[T]) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// NewTable creates an empty table with provided columns
func NewTable[T Row](columns ...string) *Table[T] {
	return &Table[T]{
		Columns: columns,
		Rows:    make([]T, 0, 100),
	}
}

// ------

func joinInts(values []int) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}
