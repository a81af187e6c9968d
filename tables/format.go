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
	"errors"
	"fmt"
	"io"
)

var ErrUnknownFormat = errors.New("unknown table format")

type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name. An empty value
// means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatTSV, FormatJSON:
		return Format(s), nil
	case "":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatTSV:
		return "text/tab-separated-values; charset=utf-8"
	}
	return "application/json"
}

// Write exports a table in the required format
func Write(w io.Writer, t Exportable, format Format) error {
	switch format {
	case FormatCSV:
		return t.WriteCSV(w, ',')
	case FormatTSV:
		return t.WriteCSV(w, '\t')
	case FormatJSON:
		return t.WriteJSON(w)
	}
	return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}
