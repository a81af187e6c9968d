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

package terminology

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"fnreg/tables"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"
)

const (
	CategoryFrameRelations = "frame-to-frame-relations"

	terminologySubdir = "terminology"
	bibtexFile        = "main.bib"
)

var (
	ErrUnknownCategory = errors.New("unknown terminology category")

	bibEntryRegexp = regexp.MustCompile(`(?m)^\s*@\w+\s*\{\s*([^,\s]+)\s*,`)
)

// AcceptedCategories lists supported terminology categories
var AcceptedCategories = []string{CategoryFrameRelations}

// Paths locates terminology data of a single category
type Paths struct {
	Category        string `json:"category"`
	DefinitionsPath string `json:"definitionsPath"`
	BibtexPath      string `json:"bibtexPath"`
}

// LoadPaths finds and validates files of a terminology category within
// rootDir (i.e. files `<rootDir>/terminology/<category>.json` and
// `<rootDir>/terminology/main.bib`).
func LoadPaths(rootDir, category string) (Paths, error) {
	if !slices.Contains(AcceptedCategories, category) {
		return Paths{}, fmt.Errorf(
			"%w: %s (accepted: %s)", ErrUnknownCategory, category, strings.Join(AcceptedCategories, ", "))
	}
	ans := Paths{
		Category:        category,
		DefinitionsPath: filepath.Join(rootDir, terminologySubdir, category+".json"),
		BibtexPath:      filepath.Join(rootDir, terminologySubdir, bibtexFile),
	}
	if !fs.PathExists(ans.DefinitionsPath) {
		return Paths{}, fmt.Errorf("definitions of %s not found in %s", category, ans.DefinitionsPath)
	}
	if !fs.PathExists(ans.BibtexPath) {
		return Paths{}, fmt.Errorf("cannot find %s", ans.BibtexPath)
	}
	return ans, nil
}

// pageRef is a page reference which can be encoded either as
// a number or a string (e.g. a range)
type pageRef string

func (p *pageRef) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch tv := v.(type) {
	case nil:
		*p = ""
	case string:
		*p = pageRef(tv)
	case float64:
		*p = pageRef(fmt.Sprintf("%v", tv))
	default:
		return fmt.Errorf("invalid page reference %s", string(data))
	}
	return nil
}

type Definition struct {
	Value      string  `json:"-"`
	Definition string  `json:"definition"`
	BibtexKey  string  `json:"bibtex_key"`
	Page       pageRef `json:"page"`
}

// Reference returns a LaTeX citation of the definition's source
func (d Definition) Reference() string {
	if d.Page != "" {
		return fmt.Sprintf("\\citep[p. %s]{%s}", d.Page, d.BibtexKey)
	}
	return fmt.Sprintf("\\citep{%s}", d.BibtexKey)
}

// LoadDefinitions reads definitions preserving their order
// in the source file.
func LoadDefinitions(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load definitions: %w", err)
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to load definitions from %s: %w", path, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("failed to load definitions from %s: object expected", path)
	}
	ans := make([]Definition, 0, 20)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to load definitions from %s: %w", path, err)
		}
		var item Definition
		if err := dec.Decode(&item); err != nil {
			return nil, fmt.Errorf("failed to load definitions from %s: %w", path, err)
		}
		item.Value = tok.(string)
		ans = append(ans, item)
	}
	return ans, nil
}

// LoadBibtexKeys returns keys of all the entries of a BibTeX file
func LoadBibtexKeys(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bibliography: %w", err)
	}
	ans := make(map[string]bool)
	for _, m := range bibEntryRegexp.FindAllStringSubmatch(string(data), -1) {
		ans[m[1]] = true
	}
	return ans, nil
}

type DefinitionRow struct {
	Value      string `json:"value"`
	Definition string `json:"definition"`
	Reference  string `json:"reference"`
}

func (r DefinitionRow) Values() []string {
	return []string{r.Value, r.Definition, r.Reference}
}

// DefinitionsTable creates a table of definitions with LaTeX references.
// References to keys missing in the bibliography are only logged.
func DefinitionsTable(paths Paths) (*tables.Table[DefinitionRow], error) {
	defs, err := LoadDefinitions(paths.DefinitionsPath)
	if err != nil {
		return nil, err
	}
	bibKeys, err := LoadBibtexKeys(paths.BibtexPath)
	if err != nil {
		return nil, err
	}
	ans := tables.NewTable[DefinitionRow](paths.Category, "Definition", "Reference")
	for _, def := range defs {
		if !bibKeys[def.BibtexKey] {
			log.Warn().
				Str("category", paths.Category).
				Str("value", def.Value).
				Str("bibtexKey", def.BibtexKey).
				Msg("bibtex key not found in bibliography")
		}
		ans.Append(DefinitionRow{
			Value:      def.Value,
			Definition: def.Definition,
			Reference:  def.Reference(),
		})
	}
	return ans, nil
}
