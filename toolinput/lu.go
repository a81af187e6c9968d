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

package toolinput

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"fnreg/framenet"
)

var (
	ErrUnknownPOS    = errors.New("unknown part of speech")
	ErrInvalidLUName = errors.New("invalid lexical unit name")
)

// Options control how LU names are converted into the keys
// of the exported mappings.
type Options struct {
	// POSInLU keeps the part of speech in the key (`lemma.POS`).
	// Otherwise only the lemma is used.
	POSInLU bool `json:"posInLU"`

	// POSMapping translates FrameNet's PoS tags (`v`, `n`, `a`, ...)
	// to custom ones. If set, all the tags must be covered.
	POSMapping map[string]string `json:"posMapping"`
}

// SplitLU converts an LU name (`lemma.pos`) into an LU key. The name is
// split on the last dot so lemmas containing dots are preserved.
func SplitLU(name string, opts Options) (string, error) {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return "", fmt.Errorf("%w: %s", ErrInvalidLUName, name)
	}
	lemma, pos := name[:i], name[i+1:]
	if len(opts.POSMapping) > 0 {
		mapped, ok := opts.POSMapping[pos]
		if !ok {
			return "", fmt.Errorf("%w: %s (LU %s)", ErrUnknownPOS, pos, name)
		}
		pos = mapped
	}
	if opts.POSInLU {
		return lemma + "." + pos, nil
	}
	return lemma, nil
}

// LUToFrames maps LU keys to IDs of frames (as strings)
// the LUs can evoke. The IDs are unique and sorted numerically.
func LUToFrames(c *framenet.Corpus, opts Options) (map[string][]string, error) {
	tmp := make(map[string][]int)
	for _, frame := range c.Frames() {
		for _, lu := range frame.LexUnits {
			key, err := SplitLU(lu.Name, opts)
			if err != nil {
				return nil, err
			}
			if !slices.Contains(tmp[key], frame.ID) {
				tmp[key] = append(tmp[key], frame.ID)
			}
		}
	}
	ans := make(map[string][]string, len(tmp))
	for key, ids := range tmp {
		slices.Sort(ids)
		strIDs := make([]string, len(ids))
		for i, id := range ids {
			strIDs[i] = strconv.Itoa(id)
		}
		ans[key] = strIDs
	}
	return ans, nil
}
