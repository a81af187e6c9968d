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

package framenet

import (
	"errors"
	"fmt"
	"path/filepath"
)

var (
	ErrUnsupportedVersion = errors.New("unsupported FrameNet version")
)

// Version identifies a FrameNet release
type Version string

const (
	Version15 Version = "1.5"
	Version17 Version = "1.7"
)

func (v Version) Validate() error {
	if v == Version15 || v == Version17 {
		return nil
	}
	return fmt.Errorf("%w: %s (only versions %s and %s are supported)", ErrUnsupportedVersion, string(v), Version15, Version17)
}

func (v Version) String() string {
	return string(v)
}

// DirName returns the name of a directory NLTK uses for the release
// within its `corpora` directory.
func (v Version) DirName() string {
	switch v {
	case Version15:
		return "framenet_v15"
	case Version17:
		return "framenet_v17"
	}
	return ""
}

// ExpectedNumFrames provides the number of frames the official
// release contains. Zero means "unknown".
func (v Version) ExpectedNumFrames() int {
	switch v {
	case Version15:
		return 1019
	case Version17:
		return 1221
	}
	return 0
}

func ParseVersion(s string) (Version, error) {
	v := Version(s)
	if err := v.Validate(); err != nil {
		return "", err
	}
	return v, nil
}

// DefaultDataDir returns the location where NLTK's downloader
// stores the FrameNet release.
func DefaultDataDir(nltkDataDir string, v Version) string {
	return filepath.Join(nltkDataDir, "corpora", v.DirName())
}
