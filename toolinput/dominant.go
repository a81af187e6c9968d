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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"fnreg/framenet"
)

var ErrInvalidEventType = errors.New("invalid event type")

const (
	keyMainFrameLabels   = "main_frame_labels"
	keySubframeLabels    = "subframe_labels"
	keyMainFrameIDs      = "main_frame_ids"
	keySubframeIDs       = "subframe_ids"
	keyLUToDominantFrame = "lu_to_dominant_frame"
)

// EventTypeInfo describes frames an event type is expressed by.
// Keys of the source JSON not known to the type are kept in Extra
// and written back unchanged.
type EventTypeInfo struct {
	MainFrameLabels   []string
	SubframeLabels    []string
	MainFrameIDs      []int
	SubframeIDs       []int
	LUToDominantFrame map[string]int
	Extra             map[string]json.RawMessage
}

func (et *EventTypeInfo) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, target := range map[string]any{
		keyMainFrameLabels:   &et.MainFrameLabels,
		keySubframeLabels:    &et.SubframeLabels,
		keyMainFrameIDs:      &et.MainFrameIDs,
		keySubframeIDs:       &et.SubframeIDs,
		keyLUToDominantFrame: &et.LUToDominantFrame,
	} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, target); err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
		delete(raw, key)
	}
	et.Extra = raw
	return nil
}

func (et EventTypeInfo) MarshalJSON() ([]byte, error) {
	ans := make(map[string]any, len(et.Extra)+5)
	for k, v := range et.Extra {
		ans[k] = v
	}
	ans[keyMainFrameLabels] = nonNil(et.MainFrameLabels)
	ans[keySubframeLabels] = nonNil(et.SubframeLabels)
	if et.MainFrameIDs != nil {
		ans[keyMainFrameIDs] = et.MainFrameIDs
	}
	if et.SubframeIDs != nil {
		ans[keySubframeIDs] = et.SubframeIDs
	}
	if et.LUToDominantFrame != nil {
		ans[keyLUToDominantFrame] = et.LUToDominantFrame
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ans); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

// LoadEventTypes reads event type -> dominant frame information
// from a JSON file.
func LoadEventTypes(path string) (map[string]*EventTypeInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load event types: %w", err)
	}
	var ans map[string]*EventTypeInfo
	if err := json.Unmarshal(data, &ans); err != nil {
		return nil, fmt.Errorf("failed to load event types from %s: %w", path, err)
	}
	for eventType, info := range ans {
		if info == nil {
			return nil, fmt.Errorf(
				"failed to load event types from %s: %w %s (null)", path, ErrInvalidEventType, eventType)
		}
	}
	return ans, nil
}

// DominantFrameInfo fills in frame IDs of the main frames and subframes
// of each event type and a mapping from LU keys to the frame the LU
// is dominant for. An LU is dominant for a frame in case it evokes
// exactly one of the event type's frames (main frames and subframes
// together).
func DominantFrameInfo(
	c *framenet.Corpus,
	eventTypes map[string]*EventTypeInfo,
	opts Options,
) error {
	for eventType, info := range eventTypes {
		if info == nil {
			return fmt.Errorf("%w %s (null)", ErrInvalidEventType, eventType)
		}
		luToFrames := make(map[string]map[int]bool)
		collect := func(labels []string) ([]int, error) {
			ids := make([]int, 0, len(labels))
			for _, label := range labels {
				frame, err := c.FrameByName(label)
				if err != nil {
					return nil, fmt.Errorf("invalid event type %s: %w", eventType, err)
				}
				ids = append(ids, frame.ID)
				for _, lu := range frame.LexUnits {
					key, err := SplitLU(lu.Name, opts)
					if err != nil {
						return nil, err
					}
					if luToFrames[key] == nil {
						luToFrames[key] = make(map[int]bool)
					}
					luToFrames[key][frame.ID] = true
				}
			}
			return ids, nil
		}
		var err error
		info.MainFrameIDs, err = collect(info.MainFrameLabels)
		if err != nil {
			return err
		}
		info.SubframeIDs, err = collect(info.SubframeLabels)
		if err != nil {
			return err
		}
		info.LUToDominantFrame = make(map[string]int)
		for key, frames := range luToFrames {
			if len(frames) != 1 {
				continue
			}
			for frameID := range frames {
				info.LUToDominantFrame[key] = frameID
			}
		}
	}
	return nil
}
