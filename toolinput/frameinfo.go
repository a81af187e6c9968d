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
	"strconv"

	"fnreg/framenet"
)

// RoleInfo describes a frame element. Field order follows
// the alphabetical order of JSON keys.
type RoleInfo struct {
	RoleDefinition string `json:"role_definition"`
	RoleID         string `json:"role_id"`
	RoleLabel      string `json:"role_label"`
	RoleType       string `json:"role_type"`
}

type FrameInfo struct {
	Definition string     `json:"definition"`
	FrameLabel string     `json:"frame_label"`
	Roles      []RoleInfo `json:"roles"`
}

// FrameToInfo maps frame IDs to the frame definition, label and roles
func FrameToInfo(c *framenet.Corpus) map[string]FrameInfo {
	ans := make(map[string]FrameInfo, len(c.Frames()))
	for _, frame := range c.Frames() {
		info := FrameInfo{
			Definition: frame.Definition,
			FrameLabel: frame.Name,
			Roles:      make([]RoleInfo, len(frame.FEs)),
		}
		for i, fe := range frame.FEs {
			info.Roles[i] = RoleInfo{
				RoleDefinition: fe.Definition,
				RoleID:         strconv.Itoa(fe.ID),
				RoleLabel:      fe.Name,
				RoleType:       string(fe.CoreType),
			}
		}
		ans[strconv.Itoa(frame.ID)] = info
	}
	return ans
}
