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
	"fnreg/jobs"
)

// ExportJobInfo describes an asynchronous tool input export
type ExportJobInfo struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	DatasetID   string        `json:"datasetId"`
	Start       jobs.JSONTime `json:"start"`
	Update      jobs.JSONTime `json:"update"`
	Finished    bool          `json:"finished"`
	Error       error         `json:"error,omitempty"`
	NumRestarts int           `json:"numRestarts"`
	Args        ExportArgs    `json:"args"`
	Result      *ExportResult `json:"result"`
}

func (j ExportJobInfo) GetID() string {
	return j.ID
}

func (j ExportJobInfo) GetType() string {
	return j.Type
}

func (j ExportJobInfo) GetStartDT() jobs.JSONTime {
	return j.Start
}

func (j ExportJobInfo) GetNumRestarts() int {
	return j.NumRestarts
}

func (j ExportJobInfo) GetDatasetID() string {
	return j.DatasetID
}

func (j ExportJobInfo) IsFinished() bool {
	return j.Finished
}

func (j ExportJobInfo) AsFinished() jobs.GeneralJobInfo {
	j.Update = jobs.CurrentDatetime()
	j.Finished = true
	return j
}

func (j ExportJobInfo) CompactVersion() jobs.JobInfoCompact {
	return jobs.JobInfoCompact{
		ID:        j.ID,
		Type:      j.Type,
		DatasetID: j.DatasetID,
		Start:     j.Start,
		Update:    j.Update,
		Finished:  j.Finished,
		OK:        j.Error == nil,
	}
}

func (j ExportJobInfo) FullInfo() any {
	return struct {
		ID          string        `json:"id"`
		Type        string        `json:"type"`
		DatasetID   string        `json:"datasetId"`
		Start       jobs.JSONTime `json:"start"`
		Update      jobs.JSONTime `json:"update"`
		Finished    bool          `json:"finished"`
		Error       string        `json:"error,omitempty"`
		OK          bool          `json:"ok"`
		NumRestarts int           `json:"numRestarts"`
		Args        ExportArgs    `json:"args"`
		Result      *ExportResult `json:"result"`
	}{
		ID:          j.ID,
		Type:        j.Type,
		DatasetID:   j.DatasetID,
		Start:       j.Start,
		Update:      j.Update,
		Finished:    j.Finished,
		Error:       jobs.ErrorToString(j.Error),
		OK:          j.Error == nil,
		NumRestarts: j.NumRestarts,
		Args:        j.Args,
		Result:      j.Result,
	}
}

func (j ExportJobInfo) GetError() error {
	return j.Error
}

func (j ExportJobInfo) WithError(err error) jobs.GeneralJobInfo {
	j.Update = jobs.CurrentDatetime()
	j.Finished = true
	j.Error = err
	return j
}
