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

package debug

import (
	"context"

	"fnreg/framenet"
	"fnreg/jobs"
)

// FrameScanResult summarizes frames of a dataset
type FrameScanResult struct {
	NumFrames  int `json:"numFrames"`
	NumLUs     int `json:"numLus"`
	NumFEs     int `json:"numFes"`
	NumCoreFEs int `json:"numCoreFes"`
}

// ScanFrames walks through all the frames of the corpus. The scan
// stops early with the ctx error once the ctx is cancelled.
func ScanFrames(ctx context.Context, c *framenet.Corpus) (FrameScanResult, error) {
	var ans FrameScanResult
	for _, frame := range c.Frames() {
		if err := ctx.Err(); err != nil {
			return ans, err
		}
		ans.NumFrames++
		ans.NumLUs += len(frame.LexUnits)
		for _, fe := range frame.FEs {
			ans.NumFEs++
			if fe.CoreType == framenet.CoreTypeCore {
				ans.NumCoreFEs++
			}
		}
	}
	return ans, nil
}

// FrameScanJobInfo describes a debugging job which scans frames
// of a dataset and then waits for an explicit finish signal.
type FrameScanJobInfo struct {
	ID        string           `json:"id"`
	Type      string           `json:"type"`
	DatasetID string           `json:"datasetId"`
	Start     jobs.JSONTime    `json:"start"`
	Update    jobs.JSONTime    `json:"update"`
	Finished  bool             `json:"finished"`
	Error     error            `json:"error,omitempty"`
	Result    *FrameScanResult `json:"result"`
}

func (j FrameScanJobInfo) GetID() string {
	return j.ID
}

func (j FrameScanJobInfo) GetType() string {
	return j.Type
}

func (j FrameScanJobInfo) GetStartDT() jobs.JSONTime {
	return j.Start
}

func (j FrameScanJobInfo) GetNumRestarts() int {
	return 0
}

func (j FrameScanJobInfo) GetDatasetID() string {
	return j.DatasetID
}

func (j FrameScanJobInfo) IsFinished() bool {
	return j.Finished
}

func (j FrameScanJobInfo) AsFinished() jobs.GeneralJobInfo {
	j.Update = jobs.CurrentDatetime()
	j.Finished = true
	return j
}

func (j FrameScanJobInfo) CompactVersion() jobs.JobInfoCompact {
	return jobs.JobInfoCompact{
		ID:        j.ID,
		Type:      j.Type,
		DatasetID: j.DatasetID,
		Start:     j.Start,
		Update:    j.Update,
		Finished:  j.Finished,
		OK:        j.Error == nil && (!j.Finished || j.Result != nil),
	}
}

func (j FrameScanJobInfo) FullInfo() any {
	return struct {
		ID        string           `json:"id"`
		Type      string           `json:"type"`
		DatasetID string           `json:"datasetId"`
		Start     jobs.JSONTime    `json:"start"`
		Update    jobs.JSONTime    `json:"update"`
		Finished  bool             `json:"finished"`
		Error     string           `json:"error,omitempty"`
		OK        bool             `json:"ok"`
		Result    *FrameScanResult `json:"result"`
	}{
		ID:        j.ID,
		Type:      j.Type,
		DatasetID: j.DatasetID,
		Start:     j.Start,
		Update:    j.Update,
		Finished:  j.Finished,
		Error:     jobs.ErrorToString(j.Error),
		OK:        j.Error == nil,
		Result:    j.Result,
	}
}

func (j FrameScanJobInfo) GetError() error {
	return j.Error
}

func (j FrameScanJobInfo) WithError(err error) jobs.GeneralJobInfo {
	j.Update = jobs.CurrentDatetime()
	j.Finished = true
	j.Error = err
	return j
}
