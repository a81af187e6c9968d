// Copyright 2022 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2022 Institute of the Czech National Corpus,
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

package jobs

import (
	"golang.org/x/text/message"
)

const (
	JobTypeToolInputExport = "tool-input-export"
	JobTypeDBImport        = "db-import"
	JobTypeFrameScan       = "debug-frame-scan"
)

// GeneralJobInfo defines a general job information
// which is shared by all the job types. Implementations
// are expected to be immutable values (e.g. AsFinished
// returns a new value).
type GeneralJobInfo interface {
	GetID() string
	GetType() string
	GetStartDT() JSONTime
	GetNumRestarts() int
	GetDatasetID() string
	IsFinished() bool
	AsFinished() GeneralJobInfo
	CompactVersion() JobInfoCompact
	FullInfo() any
	GetError() error
	WithError(err error) GeneralJobInfo
}

// JobInfoCompact is a simplified and unified version of
// any specific job information
type JobInfoCompact struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	DatasetID string   `json:"datasetId"`
	Start     JSONTime `json:"start"`
	Update    JSONTime `json:"update"`
	Finished  bool     `json:"finished"`
	OK        bool     `json:"ok"`
	Desc      string   `json:"desc,omitempty"`
	StatusMsg string   `json:"statusMsg,omitempty"`

	// WaitsFor lists jobs a queued job depends on
	WaitsFor []ParentInfo `json:"waitsFor,omitempty"`
}

// ErrorToString returns an error message or an empty
// string for nil
func ErrorToString(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}

func extractJobDescription(printer *message.Printer, info GeneralJobInfo) string {
	desc := "??"
	switch info.GetType() {
	case JobTypeToolInputExport:
		desc = printer.Sprintf("Export of annotation tool input data")
	case JobTypeDBImport:
		desc = printer.Sprintf("Import of FrameNet data into SQL database")
	case JobTypeFrameScan:
		desc = printer.Sprintf("Testing and debugging scan of dataset frames")
	default:
		desc = printer.Sprintf("Unknown job")
	}
	return desc
}

func localizedStatus(printer *message.Printer, info GeneralJobInfo) string {
	if !info.IsFinished() {
		return printer.Sprintf("Job is running")
	}
	if info.GetError() == nil {
		return printer.Sprintf("Job finished without errors")
	}
	return printer.Sprintf("Job finished with error: %s", info.GetError())
}
