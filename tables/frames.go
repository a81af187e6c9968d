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
	"slices"
	"strconv"
	"strings"

	"fnreg/framenet"
)

type FrameLUsRow struct {
	FrameID int      `json:"frameId"`
	LUNames []string `json:"luIds"`
	Freq    int      `json:"freq"`
}

func (r FrameLUsRow) Values() []string {
	return []string{
		strconv.Itoa(r.FrameID),
		strings.Join(r.LUNames, ","),
		strconv.Itoa(r.Freq),
	}
}

// FrameLUs lists names of lexical units evoking each frame
func FrameLUs(c *framenet.Corpus) *Table[FrameLUsRow] {
	ans := NewTable[FrameLUsRow]("Frame ID", "LU IDs", "Freq")
	for _, frame := range c.Frames() {
		names := make([]string, len(frame.LexUnits))
		for i, lu := range frame.LexUnits {
			names[i] = lu.Name
		}
		ans.Append(FrameLUsRow{FrameID: frame.ID, LUNames: names, Freq: len(names)})
	}
	return ans
}

type LUFramesRow struct {
	LUName   string `json:"luId"`
	FrameIDs []int  `json:"frameIds"`
	Freq     int    `json:"freq"`
}

func (r LUFramesRow) Values() []string {
	return []string{r.LUName, joinInts(r.FrameIDs), strconv.Itoa(r.Freq)}
}

// LUFrames lists frames evoked by each LU name. The order of rows
// follows the LU index, names not found there are appended in the
// order of frames. LUs without a frame have an empty list.
func LUFrames(c *framenet.Corpus) *Table[LUFramesRow] {
	order := make([]string, 0, len(c.LUs()))
	data := make(map[string][]int)
	for _, lu := range c.LUs() {
		if _, ok := data[lu.Name]; !ok {
			data[lu.Name] = []int{}
			order = append(order, lu.Name)
		}
	}
	for _, frame := range c.Frames() {
		for _, lu := range frame.LexUnits {
			if _, ok := data[lu.Name]; !ok {
				order = append(order, lu.Name)
			}
			data[lu.Name] = append(data[lu.Name], frame.ID)
		}
	}
	ans := NewTable[LUFramesRow]("LU ID", "Frame IDs", "Freq")
	for _, name := range order {
		ans.Append(LUFramesRow{LUName: name, FrameIDs: data[name], Freq: len(data[name])})
	}
	return ans
}

type CoreTypeCounts struct {
	Core            int `json:"core"`
	CoreUnexpressed int `json:"coreUnexpressed"`
	ExtraThematic   int `json:"extraThematic"`
	Peripheral      int `json:"peripheral"`
}

func (ctc *CoreTypeCounts) add(ct framenet.CoreType) {
	switch ct {
	case framenet.CoreTypeCore:
		ctc.Core++
	case framenet.CoreTypeCoreUnexpressed:
		ctc.CoreUnexpressed++
	case framenet.CoreTypeExtraThematic:
		ctc.ExtraThematic++
	case framenet.CoreTypePeripheral:
		ctc.Peripheral++
	}
}

func (ctc CoreTypeCounts) values() []string {
	return []string{
		strconv.Itoa(ctc.Core),
		strconv.Itoa(ctc.CoreUnexpressed),
		strconv.Itoa(ctc.ExtraThematic),
		strconv.Itoa(ctc.Peripheral),
	}
}

type FrameFETypesRow struct {
	FrameID int `json:"frameId"`
	Total   int `json:"total"`
	CoreTypeCounts
}

func (r FrameFETypesRow) Values() []string {
	return append([]string{strconv.Itoa(r.FrameID), strconv.Itoa(r.Total)}, r.values()...)
}

// FrameFETypeCounts counts frame elements of each frame by their
// coreness type. The total includes FEs with an unknown type.
func FrameFETypeCounts(c *framenet.Corpus) *Table[FrameFETypesRow] {
	ans := NewTable[FrameFETypesRow](
		"Frame ID", "total # of FEs", "# of Core", "# of Core-Unexpressed",
		"# of Extra-Thematic", "# of Peripheral",
	)
	for _, frame := range c.Frames() {
		row := FrameFETypesRow{FrameID: frame.ID, Total: len(frame.FEs)}
		for _, fe := range frame.FEs {
			row.add(fe.CoreType)
		}
		ans.Append(row)
	}
	return ans
}

type FEFramesRow struct {
	FE        string `json:"fe"`
	FrameIDs  []int  `json:"frameIds"`
	NumFrames int    `json:"numFrameIds"`
}

func (r FEFramesRow) Values() []string {
	return []string{r.FE, joinInts(r.FrameIDs), strconv.Itoa(r.NumFrames)}
}

// FEFrames lists frames each FE name is part of (sorted unique IDs).
// Rows follow the first occurrence of the FE name.
func FEFrames(c *framenet.Corpus) *Table[FEFramesRow] {
	order := make([]string, 0, 1000)
	data := make(map[string][]int)
	for _, frame := range c.Frames() {
		for _, fe := range frame.FEs {
			ids, ok := data[fe.Name]
			if !ok {
				order = append(order, fe.Name)
			}
			if !slices.Contains(ids, frame.ID) {
				data[fe.Name] = append(ids, frame.ID)
			}
		}
	}
	ans := NewTable[FEFramesRow]("FE", "Frame IDs", "# of Frame IDs")
	for _, name := range order {
		ids := data[name]
		slices.Sort(ids)
		ans.Append(FEFramesRow{FE: name, FrameIDs: ids, NumFrames: len(ids)})
	}
	return ans
}

type FECorenessRow struct {
	FE    string `json:"fe"`
	Total int    `json:"total"`
	CoreTypeCounts
}

func (r FECorenessRow) Values() []string {
	return append([]string{r.FE, strconv.Itoa(r.Total)}, r.values()...)
}

// FECorenessTypes counts, for each FE name, how many times
// it occurs as Core, Core-Unexpressed etc. across all the frames.
func FECorenessTypes(c *framenet.Corpus) *Table[FECorenessRow] {
	order := make([]string, 0, 1000)
	data := make(map[string]*FECorenessRow)
	for _, frame := range c.Frames() {
		for _, fe := range frame.FEs {
			row, ok := data[fe.Name]
			if !ok {
				row = &FECorenessRow{FE: fe.Name}
				data[fe.Name] = row
				order = append(order, fe.Name)
			}
			row.Total++
			row.add(fe.CoreType)
		}
	}
	ans := NewTable[FECorenessRow](
		"FE", "total", "# as Core", "# as Core-Unexpressed",
		"# as Extra-Thematic", "# as Peripheral",
	)
	for _, name := range order {
		ans.Append(*data[name])
	}
	return ans
}

type LUFreqClassRow struct {
	Class     int `json:"luFreqClass"`
	Frequency int `json:"frequency"`
}

func (r LUFreqClassRow) Values() []string {
	return []string{strconv.Itoa(r.Class), strconv.Itoa(r.Frequency)}
}

// LUFreqClasses provides the number of frames having x lexical
// units linked to them, sorted by x.
func LUFreqClasses(c *framenet.Corpus) *Table[LUFreqClassRow] {
	counts := make(map[int]int)
	for _, frame := range c.Frames() {
		counts[len(frame.LexUnits)]++
	}
	classes := make([]int, 0, len(counts))
	for k := range counts {
		classes = append(classes, k)
	}
	slices.Sort(classes)
	ans := NewTable[LUFreqClassRow]("LU freq class", "frequency")
	for _, cls := range classes {
		ans.Append(LUFreqClassRow{Class: cls, Frequency: counts[cls]})
	}
	return ans
}
