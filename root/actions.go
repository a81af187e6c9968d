// Copyright 2019 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2019 Institute of the Czech National Corpus,
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
// Actions contains all the server HTTP REST actions

package root

import (
	"os"

	"fnreg/cnf"
	"fnreg/datasets"
	"fnreg/general"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

type Actions struct {
	Version  general.VersionInfo
	Conf     *cnf.Conf
	Registry *datasets.Registry
}

func (a *Actions) OnExit() {
	if a.Registry != nil {
		a.Registry.Close()
	}
}

// RootAction is just an information action about the service
func (a *Actions) RootAction(ctx *gin.Context) {
	host, err := os.Hostname()
	if err != nil {
		host = "#failed_to_obtain"
	}
	var datasetIDs []string
	if a.Registry != nil {
		datasetIDs = a.Registry.IDs()
	}
	ans := struct {
		Name     string              `json:"name"`
		Version  general.VersionInfo `json:"version"`
		Host     string              `json:"host"`
		ConfPath string              `json:"confPath"`
		Datasets []string            `json:"datasets"`
	}{
		Name:     "FNREG - FrameNet Registry",
		Version:  a.Version,
		Host:     host,
		ConfPath: a.Conf.GetSourcePath(),
		Datasets: datasetIDs,
	}
	if ans.Datasets == nil {
		ans.Datasets = []string{}
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}
