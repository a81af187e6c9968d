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

package cnf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"fnreg/datasets"
	"fnreg/db/mysql"
	"fnreg/jobs"
	"fnreg/toolinput"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

const (
	dfltListenAddress          = "127.0.0.1"
	dfltListenPort             = 8090
	dfltServerReadTimeoutSecs  = 10
	dfltServerWriteTimeoutSecs = 30
	dfltLanguage               = "en"
	dfltMaxNumConcurrentJobs   = 4
	dfltMaxAnnotPerKey         = 100
	dfltExportOutputDir        = "tool_input"
)

type AnnotationsConf struct {
	// MaxPerKey limits the number of stored example annotation
	// sets per (POS, label) pair. Zero means "use default",
	// a negative value means "unlimited".
	MaxPerKey int `json:"maxPerKey"`
}

// Conf is a global configuration of the app
type Conf struct {
	ListenAddress          string              `json:"listenAddress"`
	ListenPort             int                 `json:"listenPort"`
	ServerReadTimeoutSecs  int                 `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int                 `json:"serverWriteTimeoutSecs"`
	Logging                logging.LoggingConf `json:"logging"`
	NLTKDataDir            string              `json:"nltkDataDir"`
	Datasets               []datasets.Conf     `json:"datasets"`
	TerminologyDir         string              `json:"terminologyDir"`
	Export                 *toolinput.Conf     `json:"export"`
	Jobs                   *jobs.Conf          `json:"jobs"`
	DB                     *mysql.Conf         `json:"db"`
	Language               string              `json:"language"`
	Annotations            AnnotationsConf     `json:"annotations"`
	srcPath                string
}

// GetSourcePath returns an absolute path of a file
// the config was loaded from.
func (conf *Conf) GetSourcePath() string {
	if filepath.IsAbs(conf.srcPath) {
		return conf.srcPath
	}
	var cwd string
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "[failed to get working dir]"
	}
	return filepath.Join(cwd, conf.srcPath)
}

// MaxAnnotPerKey returns the limit of stored annotation examples
// in the form expected by annotation grouping (0 = unlimited)
func (conf *Conf) MaxAnnotPerKey() int {
	if conf.Annotations.MaxPerKey < 0 {
		return 0
	}
	return conf.Annotations.MaxPerKey
}

// Validate tests values which have no sensible defaults
func (conf *Conf) Validate() error {
	if len(conf.Datasets) == 0 {
		return fmt.Errorf("no datasets configured")
	}
	ids := make(map[string]bool)
	for i, ds := range conf.Datasets {
		if ds.ID == "" {
			return fmt.Errorf("missing ID of dataset %d", i)
		}
		if ids[ds.ID] {
			return fmt.Errorf("duplicate dataset ID %s", ds.ID)
		}
		ids[ds.ID] = true
		if ds.DataDir == "" && conf.NLTKDataDir == "" {
			return fmt.Errorf("dataset %s: neither dataDir nor nltkDataDir specified", ds.ID)
		}
	}
	if _, err := language.Parse(conf.Language); err != nil {
		return fmt.Errorf("invalid language %s: %w", conf.Language, err)
	}
	if conf.DB != nil {
		if err := conf.DB.Validate(); err != nil {
			return fmt.Errorf("invalid db configuration: %w", err)
		}
	}
	return nil
}

func LoadConfig(path string) *Conf {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	var conf Conf
	conf.srcPath = path
	err = json.Unmarshal(rawData, &conf)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return &conf
}

func ApplyDefaults(conf *Conf) {
	if conf.ListenAddress == "" {
		conf.ListenAddress = dfltListenAddress
		log.Warn().Msgf("listenAddress not specified, using default: %s", dfltListenAddress)
	}
	if conf.ListenPort == 0 {
		conf.ListenPort = dfltListenPort
		log.Warn().Msgf("listenPort not specified, using default: %d", dfltListenPort)
	}
	if conf.ServerReadTimeoutSecs == 0 {
		conf.ServerReadTimeoutSecs = dfltServerReadTimeoutSecs
		log.Warn().Msgf(
			"serverReadTimeoutSecs not specified, using default: %d",
			dfltServerReadTimeoutSecs,
		)
	}
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeoutSecs
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default: %d",
			dfltServerWriteTimeoutSecs,
		)
	}
	if conf.Language == "" {
		conf.Language = dfltLanguage
		log.Warn().Msgf("language not specified, using default: %s", conf.Language)
	}
	if conf.Jobs == nil {
		conf.Jobs = &jobs.Conf{}
	}
	if conf.Jobs.MaxNumConcurrentJobs == 0 {
		v := dfltMaxNumConcurrentJobs
		if v >= runtime.NumCPU() {
			v = runtime.NumCPU()
		}
		conf.Jobs.MaxNumConcurrentJobs = v
		log.Warn().Msgf("jobs.maxNumConcurrentJobs not specified, using default %d", v)
	}
	if conf.Export == nil {
		conf.Export = &toolinput.Conf{}
	}
	if conf.Export.OutputDir == "" {
		conf.Export.OutputDir = filepath.Join(os.TempDir(), dfltExportOutputDir)
		log.Warn().Msgf("export.outputDir not specified, using default: %s", conf.Export.OutputDir)
	}
	if conf.Annotations.MaxPerKey == 0 {
		conf.Annotations.MaxPerKey = dfltMaxAnnotPerKey
		log.Warn().Msgf("annotations.maxPerKey not specified, using default: %d", dfltMaxAnnotPerKey)
	}
}
