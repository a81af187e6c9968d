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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"fnreg/cnf"
	"fnreg/datasets"
	"fnreg/framenet"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// corpusArgs are flags shared by all the subcommands working with a corpus
type corpusArgs struct {
	confPath    string
	datasetID   string
	version     string
	dataDir     string
	nltkDataDir string
	quiet       bool
}

func (args *corpusArgs) register(fs *flag.FlagSet) {
	fs.StringVar(&args.confPath, "conf", "", "server configuration file (datasets, export, db)")
	fs.StringVar(&args.datasetID, "dataset", "", "dataset ID from the configuration file")
	fs.StringVar(&args.version, "fn-version", string(framenet.Version17), "FrameNet version (1.5 or 1.7)")
	fs.StringVar(&args.dataDir, "data-dir", "", "FrameNet XML data directory")
	fs.StringVar(&args.nltkDataDir, "nltk-data-dir", "", "NLTK data directory (used when data-dir is not set)")
	fs.BoolVar(&args.quiet, "quiet", false, "do not show progress")
}

// loadConf loads the server configuration if specified. Otherwise,
// a configuration with defaults is returned.
func (args *corpusArgs) loadConf() *cnf.Conf {
	var conf *cnf.Conf
	if args.confPath != "" {
		conf = cnf.LoadConfig(args.confPath)

	} else {
		conf = &cnf.Conf{}
	}
	logging.SetupLogging(conf.Logging)
	cnf.ApplyDefaults(conf)
	return conf
}

func (args *corpusArgs) datasetConf(conf *cnf.Conf) (datasets.Conf, error) {
	if args.datasetID != "" {
		for _, ds := range conf.Datasets {
			if ds.ID == args.datasetID {
				return ds, nil
			}
		}
		return datasets.Conf{}, fmt.Errorf("dataset %s not found in configuration", args.datasetID)
	}
	return datasets.Conf{
		ID:      "fn" + strings.ReplaceAll(args.version, ".", ""),
		Version: args.version,
		DataDir: args.dataDir,
	}, nil
}

func newLoadingBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Loading frames"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("frames/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}

// loadDataset loads a single dataset specified either by the configuration
// and a dataset ID or by the version and data directory flags
func (args *corpusArgs) loadDataset(ctx context.Context) (*cnf.Conf, *datasets.Dataset) {
	conf := args.loadConf()
	dsConf, err := args.datasetConf(conf)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	nltkDataDir := conf.NLTKDataDir
	if args.nltkDataDir != "" {
		nltkDataDir = args.nltkDataDir
	}
	opts := datasets.LoadOptions{
		NLTKDataDir:    nltkDataDir,
		MaxAnnotPerKey: conf.MaxAnnotPerKey(),
	}
	var bar *progressbar.ProgressBar
	if !args.quiet {
		total := -1
		if v, err := framenet.ParseVersion(dsConf.Version); err == nil {
			total = v.ExpectedNumFrames()
		}
		bar = newLoadingBar(total)
		opts.OnFrameLoaded = func(datasetID, frameName string) {
			bar.Add(1)
		}
	}
	registry, err := datasets.LoadRegistry(ctx, []datasets.Conf{dsConf}, opts)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load FrameNet")
	}
	ds, _ := registry.Get(dsConf.ID)
	return conf, ds
}
