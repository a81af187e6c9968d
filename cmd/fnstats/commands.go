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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"fnreg/datasets"
	"fnreg/relgraph"
	"fnreg/store"
	"fnreg/tables"
	"fnreg/terminology"
	"fnreg/toolinput"

	"github.com/rs/zerolog/log"
)

func outputWriter(path string) (io.Writer, func()) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}
	}
	f, err := os.Create(path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open output file")
	}
	return f, func() { f.Close() }
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parsePOSMapping parses mapping in the form `V:VERB,N:NOUN`
func parsePOSMapping(s string) (map[string]string, error) {
	if s == "" {
		return nil, nil
	}
	ans := make(map[string]string)
	for _, item := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(item, ":")
		if !ok || k == "" || v == "" {
			return nil, fmt.Errorf("invalid POS mapping item %s", item)
		}
		ans[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return ans, nil
}

type toolInputArgs struct {
	corpusArgs
	outputDir      string
	readmePath     string
	eventTypesPath string
	posInLU        bool
	posMapping     string
}

func runToolInput(ctx context.Context, args toolInputArgs) {
	conf, ds := args.loadDataset(ctx)
	exportArgs := toolinput.ExportArgs{
		OutputDir:      conf.Export.OutputDir,
		ReadmePath:     conf.Export.ReadmePath,
		EventTypesPath: conf.Export.EventTypesPath,
		Options: toolinput.Options{
			POSInLU:    conf.Export.POSInLU || args.posInLU,
			POSMapping: conf.Export.POSMapping,
		},
	}
	if args.outputDir != "" {
		exportArgs.OutputDir = args.outputDir
	}
	if args.readmePath != "" {
		exportArgs.ReadmePath = args.readmePath
	}
	if args.eventTypesPath != "" {
		exportArgs.EventTypesPath = args.eventTypesPath
	}
	if args.posMapping != "" {
		mapping, err := parsePOSMapping(args.posMapping)
		if err != nil {
			log.Fatal().Err(err).Send()
		}
		exportArgs.Options.POSMapping = mapping
	}
	result, err := toolinput.CreateToolInput(ctx, ds.Corpus(), exportArgs)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create tool input")
	}
	if err := writeJSON(os.Stdout, result); err != nil {
		log.Fatal().Err(err).Send()
	}
}

type tablesArgs struct {
	corpusArgs
	format     string
	outputPath string
}

func runTables(ctx context.Context, args tablesArgs, tableID string) {
	format, err := tables.ParseFormat(args.format)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	_, ds := args.loadDataset(ctx)
	tab, err := datasets.CreateTable(ctx, ds, tableID)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create table")
	}
	w, closeFn := outputWriter(args.outputPath)
	defer closeFn()
	if err := tables.Write(w, tab, format); err != nil {
		log.Fatal().Err(err).Msg("failed to write table")
	}
}

type successorsArgs struct {
	corpusArgs
	relations string
}

func runSuccessors(ctx context.Context, args successorsArgs, frameName string) {
	_, ds := args.loadDataset(ctx)
	var relTypes []string
	if args.relations != "" {
		relTypes = strings.Split(args.relations, ",")
	}
	g, err := ds.RelationGraph(relTypes)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build relation graph")
	}
	levels := relgraph.AllSuccessorsByLevel(g, frameName)
	for depth := 0; depth <= levels.Depth(); depth++ {
		if frames, ok := levels[depth]; ok {
			fmt.Printf("%d\t%s\n", depth, strings.Join(frames, ", "))
		}
	}
}

type feGraphArgs struct {
	corpusArgs
	outputPath string
}

func runFEGraph(ctx context.Context, args feGraphArgs, frameName string) {
	_, ds := args.loadDataset(ctx)
	frame, err := ds.Corpus().FrameByName(frameName)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	w, closeFn := outputWriter(args.outputPath)
	defer closeFn()
	if err := relgraph.FERelationsDOT(frame, w); err != nil {
		log.Fatal().Err(err).Msg("failed to write FE graph")
	}
}

type searchArgs struct {
	corpusArgs
	limit int
}

func runSearch(ctx context.Context, args searchArgs, query string) {
	_, ds := args.loadDataset(ctx)
	idx, err := ds.SearchIndex(ctx)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	defer ds.Close()
	res, err := idx.Search(ctx, query, args.limit)
	if err != nil {
		log.Fatal().Err(err).Msg("search failed")
	}
	fmt.Printf("total: %d\n", res.Total)
	for _, hit := range res.Hits {
		fmt.Printf("%.4f\t%d\t%s\n", hit.Score, hit.FrameID, hit.FrameName)
	}
}

type terminologyArgs struct {
	rootDir    string
	format     string
	outputPath string
}

func runTerminology(args terminologyArgs, category string) {
	format, err := tables.ParseFormat(args.format)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	paths, err := terminology.LoadPaths(args.rootDir, category)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	tab, err := terminology.DefinitionsTable(paths)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create definitions table")
	}
	w, closeFn := outputWriter(args.outputPath)
	defer closeFn()
	if err := tables.Write(w, tab, format); err != nil {
		log.Fatal().Err(err).Msg("failed to write table")
	}
}

type importArgs struct {
	corpusArgs
	dryRun bool
}

func runImport(ctx context.Context, args importArgs) {
	conf, ds := args.loadDataset(ctx)
	if conf.DB == nil {
		log.Fatal().Msg("no database configured")
	}
	if err := store.ValidateDatasetID(ds.ID()); err != nil {
		log.Fatal().Err(err).Send()
	}
	if args.dryRun {
		fmt.Printf("would import dataset %s into %s\n", ds.ID(), conf.DB.DSN(true))
		return
	}
	result, err := store.RunImport(ctx, *conf.DB, ds.ID(), ds.Corpus())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to import data")
	}
	if err := writeJSON(os.Stdout, result); err != nil {
		log.Fatal().Err(err).Send()
	}
}
