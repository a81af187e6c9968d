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

package jobs

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	for key, msg := range map[string]string{
		"Export of annotation tool input data":         "Export vstupních dat pro anotační nástroj",
		"Import of FrameNet data into SQL database":    "Import dat FrameNetu do SQL databáze",
		"Testing and debugging scan of dataset frames": "Testovací průchod rámci datové sady",
		"Unknown job":                                  "Neznámá úloha",
		"Job is running":                               "Úloha běží",
		"Job finished without errors":                  "Úloha skončila bez chyb",
		"Job finished with error: %s":                  "Úloha skončila s chybou: %s",
	} {
		message.SetString(language.Czech, key, msg)
	}
}
