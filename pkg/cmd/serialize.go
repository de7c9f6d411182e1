// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-egraph/egraph/pkg/egraph/serial"
)

var serializeCmd = &cobra.Command{
	Use:   "serialize [flags] script_file",
	Short: "Build and saturate a graph, then write its portable form to a file.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		out := GetString(cmd, "out")
		if out == "" {
			fmt.Println("--out is required")
			os.Exit(1)
		}

		s, err := loadScript(args[0])
		if err != nil {
			exitWithError(err)
		}

		g, _, err := s.build()
		if err != nil {
			exitWithError(err)
		}

		cfg := DefaultSaturationConfig()
		Saturate(g, s.rules, cfg)
		g.Rebuild()

		data, err := serial.Encode(g)
		if err != nil {
			exitWithError(err)
		}

		if err := os.WriteFile(out, data, 0o644); err != nil {
			exitWithError(fmt.Errorf("cmd: serialize: %w", err))
		}

		log.WithFields(log.Fields{"classes": g.NumClasses(), "bytes": len(data)}).Info("wrote serialized graph")
	},
}

func init() {
	serializeCmd.Flags().String("out", "", "path to write the serialized graph to")
}
