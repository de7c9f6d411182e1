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
)

var runCmd = &cobra.Command{
	Use:   "run [flags] script_file",
	Short: "Build a graph, saturate it against a set of rules, and report equivalence checks.",
	Long: `Reads a driver script of "rule", "expr" and "check" directives, builds
the named expressions into a fresh e-graph, repeatedly applies the declared
rules until a fixpoint (or an iteration cap) is reached, then reports
whether each checked pair of expressions ended up in the same class.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		runID := newRunID()
		logger := log.WithField("run", runID)

		s, err := loadScript(args[0])
		if err != nil {
			exitWithError(err)
		}

		g, ids, err := s.build()
		if err != nil {
			exitWithError(err)
		}

		cfg := DefaultSaturationConfig()
		cfg.MaxIterations = GetUint(cmd, "max-iterations")
		cfg.StopOnNoChange = !GetFlag(cmd, "no-early-stop")

		logger.WithFields(log.Fields{
			"rules": len(s.rules),
			"exprs": len(s.exprNames),
		}).Info("starting saturation")

		passes := Saturate(g, s.rules, cfg)

		logger.WithField("passes", passes).Info("saturation finished")

		failed := false

		for _, pair := range s.checks {
			lhs, rhs := ids[pair[0]], ids[pair[1]]
			same := g.Find(lhs) == g.Find(rhs)

			fmt.Printf("check %s == %s: %v\n", pair[0], pair[1], same)

			if !same {
				failed = true
			}
		}

		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	runCmd.Flags().Uint("max-iterations", DefaultSaturationConfig().MaxIterations, "cap on saturation passes (0 = unbounded)")
	runCmd.Flags().Bool("no-early-stop", false, "keep running to the iteration cap even once the graph stops changing")
}
