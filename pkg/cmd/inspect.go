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

	"github.com/spf13/cobra"

	"github.com/go-egraph/egraph/pkg/egraph/serial"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] graph_file",
	Short: "Load a serialized graph and print a summary of its classes.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			exitWithError(fmt.Errorf("cmd: inspect: %w", err))
		}

		g, err := serial.Decode(data)
		if err != nil {
			exitWithError(err)
		}

		fmt.Printf("classes: %d\n", g.NumClasses())

		state := g.Export()
		for _, c := range state.Classes {
			fmt.Printf("  class %d: %d term(s), %d parent(s)\n", c.ClassId, len(c.TermIds), len(c.ParentIds))
		}
	},
}
