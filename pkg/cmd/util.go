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

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// GetFlag reads an expected boolean flag, or exits if the flag was never
// registered - a mismatch here is a programming error in this package, not
// something a user can trigger.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint reads an expected uint flag, or exits if the flag was never
// registered.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString reads an expected string flag, or exits if the flag was never
// registered.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// newRunID generates a correlation id for a single "run" invocation,
// attached to that command's start and finish log lines so concurrent runs
// in a shared log stream can be told apart. Saturate's per-pass debug lines
// do not carry it.
func newRunID() string {
	return uuid.NewString()
}

// exitWithError prints err and terminates with a non-zero status, the same
// shape as the teacher's own file-reading helpers.
func exitWithError(err error) {
	fmt.Println(err)
	os.Exit(2)
}
