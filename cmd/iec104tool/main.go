// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// iec104tool is a command line companion for the IEC 60870-5-104 controlling
// station library: it can poll a live controlled station and dissect captured
// traffic.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "iec104tool",
		Short:         "IEC 60870-5-104 controlling station utilities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMonitorCmd())
	root.AddCommand(newPcapCmd())
	root.AddCommand(newConfigCmd())
	return root
}
