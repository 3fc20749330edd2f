// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/texshuffle/cmd/texshuffle"

func main() {
	cmd.Execute()
}
