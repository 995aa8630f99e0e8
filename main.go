// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/iffchunk/cmd/iffchunk"

func main() {
	cmd.Execute()
}
