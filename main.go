// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/cratehub/registry/cmd/registry"

func main() {
	cmd.Execute()
}
