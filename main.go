// Package main is the entry point for the cluttercut CLI.
package main

import "github.com/cluttercut/cluttercut/cmd"

func main() {
	cmd.Execute()
}
