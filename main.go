// Package main is the entry point for the loctool CLI.
package main

import "loctool.dev/pkg/loctool/cmd"

func main() {
	cmd.Execute()
}
