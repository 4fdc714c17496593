// Package luashield provides the command-line interface for the luashield
// scanner. It configures subcommands (scan, prompt, rules), parses flags,
// and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/luashield/luashield/cmd/luashield"
//	func main() { luashield.Execute() }
package luashield
