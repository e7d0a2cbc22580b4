// Package main provides the param-binder CLI.
//
// param-binder loads a schema of bean classes and binds request parameters
// onto them:
//   - check: validate a schema and optionally show resolved property types
//   - bind:  bind a query string onto a root class and print the result
//   - serve: expose /bind/:root over HTTP
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
