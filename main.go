// main package for solflat command-line tool
package main

import "solflat.dev/pkg/solflat/cmd"

func main() {
	cmd.Execute()
}
