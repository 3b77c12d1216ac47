// Package main is the entry point for the jetctl CLI.
package main

import (
	"github.com/donaldgifford/jet-merchant-client/cmd/jetctl/cmd"
)

func main() {
	cmd.Execute()
}
