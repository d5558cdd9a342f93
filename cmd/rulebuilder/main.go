package main

import (
	"os"

	"github.com/kerimovok/pocketbase-api-rule-builder/cmd/rulebuilder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
