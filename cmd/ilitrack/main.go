// main is the entry point for the ilitrack CLI.
package main

import (
	"fmt"
	"os"

	"github.com/pipewise/ilitrack/cmd"
	"github.com/pipewise/ilitrack/internal/surveystore"
)

func main() {
	defer surveystore.CloseStore()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
