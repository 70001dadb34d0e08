package main

import (
	"os"

	"github.com/zostay/mailsplit/cmd/mailsplit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
