package main

import (
	"errors"
	"log"
	"os"

	"github.com/blastlab/testgen/cmd"
	"github.com/blastlab/testgen/internal/exitcode"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var ec *exitcode.Error
		if errors.As(err, &ec) {
			os.Exit(ec.Code)
		}
		log.Fatal(err)
	}
}
