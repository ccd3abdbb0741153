package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/debloat-dev/debloat/internal/adapters/inbound/cli"
	"github.com/debloat-dev/debloat/internal/domain"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		switch {
		case errors.Is(err, domain.ErrUsage):
			os.Exit(2)
		default:
			os.Exit(1)
		}
	}
}
