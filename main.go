package main

import (
	"context"
	"os"

	"zozikafe/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
