package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/readingroadmap/bestsellers/cmd"
)

const version = "0.1.0"

func main() {
	root := cmd.NewRootCmd()

	// fang gives us completions, manpages and --version for free
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
