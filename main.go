package main

import (
	"os"

	"github.com/firefly-engineering/openwrt-builder/cmd"
	"github.com/firefly-engineering/openwrt-builder/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
