// Package main is the entry point for vidscrub.
package main

import (
	"github.com/samber/lo"
	"github.com/vidscrub/vidscrub/cmd"
	"github.com/vidscrub/vidscrub/config"
	"github.com/vidscrub/vidscrub/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
