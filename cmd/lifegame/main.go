// Package main is the single-binary entrypoint for lifegame.
// One binary covers the tracker CLI, the local daemon, and the
// self-hosted sync server.
package main

import "github.com/lifegame-app/lifegame/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
