// Copyright 2023 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Command evmtrace traces a single call from the command line: point it
// at a config file naming a chain (local or forked) and the code and
// input of the call, and it prints the resulting EIP-3155 struct log. It
// does not look up or replay transactions from a block.
package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var gitCommit = "" // set via -ldflags at build time

func main() {
	app := &cli.App{
		Name:    "evmtrace",
		Usage:   "trace a configured call at opcode granularity",
		Version: versionString(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "TOML configuration file describing the chain to trace against",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colorized struct-log output",
			},
			&cli.StringFlag{
				Name:  "dump",
				Usage: "write the struct log as snappy-compressed JSON to this path",
			},
		},
		Commands: []*cli.Command{
			traceCommand,
		},
		Action: func(ctx *cli.Context) error {
			return cli.ShowAppHelp(ctx)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		log.Error("evmtrace exited with an error", "err", err)
		os.Exit(1)
	}
}

func versionString() string {
	if gitCommit == "" {
		return "dev"
	}
	return gitCommit
}
