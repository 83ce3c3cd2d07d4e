// Copyright 2023 The Dawn Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package multicmd implements a tool with multiple sub-commands, each with
// their own flags.
package multicmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"text/tabwriter"
)

// ErrInvalidCLA is the error returned when an invalid command line argument was
// provided, and the usage was already printed.
var ErrInvalidCLA = errors.New("invalid command line args")

// Command is the interface for a command
type Command[Args any] interface {
	// Name returns the name of the command.
	Name() string
	// Desc returns a description of the command.
	Desc() string
	// RegisterFlags registers all the command-specific flags on fs.
	// Returns a list of mandatory arguments that must follow the flags.
	RegisterFlags(ctx context.Context, args Args, fs *flag.FlagSet) ([]string, error)
	// Run invokes the command. positional holds the arguments following the
	// flags.
	Run(ctx context.Context, args Args, positional []string) error
}

// Run parses the process's command line arguments, invoking one of the
// provided commands.
// If the command line arguments are invalid, then the usage is printed to
// stderr and Run returns ErrInvalidCLA.
func Run[Args any](ctx context.Context, args Args, cmds ...Command[Args]) error {
	return RunWith(ctx, args, os.Args, os.Stderr, cmds...)
}

// RunWith is Run, using argv as the command line, and writing usage to out.
// argv[0] is the executable.
func RunWith[Args any](ctx context.Context, args Args, argv []string, out io.Writer, cmds ...Command[Args]) error {
	exe := "tool"
	if len(argv) > 0 {
		_, exe = filepath.Split(argv[0])
	}

	usage := func() {
		tw := tabwriter.NewWriter(out, 0, 1, 0, ' ', 0)
		fmt.Fprintln(tw, exe, "[command]")
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Commands:")
		for _, cmd := range cmds {
			fmt.Fprintln(tw, "  ", cmd.Name(), "\t-", cmd.Desc())
		}
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Use '"+exe+" help [command]' for the command's flags.")
		tw.Flush()
	}

	if len(argv) < 2 {
		usage()
		return ErrInvalidCLA
	}

	name, rest := argv[1], argv[2:]
	help := name == "help"
	if help {
		if len(rest) == 0 {
			usage()
			return nil
		}
		name, rest = rest[0], rest[1:]
	}

	for _, cmd := range cmds {
		if cmd.Name() != name {
			continue
		}

		fs := flag.NewFlagSet(exe+" "+name, flag.ContinueOnError)
		fs.SetOutput(out)
		cpuprofile := fs.String("cpuprofile", "", "write a CPU profile to the given file")
		mandatory, err := cmd.RegisterFlags(ctx, args, fs)
		if err != nil {
			return err
		}
		fs.Usage = func() {
			flagsAndArgs := append([]string{"<flags>"}, mandatory...)
			fmt.Fprintln(out, exe, cmd.Name(), strings.Join(flagsAndArgs, " "))
			fmt.Fprintln(out)
			fmt.Fprintln(out, cmd.Desc())
			fmt.Fprintln(out)
			fmt.Fprintln(out, "flags:")
			fs.PrintDefaults()
		}
		if help {
			fs.Usage()
			return nil
		}
		if err := fs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil
			}
			return ErrInvalidCLA
		}
		if n := fs.NArg(); n < len(mandatory) {
			fmt.Fprintln(out, "missing argument", mandatory[n])
			fmt.Fprintln(out)
			fs.Usage()
			return ErrInvalidCLA
		}

		if *cpuprofile != "" {
			f, err := os.Create(*cpuprofile)
			if err != nil {
				return fmt.Errorf("failed to create CPU profile: %w", err)
			}
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				return err
			}
			defer pprof.StopCPUProfile()
		}

		return cmd.Run(ctx, args, fs.Args())
	}

	fmt.Fprintf(out, "unknown command '%v'\n\n", name)
	usage()
	return ErrInvalidCLA
}
