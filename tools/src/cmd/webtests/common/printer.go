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

package common

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sergi/go-diff/diffmatchpatch"

	"dawn.googlesource.com/blinktools/tools/src/webtests/baseline"
)

// Printer writes the tool's output, coloring it when writing to a terminal
type Printer struct {
	out     io.Writer
	added   *color.Color
	deleted *color.Color
	info    *color.Color
	warning *color.Color
}

// NewPrinter returns a Printer that writes to stdout
func NewPrinter() *Printer {
	fd := os.Stdout.Fd()
	colored := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return NewPrinterFor(colorable.NewColorable(os.Stdout), colored)
}

// NewPrinterFor returns a Printer that writes to w
func NewPrinterFor(w io.Writer, colored bool) *Printer {
	p := &Printer{
		out:     w,
		added:   color.New(color.FgGreen),
		deleted: color.New(color.FgRed),
		info:    color.New(color.FgCyan),
		warning: color.New(color.FgYellow, color.Bold),
	}
	for _, c := range []*color.Color{p.added, p.deleted, p.info, p.warning} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Printf prints the uncolored message
func (p *Printer) Printf(msg string, args ...any) {
	fmt.Fprintf(p.out, msg, args...)
}

// Infof prints the highlighted message
func (p *Printer) Infof(msg string, args ...any) {
	p.info.Fprintf(p.out, msg, args...)
}

// Warnf prints the warning message
func (p *Printer) Warnf(msg string, args ...any) {
	p.warning.Fprintf(p.out, msg, args...)
}

// Changes prints the files deleted and written by optimizing a test
func (p *Printer) Changes(c baseline.Changes) {
	if c.Empty() {
		return
	}
	p.Infof("%v (%v)\n", c.Test, c.Suffix)
	for _, path := range c.Deleted {
		p.deleted.Fprintf(p.out, "  - %v\n", path)
	}
	for _, path := range c.Written {
		p.added.Fprintf(p.out, "  + %v\n", path)
	}
}

// Diff prints a line diff of before and after
func (p *Printer) Diff(before, after string) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToRunes(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(a, b, false), lines)
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				p.added.Fprintf(p.out, "+%v\n", line)
			case diffmatchpatch.DiffDelete:
				p.deleted.Fprintf(p.out, "-%v\n", line)
			}
		}
	}
}
