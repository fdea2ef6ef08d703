//
// Copyright 2019-2020 Nestybox, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package stackwalk implements the Stack Walker (spec §4.B): it captures
// user-mode return addresses of the calling thread and resolves each one
// to a backing module or marks it executable-but-unbacked ("manual
// mapped").
//
// The original walks PsLoadedModuleList and VirtualQuery/MmIsAddressValid
// on Windows; the nearest portable Go analogue -- and the one grounded on
// this pack (mount/infoParser.go, seccomp/memParserProcfs.go) -- is
// runtime.Callers for capturing return PCs and /proc/<pid>/maps for
// resolving each one to a mapping, a module offset, or an
// executable-but-unbacked verdict.
package stackwalk

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nestybox/peacemaker/domain"
)

// StackFrame is an alias kept local to this package's exported surface for
// readability; it is identical to domain.StackFrame.
type StackFrame = domain.StackFrame

func callersFunc(skip int, pcs []uintptr) int {
	return runtime.Callers(skip, pcs)
}

// mapping is one /proc/<pid>/maps line, parsed.
type mapping struct {
	start, end uint64
	perms      string
	pathname   string
}

var mapsLineRE = regexp.MustCompile(
	`^([0-9a-f]+)-([0-9a-f]+)\s+([rwxps-]{4})\s+[0-9a-f]+\s+\S+\s+\d+\s*(.*)$`)

// Walker resolves return addresses against a process's memory map.
type Walker struct {
	// pid identifies whose /proc/<pid>/maps to consult; 0 means "self".
	pid int
}

// New returns a Walker that resolves addresses against pid's memory map.
// A pid of 0 resolves against the calling process itself.
func New(pid int) *Walker {
	return &Walker{pid: pid}
}

// Walk captures up to maxFrames user-mode return addresses of the calling
// goroutine's stack, starting at Walk's caller (Walk's own frame is
// skipped), and resolves
// each one. Callers must not invoke Walk on a kernel-originated event --
// there is no meaningful user-mode stack to walk in that case.
func (w *Walker) Walk(ctx context.Context, maxFrames int) ([]StackFrame, error) {
	if maxFrames <= 0 {
		return nil, nil
	}

	pcs := make([]uintptr, maxFrames)
	// Skip runtime.Callers itself, the callersFunc wrapper and this
	// function's own frame, mirroring the original's "skip the immediate
	// caller" requirement.
	n := callersFunc(3, pcs)
	pcs = pcs[:n]

	maps, err := w.readMaps()
	if err != nil {
		// An OS-boundary query failure must not fail the caller; the spec
		// has the event adapter pass the event through and log instead.
		logrus.Warnf("stackwalk: reading memory map failed: %v", err)
		maps = nil
	}

	frames := make([]StackFrame, 0, len(pcs))
	for _, pc := range pcs {
		select {
		case <-ctx.Done():
			return frames, ctx.Err()
		default:
		}
		frames = append(frames, resolveAddress(uint64(pc), maps))
	}
	return frames, nil
}

// Resolve is the single-address variant used by pointer auditing.
func (w *Walker) Resolve(addr uint64) StackFrame {
	maps, err := w.readMaps()
	if err != nil {
		logrus.Warnf("stackwalk: reading memory map failed: %v", err)
		return StackFrame{RawAddress: addr}
	}
	return resolveAddress(addr, maps)
}

func resolveAddress(addr uint64, maps []mapping) StackFrame {
	for _, m := range maps {
		if addr < m.start || addr >= m.end {
			continue
		}
		if m.pathname != "" && !strings.HasPrefix(m.pathname, "[") {
			return StackFrame{
				RawAddress:   addr,
				InModule:     true,
				ModulePath:   m.pathname,
				ModuleOffset: addr - m.start,
			}
		}
		if strings.Contains(m.perms, "x") {
			return StackFrame{
				RawAddress: addr,
				Executable: true,
			}
		}
		return StackFrame{RawAddress: addr}
	}
	// Address not covered by any known mapping: neither in-module nor
	// known-executable.
	return StackFrame{RawAddress: addr}
}

func (w *Walker) readMaps() ([]mapping, error) {
	path := "/proc/self/maps"
	if w.pid > 0 {
		path = fmt.Sprintf("/proc/%d/maps", w.pid)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []mapping
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m, ok := parseMapsLine(scanner.Text())
		if ok {
			out = append(out, m)
		}
	}
	if err := scanner.Err(); err != nil {
		return out, err
	}
	return out, nil
}

func parseMapsLine(line string) (mapping, bool) {
	match := mapsLineRE.FindStringSubmatch(line)
	if match == nil {
		return mapping{}, false
	}

	start, err := strconv.ParseUint(match[1], 16, 64)
	if err != nil {
		return mapping{}, false
	}
	end, err := strconv.ParseUint(match[2], 16, 64)
	if err != nil {
		return mapping{}, false
	}

	return mapping{
		start:    start,
		end:      end,
		perms:    match[3],
		pathname: strings.TrimSpace(match[4]),
	}, true
}
