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

// Package guard implements the Protected-Process Guard (spec §4.G): it
// strips TERMINATE rights from handle-create/duplicate operations against
// a single designated "protected process" when requested by a different
// process.
package guard

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/nestybox/peacemaker/domain"
)

// Guard holds the single protected-process atom.
type Guard struct {
	protectedPID atomic.Uint32
}

// New returns a Guard with no process protected (pid 0).
func New() *Guard {
	return &Guard{}
}

// Update replaces the protected process id.
func (g *Guard) Update(pid uint32) {
	old := g.protectedPID.Swap(pid)
	if old != pid {
		logrus.Infof("guard: protected process changed %d -> %d", old, pid)
	}
}

// Protected returns the currently protected process id.
func (g *Guard) Protected() uint32 {
	return g.protectedPID.Load()
}

// StripTerminateAccess removes domain.AccessTerminate from desired when the
// handle targets the protected process and the caller is not that process
// itself. All other rights, and all handles against non-protected
// processes, pass through unchanged.
func (g *Guard) StripTerminateAccess(objectPID, callerPID uint32, desired domain.AccessMask) domain.AccessMask {
	protected := g.protectedPID.Load()
	if protected == 0 || objectPID != protected || callerPID == protected {
		return desired
	}

	if desired&domain.AccessTerminate == 0 {
		return desired
	}

	logrus.WithFields(logrus.Fields{
		"object": objectPID,
		"caller": callerPID,
	}).Warn("guard: stripped TERMINATE access to protected process")

	return desired &^ domain.AccessTerminate
}
