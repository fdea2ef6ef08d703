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

// Package adapter implements the Event Adapters (spec §4.F): the
// filesystem, registry, process, thread, image-load and handle callbacks
// that the OS would invoke. Each wraps the same template: check the
// kernel-trust boundary, resolve a canonical subject path, consult the
// String-Filter Set, deny and alert on a match, pass through otherwise.
//
// These adapters are the seam between peacemaker and the out-of-scope OS
// collaborators named in spec §6; nothing in this package registers real
// kernel callbacks -- that registration lives with the caller (in this
// module, cmd/peacemakerd's simulation mode, via internal/simhost).
package adapter

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nestybox/peacemaker/domain"
)

// Decision is the outcome of running an event through an adapter's filter
// template.
type Decision struct {
	// Denied is true when a filter matched and the operation must be
	// completed with ACCESS_DENIED (spec §4.F step 4).
	Denied bool
}

// Deps bundles the components every adapter consults. Adapters never hold
// their own copy of component state; they only borrow these handles, per
// spec §9's "pass borrowed handles to each adapter" guidance.
type Deps struct {
	Filters        domain.FilterServiceIface
	History        domain.HistoryServiceIface
	Detect         domain.DetectionLogicIface
	Walker         domain.StackWalkerIface
	MaxStackFrames int
}

func (d Deps) maxFrames() int {
	if d.MaxStackFrames <= 0 {
		return 30 // MAX_STACK_RETURN_HISTORY, spec §6
	}
	return d.MaxStackFrames
}

// callerImagePath best-effort resolves pid's current image path from
// history; failures are swallowed -- spec §4.F step 5 treats this
// resolution as best-effort, never fail-closed.
func (d Deps) callerImagePath(pid uint32) string {
	summaries := d.History.HistorySummary(0, 1<<20)
	for _, s := range summaries {
		if s.PID == pid && !s.Terminated {
			return s.ImagePath
		}
	}
	return ""
}

// evaluate runs the common filter-check-then-deny-and-alert template
// shared by every FS/registry hook (spec §4.F steps 2-5). fromKernel short
// circuits to an always-allow Decision per the kernel trust boundary
// (spec §1 non-goals).
func (d Deps) evaluate(ctx context.Context, fromKernel bool, source domain.EventSource, kind domain.FilterKind, callerPID uint32, subject string, op domain.FilterOp) Decision {
	if fromKernel {
		return Decision{}
	}

	entry, matched := d.Filters.MatchingEntry(kind, subject, op)
	if !matched {
		return Decision{}
	}

	callerPath := d.callerImagePath(callerPID)

	var stack []domain.StackFrame
	if d.Walker != nil {
		var err error
		stack, err = d.Walker.Walk(ctx, d.maxFrames())
		if err != nil {
			logrus.Warnf("adapter: stack walk failed for pid=%d: %v", callerPID, err)
		}
	}

	d.Detect.ReportFilterViolation(source, callerPID, callerPath, subject, stack)

	logrus.WithFields(logrus.Fields{
		"filter-id": entry.ID,
		"pid":       callerPID,
		"subject":   subject,
	}).Warn("adapter: denied operation matching filter")

	return Decision{Denied: true}
}
