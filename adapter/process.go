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

package adapter

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nestybox/peacemaker/domain"
)

// Process is the process create/terminate Event Adapter (spec §4.F,
// driven by §4.E's history recording and §4.D's parent-id-spoofing audit).
type Process struct {
	Deps
}

// NewProcess returns a Process adapter backed by deps.
func NewProcess(deps Deps) *Process {
	return &Process{Deps: deps}
}

// OnProcessCreate records the new process in history and audits the
// caller/parent relationship for parent-process-id spoofing. callerPID is
// the process that actually requested the creation (may differ from
// parentPID, the value the new process believes is its parent).
func (p *Process) OnProcessCreate(ctx context.Context, fromKernel bool, pid, parentPID, callerPID uint32, imagePath, callerPath, parentPath string) {
	var stack []domain.StackFrame
	if p.Walker != nil {
		var err error
		stack, err = p.Walker.Walk(ctx, p.maxFrames())
		if err != nil {
			logrus.Warnf("adapter: stack walk failed for new pid=%d: %v", pid, err)
		}
	}

	if _, err := p.History.OnProcessCreate(pid, parentPID, callerPID, imagePath, callerPath, parentPath, stack); err != nil {
		logrus.Errorf("adapter: failed to record process create pid=%d: %v", pid, err)
	}

	if fromKernel {
		return
	}

	p.Detect.AuditCaller(domain.SourceProcessCreate, callerPID, parentPID, callerPath, parentPath)
}

// OnProcessExit records the termination observation in the audit trail,
// then marks the corresponding history record terminated -- two
// independent side effects of the same notification, per
// history.Store.OnProcessTerminateObserved's doc comment.
func (p *Process) OnProcessExit(pid uint32) {
	p.History.OnProcessTerminateObserved(pid)
	p.History.OnProcessExit(pid)
}
