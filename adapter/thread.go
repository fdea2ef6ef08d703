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

	"github.com/nestybox/peacemaker/domain"
)

// Thread is the thread-create Event Adapter (spec §4.F). It only runs on
// the second and later threads of a process -- the first thread is the
// process's own entry thread and carries no cross-process signal.
type Thread struct {
	Deps
}

// NewThread returns a Thread adapter backed by deps.
func NewThread(deps Deps) *Thread {
	return &Thread{Deps: deps}
}

// OnThreadCreate audits the new thread's start address, the caller's
// stack, and the cross-process predicate, per spec §4.F. isFirstThread
// short-circuits the whole audit when true.
func (t *Thread) OnThreadCreate(ctx context.Context, isFirstThread bool, callerPID, targetPID uint32, startAddr uint64, callerPath, targetPath string) {
	if isFirstThread {
		return
	}

	startFrame := domain.StackFrame{RawAddress: startAddr}
	if t.Walker != nil {
		startFrame = t.Walker.Resolve(startAddr)
	}
	t.Detect.AuditPointerResolved(domain.SourceThreadCreate, callerPID, callerPath, targetPath, startFrame)

	if t.Walker != nil {
		stack, err := t.Walker.Walk(ctx, t.maxFrames())
		if err == nil {
			t.Detect.AuditStack(domain.SourceThreadCreate, callerPID, callerPath, targetPath, stack)
		}
	}

	t.Detect.AuditCaller(domain.SourceThreadCreate, callerPID, targetPID, callerPath, targetPath)
}
