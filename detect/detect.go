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

// Package detect implements the Detection Logic (spec §4.D): it audits
// stack walks and user pointers for manual-mapped code, detects
// cross-process parentage/thread-creation spoofing, and constructs typed
// alerts pushed into the alert queue.
package detect

import (
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/nestybox/peacemaker/domain"
)

// userKernelSplit is the address below which a raw return address is
// considered user-space. On the original's x86-64 target this is the
// canonical-address boundary; here it stands in for "address space split"
// per spec §4.D's predicate and is deliberately conservative (very few
// legitimate user-mode return addresses exceed it).
const userKernelSplit = uint64(1) << 47

// Auditor implements domain.DetectionLogicIface.
type Auditor struct {
	queue domain.AlertQueueIface
}

// New returns an Auditor that pushes alerts into queue.
func New(queue domain.AlertQueueIface) *Auditor {
	return &Auditor{queue: queue}
}

func isViolating(f domain.StackFrame) bool {
	return !f.InModule && f.Executable && f.RawAddress != 0 && f.RawAddress < userKernelSplit
}

func alertSize(stackLen int) uint32 {
	const frameSize = uint32(unsafe.Sizeof(domain.StackFrame{}))
	const commonSize = uint32(unsafe.Sizeof(domain.AlertCommon{}))
	return commonSize + frameSize*uint32(stackLen)
}

// AuditStack scans frames for the first manual-mapped return address and,
// if found, emits exactly one StackViolation alert naming it. Returns true
// if an alert was emitted.
func (a *Auditor) AuditStack(source domain.EventSource, pid uint32, srcPath, tgtPath string, stack []domain.StackFrame) bool {
	for _, f := range stack {
		if !isViolating(f) {
			continue
		}

		alert := domain.Alert{
			Common: domain.AlertCommon{
				SizeBytes:  alertSize(len(stack)),
				Source:     source,
				AlertType:  domain.AlertTypeStackViolation,
				SourcePID:  pid,
				SourcePath: srcPath,
				TargetPath: tgtPath,
			},
			Stack:            stack,
			ViolatingAddress: f.RawAddress,
		}
		a.queue.Push(alert)
		logrus.WithFields(logrus.Fields{
			"pid":     pid,
			"address": f.RawAddress,
			"source":  source,
		}).Warn("detect: stack violation")
		return true
	}
	return false
}

// AuditPointer treats ptr as an unresolved frame and emits a StackViolation
// if it looks executable-unbacked. Callers that have a stack walker should
// prefer AuditPointerResolved, which consults the real memory map.
func (a *Auditor) AuditPointer(source domain.EventSource, pid uint32, srcPath, tgtPath string, ptr uint64) bool {
	return a.AuditPointerResolved(source, pid, srcPath, tgtPath, domain.StackFrame{RawAddress: ptr})
}

// AuditPointerResolved is AuditPointer but takes an already-resolved frame,
// letting callers supply their own stackwalk.Walker.Resolve result without
// this package importing stackwalk (detect has no business owning OS
// resolution, only the predicate).
func (a *Auditor) AuditPointerResolved(source domain.EventSource, pid uint32, srcPath, tgtPath string, frame domain.StackFrame) bool {
	if !isViolating(frame) {
		return false
	}

	alert := domain.Alert{
		Common: domain.AlertCommon{
			SizeBytes:  alertSize(1),
			Source:     source,
			AlertType:  domain.AlertTypeStackViolation,
			SourcePID:  pid,
			SourcePath: srcPath,
			TargetPath: tgtPath,
		},
		Stack:            []domain.StackFrame{frame},
		ViolatingAddress: frame.RawAddress,
	}
	a.queue.Push(alert)
	logrus.WithFields(logrus.Fields{
		"pid":     pid,
		"address": frame.RawAddress,
		"source":  source,
	}).Warn("detect: pointer violation")
	return true
}

// AuditCaller emits a RemoteOperation alert when callerPID != targetPID.
// The alert's AlertType distinguishes the two originating event sources
// named in spec §4.D.
func (a *Auditor) AuditCaller(source domain.EventSource, callerPID, targetPID uint32, srcPath, tgtPath string) bool {
	if callerPID == targetPID {
		return false
	}

	alertType := domain.AlertTypeRemoteThreadCreation
	if source == domain.SourceProcessCreate {
		alertType = domain.AlertTypeParentProcessIDSpoofing
	}

	alert := domain.Alert{
		Common: domain.AlertCommon{
			SizeBytes:  alertSize(0),
			Source:     source,
			AlertType:  alertType,
			SourcePID:  callerPID,
			SourcePath: srcPath,
			TargetPath: tgtPath,
		},
		RemoteTarget: targetPID,
	}
	a.queue.Push(alert)
	logrus.WithFields(logrus.Fields{
		"caller": callerPID,
		"target": targetPID,
		"type":   alertType,
	}).Warn("detect: remote operation")
	return true
}

// ReportFilterViolation constructs and pushes a FilterViolation alert.
func (a *Auditor) ReportFilterViolation(source domain.EventSource, callerPID uint32, callerPath, violatingPath string, stack []domain.StackFrame) {
	alert := domain.Alert{
		Common: domain.AlertCommon{
			SizeBytes:  alertSize(len(stack)),
			Source:     source,
			AlertType:  domain.AlertTypeFilterViolation,
			SourcePID:  callerPID,
			SourcePath: callerPath,
			TargetPath: violatingPath,
		},
		Stack: stack,
	}
	a.queue.Push(alert)
	logrus.WithFields(logrus.Fields{
		"caller": callerPID,
		"target": violatingPath,
	}).Warn("detect: filter violation")
}
