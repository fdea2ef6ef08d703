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

package domain

import "context"

// FilterServiceIface is the String-Filter Set (spec §4.A).
type FilterServiceIface interface {
	Add(kind FilterKind, pattern string, ops FilterOp) (uint32, error)
	Remove(kind FilterKind, id uint32) bool
	List(kind FilterKind, skip, max int) []FilterEntry
	Matches(kind FilterKind, subject string, ops FilterOp) bool
	MatchingEntry(kind FilterKind, subject string, ops FilterOp) (FilterEntry, bool)
	Count(kind FilterKind) int
	Save(kind FilterKind) error
	Restore(kind FilterKind) error
	Teardown()
}

// StackWalkerIface is the Stack Walker (spec §4.B).
type StackWalkerIface interface {
	Walk(ctx context.Context, maxFrames int) ([]StackFrame, error)
	Resolve(addr uint64) StackFrame
}

// AlertQueueIface is the Alert Queue (spec §4.C).
type AlertQueueIface interface {
	Push(alert Alert)
	Pop() (Alert, bool)
	IsEmpty() bool
	Teardown()
}

// DetectionLogicIface is the Detection Logic (spec §4.D).
type DetectionLogicIface interface {
	AuditStack(source EventSource, pid uint32, srcPath, tgtPath string, stack []StackFrame) bool
	AuditPointer(source EventSource, pid uint32, srcPath, tgtPath string, ptr uint64) bool
	AuditPointerResolved(source EventSource, pid uint32, srcPath, tgtPath string, frame StackFrame) bool
	AuditCaller(source EventSource, callerPID, targetPID uint32, srcPath, tgtPath string) bool
	ReportFilterViolation(source EventSource, callerPID uint32, callerPath, violatingPath string, stack []StackFrame)
}

// HistoryServiceIface is the Process/Image History store (spec §4.E).
type HistoryServiceIface interface {
	OnProcessCreate(pid, parentPID, callerPID uint32, imagePath string, callerPath, parentPath string, stack []StackFrame) (ProcessKey, error)
	OnProcessExit(pid uint32) bool
	OnProcessTerminateObserved(pid uint32) bool
	OnImageLoad(pid uint32, imagePath string, stack []StackFrame) error
	HistorySummary(skip, max int) []ProcessSummary
	Detailed(key ProcessKey) (ProcessDetailed, bool)
	ImageDetailed(key ProcessKey, index int) (ImageDetailed, bool)
	Sizes(key ProcessKey) (ProcessSizes, bool)
	Count() int
	Teardown()
}

// GuardServiceIface is the Protected-Process Guard (spec §4.G).
type GuardServiceIface interface {
	Update(pid uint32)
	Protected() uint32
	StripTerminateAccess(objectPID, callerPID uint32, desired AccessMask) AccessMask
}

// PersistenceServiceIface durably stores/retrieves a FilterKind's entries.
type PersistenceServiceIface interface {
	Save(kind FilterKind, entries []FilterEntry) error
	Restore(kind FilterKind) ([]FilterEntry, error)
}
