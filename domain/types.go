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

// Package domain holds the shared types and interfaces that every
// peacemaker component is built around. Components depend on these
// interfaces, never on each other's concrete types.
package domain

import "time"

// FilterKind identifies the subject domain a FilterEntry applies to.
type FilterKind int

const (
	FilesystemFilter FilterKind = iota
	RegistryFilter
)

func (k FilterKind) String() string {
	switch k {
	case FilesystemFilter:
		return "filesystem"
	case RegistryFilter:
		return "registry"
	default:
		return "unknown"
	}
}

// FilterOp is a bitmask over the operation classes a filter entry applies to.
type FilterOp uint32

const (
	OpDelete FilterOp = 1 << iota
	OpWrite
	OpExecute
)

// MaxPatternLen is the code-unit bound the original imposes on filter
// patterns and subjects (UNICODE_STRING buffers are 260 wide chars).
const MaxPatternLen = 260

// FilterEntry is a single operator-supplied pattern, qualified by ops.
type FilterEntry struct {
	ID      uint32
	Kind    FilterKind
	Pattern string
	Ops     FilterOp
}

// StackFrame is one resolved (or unresolved) return address.
type StackFrame struct {
	RawAddress    uint64
	InModule      bool
	Executable    bool
	ModulePath    string
	ModuleOffset  uint64
}

// EventSource names the kind of event that triggered detection logic.
type EventSource int

const (
	SourceProcessCreate EventSource = iota
	SourceProcessTerminate
	SourceImageLoad
	SourceRegistryMatch
	SourceFileMatch
	SourceThreadCreate
)

func (s EventSource) String() string {
	switch s {
	case SourceProcessCreate:
		return "process-create"
	case SourceProcessTerminate:
		return "process-terminate"
	case SourceImageLoad:
		return "image-load"
	case SourceRegistryMatch:
		return "registry-match"
	case SourceFileMatch:
		return "file-match"
	case SourceThreadCreate:
		return "thread-create"
	default:
		return "unknown"
	}
}

// AlertType tags which alert variant an Alert is; ParentProcessIDSpoofing
// and RemoteThreadCreation are the two sub-cases of the RemoteOperation
// variant.
type AlertType int

const (
	AlertTypeNone AlertType = iota
	AlertTypeStackViolation
	AlertTypeFilterViolation
	AlertTypeParentProcessIDSpoofing
	AlertTypeRemoteThreadCreation
)

// AlertCommon is embedded in every alert variant.
type AlertCommon struct {
	SizeBytes  uint32
	Source     EventSource
	AlertType  AlertType
	SourcePID  uint32
	SourcePath string
	TargetPath string
}

// Alert is the tagged union of the three alert variants the detection
// logic can produce. Common.AlertType selects the variant, and with it
// which of the variant-specific fields below are populated.
type Alert struct {
	Common AlertCommon

	// StackViolation / FilterViolation share a stack trace.
	Stack []StackFrame

	// StackViolation only.
	ViolatingAddress uint64

	// RemoteOperation only.
	RemoteTarget uint32
}

// ImageRecord is one loaded-image entry belonging to a ProcessRecord.
type ImageRecord struct {
	ImagePath string
	LoadStack []StackFrame
}

// AuditEvent is one additive, alert-free audit-trail entry recorded
// against a ProcessRecord -- currently only ProcessTerminate observations,
// logged independent of (and in addition to) the terminated flag flip.
type AuditEvent struct {
	Source EventSource
	Epoch  int64
}

// ProcessKey is the (pid, epoch_seconds) lifetime key of a ProcessRecord.
type ProcessKey struct {
	PID   uint32
	Epoch int64
}

// ProcessSummary is the newest-first paged view returned by HistorySummary.
type ProcessSummary struct {
	PID       uint32
	ImagePath string
	Epoch     int64
	Terminated bool
}

// ProcessDetailed is the exact-match detail view returned by Detailed.
type ProcessDetailed struct {
	PID          uint32
	ParentPID    uint32
	CallerPID    uint32
	CallerPath   string
	ParentPath   string
	ImagePath    string
	Epoch        int64
	Terminated   bool
	CreationStack []StackFrame
	Images       []ImageDetailed
	AuditTrail   []AuditEvent
}

// ImageDetailed is the per-image view returned by ImageDetailed.
type ImageDetailed struct {
	ImagePath string
	LoadStack []StackFrame
}

// ProcessSizes supports UI pre-allocation ahead of a Detailed/ImageDetailed call.
type ProcessSizes struct {
	ImageCount int
	StackCount int
}

// AccessMask mirrors the original's desired-access bitmask for handle
// operations; only the bit the guard cares about is named here.
type AccessMask uint32

const (
	AccessTerminate AccessMask = 0x0001
)

// Clock lets components stamp events without depending on wall-clock time
// directly, so tests can supply a deterministic source.
type Clock interface {
	Now() time.Time
}
