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

// FileInfoKind distinguishes the sub-cases the original's
// pre-set-information hook collapses into a single DELETE-op template:
// disposition changes, renames and hardlinks. Restored from
// original_source/PeaceMaker Kernel/FSFilter.cpp, which special-cases
// FileRenameInformation/FileLinkInformation alongside
// FileDispositionInformation under the same filter check.
type FileInfoKind int

const (
	FileInfoDisposition FileInfoKind = iota
	FileInfoRename
	FileInfoLink
)

// FS is the filesystem Event Adapter (spec §4.F): create-with-delete-on-close,
// create-with-execute-access, write, and set-disposition/rename/link.
type FS struct {
	Deps
}

// NewFS returns an FS adapter backed by deps.
func NewFS(deps Deps) *FS {
	return &FS{Deps: deps}
}

// PreCreateDeleteOnClose handles a create-with-delete-on-close request.
func (f *FS) PreCreateDeleteOnClose(ctx context.Context, fromKernel bool, callerPID uint32, rawPath string) Decision {
	subject := NormalizeFilePath(rawPath)
	return f.evaluate(ctx, fromKernel, domain.SourceFileMatch, domain.FilesystemFilter, callerPID, subject, domain.OpDelete)
}

// PreCreateExecute handles a create-with-execute-access request.
func (f *FS) PreCreateExecute(ctx context.Context, fromKernel bool, callerPID uint32, rawPath string) Decision {
	subject := NormalizeFilePath(rawPath)
	return f.evaluate(ctx, fromKernel, domain.SourceFileMatch, domain.FilesystemFilter, callerPID, subject, domain.OpExecute)
}

// PreWrite handles a write request.
func (f *FS) PreWrite(ctx context.Context, fromKernel bool, callerPID uint32, rawPath string) Decision {
	subject := NormalizeFilePath(rawPath)
	return f.evaluate(ctx, fromKernel, domain.SourceFileMatch, domain.FilesystemFilter, callerPID, subject, domain.OpWrite)
}

// PreSetInformation handles set-disposition, rename and hardlink requests,
// all qualified by the DELETE op per spec §4.F.
func (f *FS) PreSetInformation(ctx context.Context, fromKernel bool, callerPID uint32, rawPath string, kind FileInfoKind) Decision {
	subject := NormalizeFilePath(rawPath)
	return f.evaluate(ctx, fromKernel, domain.SourceFileMatch, domain.FilesystemFilter, callerPID, subject, domain.OpDelete)
}
