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
	"strings"

	"github.com/nestybox/peacemaker/domain"
)

// Registry is the registry Event Adapter (spec §4.F): pre-set-value and
// pre-delete-value.
type Registry struct {
	Deps
}

// NewRegistry returns a Registry adapter backed by deps.
func NewRegistry(deps Deps) *Registry {
	return &Registry{Deps: deps}
}

// PreSetValue handles a registry value-write request.
func (r *Registry) PreSetValue(ctx context.Context, fromKernel bool, callerPID uint32, keyPath, valueName string) Decision {
	subject := strings.ToLower(RegistryPath(keyPath, valueName))
	return r.evaluate(ctx, fromKernel, domain.SourceRegistryMatch, domain.RegistryFilter, callerPID, subject, domain.OpWrite)
}

// PreDeleteValue handles a registry value-delete request.
func (r *Registry) PreDeleteValue(ctx context.Context, fromKernel bool, callerPID uint32, keyPath, valueName string) Decision {
	subject := strings.ToLower(RegistryPath(keyPath, valueName))
	return r.evaluate(ctx, fromKernel, domain.SourceRegistryMatch, domain.RegistryFilter, callerPID, subject, domain.OpDelete)
}
