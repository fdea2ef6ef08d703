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
	"path/filepath"
	"strings"
)

// NormalizeFilePath canonicalizes a filesystem subject path the way spec
// §6 requires: normalized to a canonical, slash-separated form. Lowercasing
// for case-insensitive matching happens later, in filter.MatchingEntry.
func NormalizeFilePath(path string) string {
	clean := filepath.Clean(strings.ReplaceAll(path, `\`, `/`))
	return clean
}

// RegistryPath builds the canonical registry subject: key path concatenated
// with the value name via a backslash, per spec §6.
func RegistryPath(keyPath, valueName string) string {
	return keyPath + `\` + valueName
}
