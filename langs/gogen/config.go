// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gogen

import (
	"path/filepath"
	"strings"
)

// InferPackageNameFromPath infers package name from output directory path
func InferPackageNameFromPath(outputPath string) string {
	if outputPath == "" {
		return "puzzles"
	}

	dir := filepath.Base(filepath.Clean(outputPath))
	if dir == "." || dir == string(filepath.Separator) {
		return "puzzles"
	}

	// Handle hyphens: split by '-' and take the longest part
	if strings.Contains(dir, "-") {
		longest := ""
		for _, part := range strings.Split(dir, "-") {
			if len(part) > len(longest) {
				longest = part
			}
		}

		if longest != "" {
			dir = longest
		}
	}

	return sanitizePackageName(strings.ToLower(dir))
}

func sanitizePackageName(name string) string {
	result := strings.ReplaceAll(name, ".", "_")

	// Ensure it starts with a letter
	if len(result) > 0 && (result[0] >= '0' && result[0] <= '9') {
		result = "pkg_" + result
	}

	return result
}
