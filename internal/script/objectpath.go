// SPDX-License-Identifier: Apache-2.0

package script

import (
	"fmt"
	"strings"

	"github.com/qautil/tcmapper/internal/keyword"
)

// ObjectRepositoryPrefix is the Katalon object repository root.
const ObjectRepositoryPrefix = "Object Repository/"

// maxNameKeywords is the number of keywords an object name is built from.
const maxNameKeywords = 3

// ObjectName derives a test object name from the first keywords of text.
// Fragments without keywords are named after their section and position.
func ObjectName(text, section string, index int) string {
	keywords := keyword.Extract(text)
	if len(keywords) == 0 {
		prefix := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(section)), " ", "_")
		return fmt.Sprintf("%s_%d_element", prefix, index)
	}
	if len(keywords) > maxNameKeywords {
		keywords = keywords[:maxNameKeywords]
	}
	return strings.Join(keywords, "_") + "_element"
}

// ObjectPath returns the repository path of the object named by ObjectName.
func ObjectPath(text, section string, index int) string {
	return ObjectRepositoryPrefix + ObjectName(text, section, index)
}
