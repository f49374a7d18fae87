// SPDX-License-Identifier: Apache-2.0

package script

import (
	"context"
	"log/slog"
	"strings"

	"github.com/qautil/tcmapper/internal/logging"
	"github.com/qautil/tcmapper/internal/mapping"
)

const indent = "        "

// browserInitKey collapses every navigation into one dedup entry.
const browserInitKey = "BROWSER_INIT"

// Resolver maps one fragment to an action.
type Resolver interface {
	Resolve(ctx context.Context, text string) (mapping.Result, error)
}

// Line traces how one fragment became script code.
type Line struct {
	Section    string         `json:"section"`
	Index      int            `json:"index"`
	Text       string         `json:"text"`
	Result     mapping.Result `json:"result"`
	ObjectPath string         `json:"object_path,omitempty"`
	Code       string         `json:"code,omitempty"`
	Duplicate  bool           `json:"duplicate,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// Builder renders sections of a script. Actions already emitted by any
// section of the same Builder are skipped, so a Builder must not be shared
// between scripts.
type Builder struct {
	resolver Resolver
	logger   *slog.Logger
	used     map[string]bool
}

// NewBuilder creates a Builder. A nil logger discards output.
func NewBuilder(resolver Resolver, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Builder{resolver: resolver, logger: logger, used: make(map[string]bool)}
}

// BuildSection renders one section: a header comment, then for every
// non-empty fragment a comment repeating it followed by its code line.
// A fragment that cannot be resolved becomes a TODO comment.
func (b *Builder) BuildSection(ctx context.Context, section string, fragments []string) (string, []Line) {
	var sb strings.Builder
	sb.WriteString(indent + "// === " + section + " ===\n")
	if len(fragments) == 0 {
		sb.WriteString(indent + "// No content\n\n")
		return sb.String(), nil
	}

	var lines []Line
	for i, text := range fragments {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		line := b.buildLine(ctx, section, i+1, trimmed)
		lines = append(lines, line)

		sb.WriteString(indent + "// " + flatten(trimmed) + "\n")
		if line.Duplicate {
			sb.WriteString(indent + "// Duplicate action skipped: " + line.Result.Action + "\n")
			continue
		}
		sb.WriteString(indent + line.Code + "\n")
	}
	sb.WriteString("\n")
	return sb.String(), lines
}

func (b *Builder) buildLine(ctx context.Context, section string, index int, text string) Line {
	line := Line{Section: section, Index: index, Text: text}

	res, err := b.resolver.Resolve(ctx, text)
	if err != nil {
		b.logger.WarnContext(ctx, "fragment could not be resolved",
			"section", section, "index", index, "error", err)
		line.Error = err.Error()
		line.Code = commentCall + `("TODO: ` + escape(text) + `")`
		return line
	}
	line.Result = res
	line.ObjectPath = ObjectPath(text, section, index)

	key := dedupKey(res, line.ObjectPath)
	if b.used[key] {
		b.logger.DebugContext(ctx, "duplicate action skipped", "section", section, "index", index, "action", res.Action)
		line.Duplicate = true
		return line
	}
	b.used[key] = true

	line.Code = Synthesize(res, line.ObjectPath, text)
	return line
}

func dedupKey(res mapping.Result, objectPath string) string {
	if res.Action == ActionNavigate {
		return browserInitKey
	}
	return res.Action + "|" + res.Type + "|" + objectPath
}

// flatten keeps a multi-line fragment on one comment line.
func flatten(text string) string {
	if !strings.Contains(text, "\n") {
		return text
	}
	return strings.Join(strings.Fields(strings.ReplaceAll(text, "\n", " ")), " ")
}
