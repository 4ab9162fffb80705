package symbol

import (
	"path"
	"strings"
)

// relativeImportPath computes the relative module specifier a file at
// fromFile would use to import a file at toFile, per SPEC_FULL.md §4.3:
// strip the filename from the source, find the longest common path
// prefix, prepend "../" for each non-shared source segment, then append
// the remainder of the target path.
func relativeImportPath(fromFile, toFile string) string {
	fromDir := path.Dir(fromFile)
	if fromDir == "." {
		fromDir = ""
	}
	fromParts := nonEmptySegments(fromDir)
	toParts := nonEmptySegments(toFile)

	i := 0
	for i < len(fromParts) && i < len(toParts)-1 && fromParts[i] == toParts[i] {
		i++
	}

	var segments []string
	for range fromParts[i:] {
		segments = append(segments, "..")
	}
	segments = append(segments, toParts[i:]...)

	rel := strings.Join(segments, "/")
	if !strings.HasPrefix(rel, "..") {
		rel = "./" + rel
	}
	return rel
}

func nonEmptySegments(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// rewriteExtension replaces a trailing source extension with a target
// extension, leaving the path untouched if it doesn't carry the source
// extension at all.
func rewriteExtension(p, from, to string) string {
	if from == "" || to == "" || from == to {
		return p
	}
	if strings.HasSuffix(p, from) {
		return strings.TrimSuffix(p, from) + to
	}
	return p
}
