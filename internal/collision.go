package internal

import (
	"fmt"
	"path/filepath"
	"strings"
)

// maxCollisionProbes caps the numbered-suffix search so a directory packed
// with thousands of identically named files fails loudly instead of looping.
const maxCollisionProbes = 10000

// ResolveTarget returns a path the planned file may be written to. A free
// path, or any path under overwrite, comes back unchanged; the caller is
// responsible for removing an existing file before writing when overwrite is
// set. Otherwise candidates "name (2).ext", "name (3).ext", ... are probed in
// strictly increasing order and the first free one wins.
func ResolveTarget(proposed string, overwrite bool, exists func(string) bool) (string, error) {
	if overwrite || !exists(proposed) {
		return proposed, nil
	}

	ext := filepath.Ext(proposed)
	stem := strings.TrimSuffix(proposed, ext)

	for n := 2; n <= maxCollisionProbes; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if !exists(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no free name for %s after %d attempts", filepath.Base(proposed), maxCollisionProbes)
}
