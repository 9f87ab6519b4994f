// textdiff renders unified diffs between two versions of a feed.
package textdiff

import (
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Unified returns the unified diff turning from into to, or an empty
// string when they are equal.
func Unified(fromName, toName, from, to string) string {
	if from == to {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(fromName), from, to)
	return fmt.Sprint(gotextdiff.ToUnified(fromName, toName, from, edits))
}
