package converter

import (
	"strconv"
	"strings"
)

// renderList renders every top-level list item on its own line. Item markup
// is reduced to its text; nested lists are flattened into their parent item.
func (s *state) renderList(block Block) string {
	items := topLevelListItems(parseFragment(block.Body()))
	if len(items) == 0 {
		return ""
	}

	ordered := block.BoolAttr("ordered")
	bullet := string(s.config.BulletMarker) + " "

	lines := make([]string, 0, len(items))
	for i, item := range items {
		marker := bullet
		if ordered {
			marker = strconv.Itoa(i+1) + ". "
		}
		lines = append(lines, marker+strings.TrimSpace(textContent(item)))
	}

	return strings.Join(lines, "\n")
}
