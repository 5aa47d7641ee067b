package runstat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aclements/go-gg/table"
)

// Consistencies returns the sorted distinct consistency labels in t.
func Consistencies(t table.Grouping) []string {
	seen := make(map[string]bool)
	for _, gid := range t.Tables() {
		for _, c := range t.Table(gid).MustColumn("consistency").([]string) {
			seen[c] = true
		}
	}
	labels := make([]string, 0, len(seen))
	for c := range seen {
		labels = append(labels, c)
	}
	sort.Strings(labels)
	return labels
}

// CheckConsistencies verifies that t covers exactly want distinct
// consistency labels. An unexpected cardinality means the input
// directory is missing runs for some model (or mixes unrelated
// experiments), and any chart drawn from it would be misleading, so
// the report fails fast here before aggregation.
func CheckConsistencies(t table.Grouping, want int) error {
	got := Consistencies(t)
	if len(got) != want {
		return fmt.Errorf("found %d consistency models (%s), want %d",
			len(got), strings.Join(got, ", "), want)
	}
	return nil
}
