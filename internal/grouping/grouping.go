// Package grouping chunks discovered spec paths into balanced groups so a CI
// matrix can run them in parallel.
package grouping

import "strings"

// Separator joins the paths of one group.
const Separator = ","

// Group partitions paths into contiguous chunks of ceil(len(paths)/count)
// entries and joins every chunk with Separator. The last chunk may be shorter
// and fewer than count groups are produced when there are not enough paths.
// A count <= 0 returns paths unchanged. Input order is always preserved.
func Group(count int, paths []string) []string {
	if count <= 0 {
		return paths
	}
	if len(paths) == 0 {
		return []string{}
	}

	chunkSize := (len(paths) + count - 1) / count
	groups := make([]string, 0, (len(paths)+chunkSize-1)/chunkSize)
	for start := 0; start < len(paths); start += chunkSize {
		end := min(start+chunkSize, len(paths))
		groups = append(groups, strings.Join(paths[start:end], Separator))
	}
	return groups
}
