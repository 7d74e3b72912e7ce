package wpa

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
)

// Interfaces lists the interface names with a control socket under ctrlDir.
// Non-socket directory entries are ignored.
func Interfaces(ctrlDir string) ([]string, error) {
	entries, err := os.ReadDir(ctrlDir)
	if err != nil {
		return nil, fmt.Errorf("wpa: read control directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.Type()&fs.ModeSocket == 0 {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
