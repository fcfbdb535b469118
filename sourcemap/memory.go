// SPDX-License-Identifier: MIT
package sourcemap

import (
	"errors"
	"sort"
)

// Registration errors.
var (
	// ErrEmptyPath rejects AddFile calls missing a path.
	ErrEmptyPath = errors.New("source map: empty path")
)

// MemoryMap is a minimal, read-after-write in-memory SourceMap.
//
// It is safe for concurrent reads once all AddFile calls have returned;
// AddFile itself is not synchronized, matching the "built once, read many"
// lifecycle the core assumes of its collaborators.
type MemoryMap struct {
	files map[ID]FileInfo
	next  ID
}

// NewMemoryMap constructs an empty MemoryMap.
func NewMemoryMap() *MemoryMap { return &MemoryMap{files: make(map[ID]FileInfo)} }

// AddFile registers contents under path & returns the assigned ID.
func (m *MemoryMap) AddFile(path string, contents []byte) (ID, error) {
	if path == "" {
		return 0, ErrEmptyPath
	}

	id := m.next
	m.next++

	m.files[id] = FileInfo{
		Path:        path,
		Contents:    contents,
		LineOffsets: lineOffsets(contents),
	}

	return id, nil
}

// Get implements SourceMap.
func (m *MemoryMap) Get(id ID) (FileInfo, bool) {
	info, ok := m.files[id]
	return info, ok
}

// BytePosition implements SourceMap, locating the line containing offset via
// binary search over the file's precomputed line-start offsets.
func (m *MemoryMap) BytePosition(id ID, offset int) (Position, bool) {
	info, ok := m.files[id]
	if !ok || offset < 0 || offset > len(info.Contents) {
		return Position{}, false
	}

	offsets := info.LineOffsets
	// Index of the last line-start offset that is <= offset.
	line := sort.Search(len(offsets), func(i int) bool { return offsets[i] > offset }) - 1
	if line < 0 {
		line = 0
	}

	col := offset - offsets[line]

	return Position{
		Line:          line,
		Column:        col,
		DisplayLine:   line + 1,
		DisplayColumn: col + 1,
	}, true
}

// lineOffsets computes the byte offset of the start of each line in
// contents; the first entry is always 0.
func lineOffsets(contents []byte) []int {
	offsets := make([]int, 1, 16)
	offsets[0] = 0

	for i, b := range contents {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return offsets
}
