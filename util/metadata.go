package util

import (
	"encoding/json"
	"io"

	"github.com/dendrascience/filetree/version"
)

// TreeInfo describes the shape of an encoded tree. It is a report only; no
// shape metadata is ever stored next to a tree.
type TreeInfo struct {
	FiletreeVersion string `json:"filetree_version"`
	Tag             string `json:"tag"`
	Width           int    `json:"width"`
	Nodes           int    `json:"nodes"`
	ChainDepths     []int  `json:"chain_depths"`
	PayloadSize     int64  `json:"payload_size"`
	LongestName     int    `json:"longest_name"`
}

// GetVersion returns the current filetree version string.
func GetVersion() string {
	return version.GetVersion()
}

// MaxDepth returns the depth of the longest chain.
func (t TreeInfo) MaxDepth() int {
	m := 0
	for _, d := range t.ChainDepths {
		m = max(m, d)
	}
	return m
}

// Encode writes t as a single JSON document.
func (t TreeInfo) Encode(w io.Writer) error {
	je := json.NewEncoder(w)
	je.SetIndent("", "  ")
	return je.Encode(t)
}
