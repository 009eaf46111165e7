package dna

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint returns the hex-encoded SHA-256 digest of the concatenated rows.
func Fingerprint(grid Grid) string {
	sum := sha256.Sum256([]byte(strings.Join(grid, "")))
	return hex.EncodeToString(sum[:])
}

func CountBases(grid Grid) BaseCounts {
	var counts BaseCounts
	for _, row := range grid {
		for i := 0; i < len(row); i++ {
			switch row[i] {
			case 'A':
				counts.A++
			case 'C':
				counts.C++
			case 'G':
				counts.G++
			case 'T':
				counts.T++
			}
		}
	}
	return counts
}
