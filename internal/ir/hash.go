package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefix for segment-list digests.
// Version suffix enables future algorithm migration.
const DomainSegments = "gaq/segments/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SegmentsDigest computes a content digest over one or more segment lists.
// The flash store uses it to skip rewriting unchanged entries, so strings
// are hashed byte for byte and differ when only their normalization does.
func SegmentsDigest(lists ...[]Segment) (string, error) {
	all := make([]any, len(lists))
	for i, l := range lists {
		if l == nil {
			l = []Segment{}
		}
		all[i] = l
	}
	exact, err := MarshalExact(all)
	if err != nil {
		return "", fmt.Errorf("SegmentsDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSegments, exact), nil
}
