// Package ingest implements the job-posting ingestion pipeline: validation,
// fingerprinting, region resolution, dedup and the store writes behind the
// /ingest-single and /ingest-batch endpoints.
package ingest

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// fingerprintSep joins the normalized fields in fixed order.
const fingerprintSep = "|"

// Fingerprint derives the content dedup key for a posting: each of title,
// company and locality is trimmed and lower-cased, the three are joined with
// "|" in that order, and the MD5 of the UTF-8 bytes is returned as lowercase
// hex.
//
// The same normalized triple always yields the same key, on any platform.
// Hash collisions are not handled — two colliding postings are treated as a
// legitimate duplicate.
func Fingerprint(title, company, locality string) string {
	normalized := strings.Join([]string{
		normalizeField(title),
		normalizeField(company),
		normalizeField(locality),
	}, fingerprintSep)

	sum := md5.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

func normalizeField(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
