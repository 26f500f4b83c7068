// Package ir provides the wire-level value types shared by every gaq package.
//
// This package contains the sealed Value interface, the Segment shape used on
// the wire and in the flash store, and canonical JSON serialization. It imports
// nothing internal; all other internal packages import ir.
//
// Key design constraints:
//   - NO float types anywhere - numbers are int64 (the Number signature type is unimplemented)
//   - A Segment's first element is always a String token
//   - Canonical JSON is used for storage and digests; MarshalPayload renders the
//     HTML-escaped payload handed to the page
package ir
