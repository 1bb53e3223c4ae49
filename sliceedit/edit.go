// Package sliceedit provides buffered editing of byte slices on top of
// rsc.io/edit. Edits are queued against positions in the original data and
// applied in a single pass, so stripping many small spans from a large
// document needs only one allocation.
package sliceedit

import (
	"bytes"
	"regexp"

	"rsc.io/edit"
)

// A Buffer is a queue of edits to apply to a given byte slice.
type Buffer struct {
	ed  edit.Buffer
	buf []byte
}

// NewBuffer returns a new buffer to accumulate changes to an initial data
// slice. The buffer keeps a reference to the data, so the caller must not
// modify it until the Buffer is done being used.
func NewBuffer(buf []byte) *Buffer {
	b := &Buffer{}
	b.buf = buf // kept only for our own searches, never modified
	b.ed = *edit.NewBuffer(buf)
	return b
}

// FindAll finds the offsets of all non-overlapping instances of item in buf.
func FindAll(buf []byte, item string) []int {
	found := []int{}

	if len(item) == 0 {
		return found
	}

	realOffset := 0

	for {
		i := bytes.Index(buf, []byte(item))
		if i == -1 {
			return found
		}
		found = append(found, i+realOffset)
		buf = buf[i+len(item):]
		realOffset = realOffset + i + len(item)
	}
}

// DeleteAllString queues the deletion of every occurrence of s.
func (b *Buffer) DeleteAllString(s string) {
	hits := FindAll(b.buf, s)
	for _, hit := range hits {
		b.ed.Delete(hit, hit+len(s))
	}
}

// DeleteAllRegexp queues the deletion of every non-overlapping match of re.
func (b *Buffer) DeleteAllRegexp(re *regexp.Regexp) {
	for _, loc := range re.FindAllIndex(b.buf, -1) {
		b.ed.Delete(loc[0], loc[1])
	}
}

// ReplaceAllString queues the replacement of every occurrence of old with new.
func (b *Buffer) ReplaceAllString(old string, new string) {
	hits := FindAll(b.buf, old)
	for _, hit := range hits {
		b.ed.Replace(hit, hit+len(old), new)
	}
}

// Bytes returns a new byte slice containing the original data with the
// queued edits applied.
func (b *Buffer) Bytes() []byte {
	return b.ed.Bytes()
}

// String returns a string containing the original data with the queued
// edits applied.
func (b *Buffer) String() string {
	return string(b.ed.Bytes())
}
