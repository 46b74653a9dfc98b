package lz4block

import "github.com/coreframe/codec/internal/hash"

// DictContext is a prepared external dictionary: a detached dictionary
// buffer identified by content hash rather than pointer, so an
// encoder/decoder pair that
// crosses process boundaries can detect a caller passing the wrong
// dictionary instead of silently matching against it.
type DictContext struct {
	bytes []byte
	id    uint64
}

// NewDictContext prepares dict for reuse across many blocks.
func NewDictContext(dict []byte) *DictContext {
	return &DictContext{bytes: dict, id: hash.DictContextID(dict)}
}

// Bytes returns the underlying dictionary buffer.
func (d *DictContext) Bytes() []byte {
	if d == nil {
		return nil
	}

	return d.bytes
}

// ID returns the dictionary's content-hash identity.
func (d *DictContext) ID() uint64 {
	if d == nil {
		return 0
	}

	return d.id
}

// Matches reports whether other is the same dictionary content this
// context was prepared from, without re-comparing the full buffers.
func (d *DictContext) Matches(other *DictContext) bool {
	if d == nil || other == nil {
		return d == other
	}

	return d.id == other.id
}
