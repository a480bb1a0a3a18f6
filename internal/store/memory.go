package store

import "context"

// MemoryBackend keeps the document in process memory. Used when durable
// storage is unavailable, e.g. a read-only deployment target; state is lost on
// restart and callers must not depend on durability.
type MemoryBackend struct {
	doc Document
}

func NewMemoryBackend() *MemoryBackend {
	doc := Document{}
	doc.Normalize()
	return &MemoryBackend{doc: doc}
}

func (b *MemoryBackend) Load(ctx context.Context) (Document, error) {
	return b.doc.Clone(), nil
}

func (b *MemoryBackend) Save(ctx context.Context, doc Document) error {
	doc.Normalize()
	b.doc = doc.Clone()
	return nil
}
