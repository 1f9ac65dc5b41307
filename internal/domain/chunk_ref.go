package domain

// ChunkRef is a reference from a sub-booking to its parent chunk.
// It is either unresolved (only the id is known) or resolved (the full record is attached).
type ChunkRef struct {
	id    int64
	chunk *Chunk
}

// Unresolved creates a reference that carries only the chunk id
func Unresolved(id int64) ChunkRef {
	return ChunkRef{id: id}
}

// Resolved creates a reference carrying the full chunk record
func Resolved(chunk *Chunk) ChunkRef {
	if chunk == nil {
		return ChunkRef{}
	}
	return ChunkRef{id: chunk.ID, chunk: chunk}
}

// ID returns the chunk id for both forms
func (r ChunkRef) ID() int64 {
	return r.id
}

// Chunk returns the attached record, ok=false when the reference is unresolved
func (r ChunkRef) Chunk() (*Chunk, bool) {
	return r.chunk, r.chunk != nil
}

// IsResolved returns true if the full record is attached
func (r ChunkRef) IsResolved() bool {
	return r.chunk != nil
}

// Resolve attaches the record when its id matches the reference
func (r ChunkRef) Resolve(chunk *Chunk) ChunkRef {
	if chunk == nil || chunk.ID != r.id {
		return r
	}
	return Resolved(chunk)
}
