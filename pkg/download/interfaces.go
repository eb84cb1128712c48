package download

// ChunkSize is the number of bytes read from a response body per chunk.
const ChunkSize = 8 * 1024

// Progress receives a notification after each chunk written to disk.
// index counts chunks from zero, size is the byte count of the chunk.
type Progress interface {
	OnChunk(index int, size int)
}

// NoProgress discards every notification.
type NoProgress struct{}

// OnChunk implements Progress.
func (NoProgress) OnChunk(int, int) {}

// ProgressFunc adapts a function to Progress.
type ProgressFunc func(index int, size int)

// OnChunk implements Progress.
func (f ProgressFunc) OnChunk(index int, size int) { f(index, size) }

func orNoProgress(p Progress) Progress {
	if p == nil {
		return NoProgress{}
	}
	return p
}
