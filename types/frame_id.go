package types

// FrameID is the index of an in-memory frame slot, in [0, N) where N is
// the pool's fixed capacity.
type FrameID uint32
