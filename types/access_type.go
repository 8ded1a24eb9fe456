package types

// AccessType classifies why a frame was touched, so the LRU-K replacer
// can tell a sequential scan apart from a point lookup.
type AccessType int

const (
	// AccessUnknown is the default access type for callers that don't
	// care to distinguish; it is recorded like a normal access.
	AccessUnknown AccessType = iota
	// AccessLookup is a regular point access.
	AccessLookup
	// AccessScan must not pollute the replacer's history: a Scan access
	// is never recorded.
	AccessScan
	// AccessIndex is an index-structure access; recorded like a lookup.
	AccessIndex
)
