package codec

// Event is a decoded ledger event emitted by a confirmed transaction
type Event struct {
	// Name is the event name from the schema
	Name string
	// Contract is the schema name of the emitting contract
	Contract string
	// LogIndex is the position of the log in the block
	LogIndex uint
	// Args are the decoded arguments in declaration order
	Args []Field
}

// Arg returns the argument at the given position
func (e Event) Arg(index int) (Value, bool) {
	if index < 0 || index >= len(e.Args) {
		return Value{}, false
	}
	return e.Args[index].Value, true
}
