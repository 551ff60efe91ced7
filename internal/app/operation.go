package app

// Operation statuses written to the journal.
const (
	StatusSuccess = "success"
	StatusPartial = "partial" // some paths failed
	StatusError   = "error"   // the operation itself failed
)

// Operation tracks a CLI operation that may mutate the filesystem.
// Operations are created in memory with ID=0. Only mutating commands
// persist them (giving them an auto-increment ID from the journal).
type Operation struct {
	ID        int64
	Operation string
	Target    string
	Status    string
}

// NewOperation creates a new in-memory operation.
func NewOperation(operation, target string) *Operation {
	return &Operation{
		Operation: operation,
		Target:    target,
		Status:    StatusSuccess,
	}
}

// Persisted returns true if this operation has been saved to the journal.
func (op *Operation) Persisted() bool {
	return op.ID != 0
}

// Degrade lowers the status to status if it is worse than the current one.
// Statuses only get worse: success, then partial, then error.
func (op *Operation) Degrade(status string) {
	if statusRank(status) > statusRank(op.Status) {
		op.Status = status
	}
}

func statusRank(s string) int {
	switch s {
	case StatusPartial:
		return 1
	case StatusError:
		return 2
	default:
		return 0
	}
}
