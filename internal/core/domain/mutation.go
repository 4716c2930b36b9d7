package domain

import "strings"

// MutationOp is the kind of write a mutation performs.
type MutationOp string

// Mutation operations.
const (
	OpCreate MutationOp = "create"
	OpUpdate MutationOp = "update"
	OpDelete MutationOp = "delete"
)

// MutationIntent describes a pending write. It lives only for the
// duration of the mutation and is reported when the write fails.
type MutationIntent struct {
	Op       MutationOp
	Resource string
	TargetID string
	Payload  any
}

// String describes the intent for a failure message, e.g. "delete task 7".
func (i MutationIntent) String() string {
	resource := strings.TrimSuffix(i.Resource, "s")
	if i.TargetID == "" {
		return string(i.Op) + " " + resource
	}
	return string(i.Op) + " " + resource + " " + i.TargetID
}
