package model

// SprintState is the lifecycle state of a sprint.
type SprintState string

const (
	SprintActive SprintState = "active"
	SprintFuture SprintState = "future"
	SprintClosed SprintState = "closed"
)

// Sprint is one entry of a board's sprint catalog.
type Sprint struct {
	ID    int         `json:"id"`
	Name  string      `json:"name"`
	State SprintState `json:"state"`
}
