package domain

// Actor is the authenticated caller of a mutating or read operation.
// Identity and authorization live in an external service; this core only
// receives the resolved user id and the privileged flag.
type Actor struct {
	UserID  int64
	IsAdmin bool
}

// CanAccess returns true if the actor may read or mutate data owned by ownerID
func (a Actor) CanAccess(ownerID int64) bool {
	return a.IsAdmin || a.UserID == ownerID
}
