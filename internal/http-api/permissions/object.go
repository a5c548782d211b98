package permissions

// Authored is any object owned by an author for mutation purposes.
type Authored interface {
	AuthorID() string
}

// CanTouchObject is the object tier for reviews and comments. Safe reads are
// always allowed. An authenticated requester passes when they are an admin,
// a moderator, or the object's author. Anonymous requesters only pass for
// safe reads.
func CanTouchObject(r Requester, method string, obj Authored) Decision {
	if SafeMethod(method) {
		return Allow()
	}
	if !r.Authenticated {
		return Deny("authentication required")
	}
	if r.IsAdmin() || r.IsModerator() || obj.AuthorID() == r.ID {
		return Allow()
	}
	return Deny("not the author of this object")
}
