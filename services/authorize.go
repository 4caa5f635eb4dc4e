package services

// authorizeOwner is the single ownership policy applied by every
// mutating operation. Each prospect and follow-up is exclusively owned
// by the salesperson who created it; anyone else gets the same opaque
// AuthorizationError.
func authorizeOwner(ownerID, actorID uint) error {
	if ownerID != actorID {
		return &AuthorizationError{}
	}
	return nil
}
