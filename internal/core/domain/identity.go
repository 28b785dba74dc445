package domain

// Identity is the verified caller resolved by the authenticator: who is
// acting and with which roles. Every service operation receives it
// explicitly; nothing is read from ambient request state.
type Identity struct {
	UserID   string
	Username string
	Roles    []string
}

// HasRole reports whether the identity carries the given role.
func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RequireRole is the role check: the caller must hold role, otherwise
// ErrForbidden.
func RequireRole(id Identity, role string) error {
	if !id.HasRole(role) {
		return ErrForbidden
	}
	return nil
}

// RequireOwner is the ownership check: the caller's user id must match the
// card's owner. It is evaluated after the card was loaded, so a missing card
// surfaces as ErrCardNotFound before any authorization decision.
func RequireOwner(id Identity, card *Card) error {
	if card.OwnerID != id.UserID {
		return ErrNotCardOwner
	}
	return nil
}
