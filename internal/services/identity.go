package services

import (
	"github.com/google/uuid"

	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
)

// ResolveOwner derives the cart owner key for a request: the authenticated
// user wins, otherwise the anonymous session token. The token is the durable
// sid cookie, so the same browser keeps resolving to the same cart until the
// cookie is cleared or the user logs in (at which point the carts merge).
func ResolveOwner(u *domain.User, token string) domain.OwnerKey {
	if u != nil {
		return domain.UserOwner(u.ID)
	}
	return domain.TokenOwner(token)
}

// NewOwnerToken mints the anonymous session token persisted client-side.
func NewOwnerToken() string { return uuid.NewString() }
