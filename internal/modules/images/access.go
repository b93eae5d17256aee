package images

import "photoshare/internal/domain"

// Actor is the authenticated caller as seen by the access policy: just an
// identity and a role, both taken from the verified token.
type Actor struct {
	ID   int64
	Role domain.UserRole
}

// Operation classifies what the actor wants to do with an image resource.
type Operation string

const (
	OpRead           Operation = "read"
	OpUpdate         Operation = "update"
	OpDelete         Operation = "delete"
	OpTransform      Operation = "transform"
	OpListUserImages Operation = "list_user_images"
)

// AccessPolicy is the single authorization entry point: every image
// operation funnels through CanAct, there are no side-channel role checks.
type AccessPolicy struct{}

// CanAct reports whether the actor may perform op on the image. For
// OpListUserImages the decision is role-only and img may be nil.
//
// Rules: admins may do anything; moderators may perform read-class
// operations on any image; everyone else only acts on images they own.
func (AccessPolicy) CanAct(actor Actor, img *domain.Image, op Operation) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}
	if op == OpListUserImages {
		return actor.Role == domain.RoleModerator
	}
	if actor.Role == domain.RoleModerator && op == OpRead {
		return true
	}
	return img != nil && img.UserID == actor.ID
}
