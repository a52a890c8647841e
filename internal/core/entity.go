package core

// EntityID is a non-owning handle to an entity in the scene arena.
// The zero value refers to no entity.
type EntityID uint32

// None is the empty handle.
const None EntityID = 0

// Kind tags the variant of an entity so collision callbacks can dispatch
// with a switch instead of inspecting concrete types.
type Kind int

const (
	KindNone Kind = iota
	KindPlayer
	KindEnemy
	KindItem
	KindProjectile
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindItem:
		return "item"
	case KindProjectile:
		return "projectile"
	default:
		return "none"
	}
}
