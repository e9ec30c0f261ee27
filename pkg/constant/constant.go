package constant

const (
	DefaultTokenType = "bearer"

	// CurrentUserKey is the fiber Locals key holding the authenticated *domain.User.
	CurrentUserKey = "currentUser"

	DefaultListSkip  = 0
	DefaultListLimit = 100
	MaxListLimit     = 100
)
