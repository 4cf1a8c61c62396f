package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID   string
	Username string
	Role     string
}

func (p *Principal) HasRole(role string) bool { return p != nil && p.Role == role }
