package models

type ctxKey string

const UserContextKey ctxKey = "user"

type Role string

const (
	RoleKebun  Role = "KEBUN"
	RoleTeknis Role = "TEKNIS"
	RoleAdmin  Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleKebun, RoleTeknis, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID       string `json:"id"`
	Login    string `json:"login"`
	PassHash []byte `json:"pass_hash"`
	Role     Role   `json:"role"`
}
