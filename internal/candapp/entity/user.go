package entity

// Roles of the static role table.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
	RoleInvitado = "invitado"
)

// User 用户实体. Users live in a static in-process table; there is no user
// persistence (accepted limitation carried over from the source system).
type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
	Role     string `json:"role"`
}

// DefaultUsers is the demo role table the service starts with.
func DefaultUsers() []User {
	return []User{
		{Username: "admin", Password: "admin", Role: RoleAdmin},
		{Username: "admin2", Password: "admin2", Role: RoleAdmin},
		{Username: "operador", Password: "123", Role: RoleOperador},
		{Username: "invitado", Password: "guest", Role: RoleInvitado},
	}
}
