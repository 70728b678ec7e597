package entity

// Operator is whoever is allowed to drive the robot: the companion app or a
// caregiver's console.
type Operator struct {
	ID   string
	Name string
	Role string
}

const (
	RoleApp   = "app"
	RoleAdmin = "admin"
)
