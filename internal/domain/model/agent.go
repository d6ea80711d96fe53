//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// Agent is a user delegated limited management rights over a business.
type Agent struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// FullName joins first and last name, tolerating either being empty.
func (a Agent) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	default:
		return a.FirstName + " " + a.LastName
	}
}
