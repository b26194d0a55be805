package service

// Caller is the authenticated identity a request acts as. It is
// resolved by the auth middleware before the services run; the services
// trust it.
type Caller struct {
	ID     string
	Name   string
	Email  string
	Avatar string
	Role   string
}
