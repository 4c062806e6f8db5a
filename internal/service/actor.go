package service

// Actor is the request-scoped identity attributed to a mutation. It is
// built by the auth middleware from the JWT claims and passed explicitly
// into every processor call; nothing reads it from ambient state.
type Actor struct {
	ID    string
	Name  string
	Email string
}

// System is the actor used by seeding and maintenance jobs.
var System = Actor{ID: "system", Name: "System"}
