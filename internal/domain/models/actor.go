package model

// Actor is the authentication context of a request. The zero value is an
// anonymous visitor.
type Actor struct {
	UserID   int64
	Username string
}

func Anonymous() Actor {
	return Actor{}
}

func ActorFor(user *User) Actor {
	return Actor{UserID: user.ID, Username: user.Username}
}

func (a Actor) IsAuthenticated() bool {
	return a.UserID != 0
}

// Authored is implemented by entities that have a single owning user.
type Authored interface {
	GetAuthorID() int64
}
