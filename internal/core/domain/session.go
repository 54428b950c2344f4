package domain

// Session is the token/user pair representing the current authenticated
// actor. Token is an opaque bearer credential issued by the remote gateway;
// the pair is only ever set or cleared together.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Complete reports whether both halves of the pair are present. A session
// restored from persistence with only one half is invalid and must be
// discarded.
func (s Session) Complete() bool {
	return s.Token != "" && s.User != nil
}

// Empty reports whether neither half is present.
func (s Session) Empty() bool {
	return s.Token == "" && s.User == nil
}
