package domain

// Session is the client-held proof of authentication. A missing token or
// user id means the visitor is anonymous, which gates cart mutation and
// checkout.
type Session struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
}

func (s Session) Anonymous() bool {
	return s.Token == "" || s.UserID == 0
}
