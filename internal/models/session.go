package models

// Session binds an issued bearer token to the user who logged in with it.
type Session struct {
	ID     int64  `json:"id"`
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}
