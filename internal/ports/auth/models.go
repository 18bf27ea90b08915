package auth

// Claims is the information extracted from a verified token. Username is
// what gets recorded as the acting technician on maintenance events.
type Claims struct {
	UserID   string
	Username string
}
