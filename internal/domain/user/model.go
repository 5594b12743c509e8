package user

// User is a registered account. The password is kept and compared as plain
// text; hashing credentials is outside this service's scope.
type User struct {
	Username string
	Password string
}
