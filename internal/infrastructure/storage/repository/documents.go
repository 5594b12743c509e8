// Package repository maps the domain repositories onto named documents of
// a storage.Store.
package repository

const (
	usersDocument    = "users"
	roomsDocument    = "rooms"
	sessionsDocument = "sessions"
	recordsPrefix    = "records."
)

// Documents lists the fixed documents the server verifies at startup.
func Documents() []string {
	return []string{usersDocument, roomsDocument, sessionsDocument}
}

func recordsDocument(owner string) string {
	return recordsPrefix + owner
}
