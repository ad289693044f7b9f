package service

import "github.com/google/uuid"

// validID reports whether id is a canonical hyphenated UUID. Ids that are
// not are treated as unknown rather than sent to the database.
func validID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
