package users

// FindByCredentials returns the first user in known whose email and password
// both match creds exactly, or nil. Comparison is case-sensitive plaintext;
// when several users share the same pair, list order decides.
func FindByCredentials(creds *Credentials, known []User) *User {
	if creds == nil || creds.Email == "" || creds.Password == "" {
		return nil
	}
	for i := range known {
		if known[i].Email == creds.Email && known[i].Password == creds.Password {
			match := known[i]
			return &match
		}
	}
	return nil
}
