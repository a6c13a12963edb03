package users

// Name is the structured display name of a directory user.
type Name struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// Geolocation is the coordinate pair attached to an address.
type Geolocation struct {
	Lat  string `json:"lat"`
	Long string `json:"long"`
}

// Address is the postal address of a directory user.
type Address struct {
	City        string       `json:"city"`
	Street      string       `json:"street"`
	Number      int          `json:"number"`
	Zipcode     string       `json:"zipcode"`
	Geolocation *Geolocation `json:"geolocation,omitempty"`
}

// User is an entry of the remote user directory. It is read-only once fetched.
type User struct {
	ID       int      `json:"id"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	Name     *Name    `json:"name,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Address  *Address `json:"address,omitempty"`
}

// Credentials is the email/password pair entered at login. Never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
