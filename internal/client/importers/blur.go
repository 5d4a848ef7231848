package importers

// Abine Blur export: domain,email,username,password,label. Blur writes the
// literal "null" for a missing label.
var blurMapping = loginMapping{
	name:        "label",
	nameFromURL: true,
	uri:         []string{"domain"},
	username:    []string{"email", "username"},
	password:    "password",
	nullable:    []string{"label"},
}
