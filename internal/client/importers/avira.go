package importers

// Avira Password Manager export:
// name,website,username,secondary_username,password
var aviraMapping = loginMapping{
	name:        "name",
	nameFromURL: true,
	uri:         []string{"website"},
	username:    []string{"username", "secondary_username"},
	password:    "password",
}
