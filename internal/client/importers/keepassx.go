package importers

// KeePassX / KeePassXC export:
// Group,Title,Username,Password,URL,Notes,TOTP
//
// Group paths are kept verbatim as folder names.
var keepassxMapping = loginMapping{
	name:     "Title",
	uri:      []string{"URL"},
	username: []string{"Username"},
	password: "Password",
	notes:    "Notes",
	totp:     "TOTP",
	folder:   "Group",
}
