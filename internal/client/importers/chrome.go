package importers

// Chromium password export: name,url,username,password,note
var chromeMapping = loginMapping{
	name:        "name",
	nameFromURL: true,
	uri:         []string{"url"},
	username:    []string{"username"},
	password:    "password",
	notes:       "note",
}
