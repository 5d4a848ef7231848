package importers

// Firefox logins export. Newer versions write url, older ones hostname; the
// remaining columns (httpRealm, guid, timestamps) become extension fields.
var firefoxMapping = loginMapping{
	nameFromURL: true,
	uri:         []string{"url", "hostname"},
	username:    []string{"username"},
	password:    "password",
}
