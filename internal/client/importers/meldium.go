package importers

// Meldium export: DisplayName,Notes,Password,Url,UserName
var meldiumMapping = loginMapping{
	name:     "DisplayName",
	uri:      []string{"Url"},
	username: []string{"UserName"},
	password: "Password",
	notes:    "Notes",
}
