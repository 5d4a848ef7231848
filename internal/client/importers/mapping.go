package importers

import (
	"strings"

	"github.com/dmitrijs2005/vaultcore/internal/client/models"
	"github.com/dmitrijs2005/vaultcore/internal/client/tabular"
	"github.com/dmitrijs2005/vaultcore/internal/common"
)

// nullSentinel is the literal some vendors write for a missing value.
const nullSentinel = "null"

// loginMapping describes how one vendor's columns land on a login cipher.
// Two-element column lists are (primary, secondary): the secondary is used
// only when the primary is blank, otherwise it stays an extension field.
// Every column not consumed here ends up in Cipher.Fields in column order.
type loginMapping struct {
	name        string
	nameFromURL bool
	uri         []string
	username    []string
	password    string
	notes       string
	totp        string
	folder      string
	// nullable columns treat nullSentinel as absent.
	nullable []string
}

// Parse implements Importer.
func (m loginMapping) Parse(data string) Result {
	records, err := tabular.Parse(data, true)
	if err != nil {
		return Failure()
	}

	b := NewBuilder()
	for _, rec := range records {
		c, folder := m.cipher(rec)
		i := b.AddCipher(c)
		if folder != "" {
			b.AssignFolder(i, b.AddFolder(folder))
		}
	}
	return b.Finalize(true)
}

func (m loginMapping) columns() map[string]bool {
	cols := map[string]bool{}
	for _, c := range []string{m.name, m.password, m.notes, m.totp, m.folder} {
		if c != "" {
			cols[c] = true
		}
	}
	for _, c := range m.uri {
		cols[c] = true
	}
	for _, c := range m.username {
		cols[c] = true
	}
	return cols
}

func (m loginMapping) absent(col, v string) bool {
	if v != nullSentinel {
		return false
	}
	for _, c := range m.nullable {
		if c == col {
			return true
		}
	}
	return false
}

// row tracks which mapped columns of one record became canonical values.
type row struct {
	m        loginMapping
	rec      tabular.Record
	consumed map[string]bool
}

func (x *row) value(col string) string {
	if col == "" {
		return ""
	}
	v, ok := x.rec.Get(col)
	if !ok || x.m.absent(col, v) || IsNullOrWhitespace(v) {
		return ""
	}
	return v
}

func (x *row) use(col string) string {
	v := x.value(col)
	if v != "" {
		x.consumed[col] = true
	}
	return v
}

func (x *row) release(cols []string) {
	for _, col := range cols {
		delete(x.consumed, col)
	}
}

func (x *row) pick(cols []string) string {
	switch len(cols) {
	case 0:
		return ""
	case 1:
		return x.use(cols[0])
	}
	if x.value(cols[0]) == "" && x.value(cols[1]) != "" {
		return x.use(cols[1])
	}
	return x.use(cols[0])
}

func (m loginMapping) cipher(rec tabular.Record) (models.Cipher, string) {
	x := &row{m: m, rec: rec, consumed: map[string]bool{}}
	c := models.NewLoginCipher()

	if raw := x.pick(m.uri); raw != "" {
		c.Login.URIs = MakeURIs(raw)
		if len(c.Login.URIs) == 0 {
			// separators only; the cell falls through to the extension fields
			x.release(m.uri)
		}
	}

	name := x.use(m.name)
	if name == "" && m.nameFromURL {
		name = NameFromURL(strings.Join(c.Login.URIs, "\n"))
	}
	c.Name = GetValueOrDefault(name, common.DefaultCipherName)

	c.Login.Username = x.pick(m.username)
	c.Login.Password = x.use(m.password)
	c.Login.TOTP = x.use(m.totp)
	c.Notes = x.use(m.notes)
	folder := x.use(m.folder)

	known := m.columns()
	for i, cell := range rec.Cells {
		if known[cell.Key] && !rec.Shadowed(i) {
			if x.consumed[cell.Key] || cell.Value == "" || m.absent(cell.Key, cell.Value) {
				continue
			}
		}
		ProcessKVP(&c, cell.Key, cell.Value, true)
	}
	return c, folder
}
