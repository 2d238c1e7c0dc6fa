package contacts

// Profile describes the column layout of a contacts CSV export.
// Header names are matched case-insensitively.
type Profile struct {
	Name string
	// NameCols are joined with a space to form the client name.
	NameCols []string
	// PhoneCols are tried in order; the first non-empty value is used.
	PhoneCols []string
	EmailCol  string
	NotesCol  string
}

// matches reports whether every name column and at least one phone column
// is present.
func (p Profile) matches(cols colIndex) bool {
	for _, name := range p.NameCols {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	for _, name := range p.PhoneCols {
		if _, ok := cols[name]; ok {
			return true
		}
	}

	return false
}

// profiles is the ordered list of export formats tried during detection.
// Outlook comes first since its name is split across two columns.
var profiles = []Profile{
	{
		Name:      "outlook",
		NameCols:  []string{"first name", "last name"},
		PhoneCols: []string{"mobile phone", "primary phone", "home phone", "business phone"},
		EmailCol:  "e-mail address",
		NotesCol:  "notes",
	},
	{
		Name:      "google",
		NameCols:  []string{"name"},
		PhoneCols: []string{"phone 1 - value", "phone 2 - value"},
		EmailCol:  "e-mail 1 - value",
		NotesCol:  "notes",
	},
	{
		Name:      "agenda",
		NameCols:  []string{"nome"},
		PhoneCols: []string{"celular", "telefone", "whatsapp", "fone"},
		EmailCol:  "e-mail",
		NotesCol:  "observações",
	},
	{
		Name:      "generic",
		NameCols:  []string{"name"},
		PhoneCols: []string{"phone", "mobile", "telephone"},
		EmailCol:  "email",
		NotesCol:  "notes",
	},
}
