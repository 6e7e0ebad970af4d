package change

// #region kind

// Kind distinguishes what sort of content a field carries.
type Kind string

const (
	// KindPage marks a modification to the primary content target.
	KindPage Kind = "page"
	// KindGeneric marks plain submitted text with no subject context.
	KindGeneric Kind = "generic"
)

// #endregion kind

// #region change

// Change is the semantic descriptor handed to the scoring engine alongside
// a field value. Stateless; recomputed per field per invocation.
type Change struct {
	Kind    Kind
	Subject string // set only for KindPage
	Text    string
}

// PageChange classifies a modification of the named subject's content.
func PageChange(subject, text string) Change {
	return Change{Kind: KindPage, Subject: subject, Text: text}
}

// Generic classifies raw submitted text with no subject context.
func Generic(text string) Change {
	return Change{Kind: KindGeneric, Text: text}
}

// #endregion change
