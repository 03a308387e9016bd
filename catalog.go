package gettext

func (c *Catalog) findMsg(msgid string, usePlural bool, n uint32) (msgstr string, ok bool) {
	entry, ok := c.Lookup(Normalize(msgid))
	if !ok {
		return "", false
	}
	switch value := entry.Value.(type) {
	case Invariant:
		if usePlural || value == "" {
			return "", false
		}
		return string(value), true
	case Plural:
		if !usePlural {
			return "", false
		}
		idx := c.plurals.Index(n)
		if idx < 0 || idx >= len(value.Variants) || value.Variants[idx] == "" {
			return "", false
		}
		return value.Variants[idx], true
	}
	return "", false
}

// Gettext returns the translation of msgid, or msgid itself if the catalog
// has no translation for it.
func (c *Catalog) Gettext(msgid string) string {
	if msgstr, ok := c.findMsg(msgid, false, 0); ok {
		return msgstr
	}
	// Fallback to original message
	return msgid
}

// NGettext returns the plural variant of msgid matching n.
func (c *Catalog) NGettext(msgid, msgidPlural string, n uint32) string {
	if msgstr, ok := c.findMsg(msgid, true, n); ok {
		return msgstr
	}
	// Fallback to original message based on Germanic plural rule.
	if n == 1 {
		return msgid
	}
	return msgidPlural
}
