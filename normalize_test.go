package gettext

import (
	. "gopkg.in/check.v1"
)

var _ = Suite(normalizeSuite{})

type normalizeSuite struct{}

func (normalizeSuite) TestNormalize(c *C) {
	for _, test := range []struct {
		raw, expected string
	}{
		{"don’t", "don't"},
		{"don't", "don't"},
		{"%(count) files", "% files"},
		{"Hello %(name)s", "Hello %s"},
		{"%(a)s and %(b)d", "%s and %d"},
		{"%(a)(b) x", "% x"},
		{"100% sure", "100% sure"},
		{"%(unterminated", "%(unterminated"},
		{"%() empty", "% empty"},
		{"It’s %(user)’s", "It's %'s"},
		{"", ""},
	} {
		c.Check(Normalize(test.raw), Equals, test.expected, Commentf("raw: %q", test.raw))
	}
}

func (normalizeSuite) TestNormalizeIdempotent(c *C) {
	for _, raw := range []string{
		"don’t",
		"%(a)(b)(c)",
		"%(%(a))",
		"%%(a)",
		"(%(x))(y)",
		"‘quoted’ %(n) ’",
		"plain",
	} {
		once := Normalize(raw)
		c.Check(Normalize(once), Equals, once, Commentf("raw: %q", raw))
	}
}

func (normalizeSuite) TestNormalizerInstance(c *C) {
	n := NewNormalizer()
	c.Check(n.Normalize("Can’t open %(path)"), Equals, Normalize("Can't open %(file)"))
}
