package esjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Literal(t *testing.T) {
	v, err := Parse(`42`)
	require.NoError(t, err)
	s, err := v.String()
	require.NoError(t, err)
	assert.Equal(t, "42", s)
}

func TestParse_String(t *testing.T) {
	v, err := Parse(`"hello world"`)
	require.NoError(t, err)
	s, err := v.String()
	require.NoError(t, err)
	assert.Equal(t, `"hello world"`, s)
}

func TestParse_EscapedQuoteInString(t *testing.T) {
	v, err := Parse(`"a \"quoted\" value"`)
	require.NoError(t, err)
	s, err := v.String()
	require.NoError(t, err)
	assert.Equal(t, `"a \"quoted\" value"`, s)
}

func TestParse_Array(t *testing.T) {
	v, err := Parse(`[1, 2, "three"]`)
	require.NoError(t, err)
	elems, err := v.Array()
	require.NoError(t, err)
	require.Len(t, elems, 3)
	s0, _ := elems[0].String()
	s2, _ := elems[2].String()
	assert.Equal(t, "1", s0)
	assert.Equal(t, `"three"`, s2)
}

func TestParse_Object(t *testing.T) {
	v, err := Parse(`{"a": 1, "b": {"c": 2}}`)
	require.NoError(t, err)
	b, err := v.Find(`"b"`)
	require.NoError(t, err)
	c, err := b.Find(`"c"`)
	require.NoError(t, err)
	s, err := c.String()
	require.NoError(t, err)
	assert.Equal(t, "2", s)
}

// Leading commas inside arrays/objects are tolerated by the lenient walker.
func TestParse_LeadingCommaIsLenient(t *testing.T) {
	v, err := Parse(`[,1,2]`)
	require.NoError(t, err)
	elems, err := v.Array()
	require.NoError(t, err)
	assert.Len(t, elems, 2)
}

func TestFind_MissingKey(t *testing.T) {
	v, err := Parse(`{"a": 1}`)
	require.NoError(t, err)
	_, err = v.Find(`"missing"`)
	assert.Error(t, err)
}

func TestArray_OnNonArray(t *testing.T) {
	v, err := Parse(`{"a":1}`)
	require.NoError(t, err)
	_, err = v.Array()
	assert.Error(t, err)
}

func TestHits(t *testing.T) {
	v, err := Parse(`{"hits":{"hits":[{"_source":{"id":1}},{"_source":{"id":2}}]}}`)
	require.NoError(t, err)
	hits, err := v.Hits()
	require.NoError(t, err)
	require.Len(t, hits, 2)
	src, err := hits[1].Find(`"_source"`)
	require.NoError(t, err)
	id, err := src.Find(`"id"`)
	require.NoError(t, err)
	s, err := id.String()
	require.NoError(t, err)
	assert.Equal(t, "2", s)
}

// Property 7: round-tripping any well-formed server response is lossless
// up to whitespace and element ordering within objects (preserved here
// since pairs are stored as an ordered sequence).
func TestRoundTrip(t *testing.T) {
	cases := []string{
		`{"hits":{"hits":[{"_source":{"id":1},"sort":[1]},{"_source":{"id":2},"sort":[2]}]},"count":2}`,
		`{"a":[1,2,3],"b":"x","c":{"d":null,"e":true}}`,
		`[]`,
		`{}`,
		`"just a string"`,
		`123`,
	}
	for _, in := range cases {
		v, err := Parse(in)
		require.NoError(t, err)
		assert.Equal(t, in, v.ToJSON())
	}
}
