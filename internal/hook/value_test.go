package hook

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeValue(t *testing.T, s string) Value {
	t.Helper()
	var v Value
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestValue_AccessorsTolerateWrongShapes(t *testing.T) {
	t.Parallel()

	v := decodeValue(t, `{"name": "x", "count": 3, "edits": [{"a": 1}, {"a": 2}], "empty": ""}`)

	s, ok := v.Str("name")
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = v.Str("count")
	assert.False(t, ok, "number is not a string")

	_, ok = v.Str("missing")
	assert.False(t, ok)

	edits, ok := v.Field("edits").Array()
	assert.True(t, ok)
	assert.Len(t, edits, 2)

	_, ok = v.Field("name").Array()
	assert.False(t, ok)

	assert.True(t, v.Field("missing").Field("deeper").IsZero())
}

func TestValue_FirstPresent_StopsAtFirstPresentKey(t *testing.T) {
	t.Parallel()

	v := decodeValue(t, `{"symbol": "", "query": "Foo"}`)

	s, ok := v.FirstPresent("symbol", "query").Text()
	assert.True(t, ok)
	assert.Empty(t, s)

	s, ok = v.FirstPresent("missing", "query").Text()
	assert.True(t, ok)
	assert.Equal(t, "Foo", s)

	_, ok = decodeValue(t, `{"a": 5, "b": "later"}`).FirstPresent("a", "b").Text()
	assert.False(t, ok)

	assert.True(t, v.FirstPresent("missing").IsZero())
	assert.True(t, Value{}.FirstPresent("symbol").IsZero())
}

func TestValue_Text_IsNotAStringer(t *testing.T) {
	t.Parallel()

	v := decodeValue(t, `"hello"`)
	s, ok := v.Text()
	assert.True(t, ok)
	assert.Equal(t, "hello", s)

	_, isStringer := any(v).(fmt.Stringer)
	assert.False(t, isStringer)
}

func TestValue_OptStr_DistinguishesEmptyFromAbsent(t *testing.T) {
	t.Parallel()

	v := decodeValue(t, `{"old": ""}`)

	p := v.OptStr("old")
	require.NotNil(t, p)
	assert.Empty(t, *p)
	assert.Nil(t, v.OptStr("new"))
}

func TestValue_ZeroValueIsSafe(t *testing.T) {
	t.Parallel()

	var v Value
	assert.True(t, v.IsZero())
	_, ok := v.Text()
	assert.False(t, ok)
	_, ok = v.Array()
	assert.False(t, ok)
	assert.Nil(t, v.OptStr("x"))
}
