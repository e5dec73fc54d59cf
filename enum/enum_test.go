package enum_test

import (
	"errors"
	"testing"

	"github.com/rskv-p/stuff/constant"
	"github.com/rskv-p/stuff/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// simple enumeration backed by a string raw value
type test1 int

const (
	option1 test1 = iota
	option2
	option3
)

var test1Names = [...]string{"option1", "option2", "option3"}

func (test1) Cases() []test1 { return []test1{option1, option2, option3, option2} }

func (t test1) String() string { return test1Names[t] }

func (t test1) RawValue() any { return t.String() }

func (t test1) Tag() (string, []any) { return t.String(), nil }

// tagged union with payloads
type test2 interface {
	enum.Tagged
	isTest2()
}

type option4 struct{ Text string }
type option5 struct{ N int }
type option6 struct {
	N    int
	Text string
}

func (o option4) Tag() (string, []any) { return "option4", []any{o.Text} }
func (o option5) Tag() (string, []any) { return "option5", []any{o.N} }
func (o option6) Tag() (string, []any) { return "option6", []any{o.N, o.Text} }

func (option4) isTest2() {}
func (option5) isTest2() {}
func (option6) isTest2() {}

func TestAssociated_SinglePayload(t *testing.T) {
	v, err := enum.Associated(option4{"test"})
	require.NoError(t, err)
	assert.Equal(t, "option4", v.Label)
	assert.Equal(t, "test", v.Payload)
	assert.Equal(t, []any{"test"}, v.Components)
	assert.True(t, v.HasPayload())
}

func TestAssociated_TuplePayload(t *testing.T) {
	v, err := enum.Associated(option6{4, "more"})
	require.NoError(t, err)
	assert.Equal(t, "option6", v.Label)
	assert.Equal(t, enum.Tuple{4, "more"}, v.Payload)
	assert.Equal(t, []any{4, "more"}, v.Components)
	assert.Equal(t, `(4, "more")`, v.Payload.(enum.Tuple).String())
}

func TestAssociated_NoPayload(t *testing.T) {
	v, err := enum.Associated(option2)
	assert.True(t, errors.Is(err, constant.ErrNoPayload))
	assert.Equal(t, "option2", v.Label)
	assert.Nil(t, v.Payload)
	assert.False(t, v.HasPayload())
}

func TestAssociated_NotEnum(t *testing.T) {
	v, err := enum.Associated(42)
	assert.True(t, errors.Is(err, constant.ErrNotEnum))
	assert.Equal(t, "42", v.Label)
	assert.Nil(t, v.Payload)
}

func TestAllCases(t *testing.T) {
	assert.Equal(t, []test1{option1, option2, option3}, enum.AllCases[test1]())
}

func TestRawValue(t *testing.T) {
	v, err := enum.RawValue(option2)
	require.NoError(t, err)
	assert.Equal(t, "option2", v)

	_, err = enum.RawValue(option4{"x"})
	assert.True(t, errors.Is(err, constant.ErrNoRawValue))
}

func TestQueryString(t *testing.T) {
	cases := []test2{option4{"test"}, option5{3}, option6{4, "more"}}
	assert.Equal(t, `option4=test,option5=3,option6=(4, "more")`, enum.QueryString(cases))

	assert.Equal(t, "option1,option3", enum.QueryString([]test1{option1, option3}))
	assert.Equal(t, "", enum.QueryString([]test2{}))
}

func TestToMap(t *testing.T) {
	cases := []test2{option4{"test"}, option5{3}, option6{4, "more"}, option5{7}}
	m := enum.ToMap(cases)
	assert.Equal(t, map[string]any{
		"option4": "test",
		"option5": 7,
		"option6": enum.Tuple{4, "more"},
	}, m)
}

type payloadLess struct{ label string }

func (p payloadLess) Tag() (string, []any) { return p.label, nil }

func TestToMap_PayloadLessRemoves(t *testing.T) {
	cases := []enum.Tagged{option5{3}, payloadLess{"option5"}, option4{"kept"}}
	assert.Equal(t, map[string]any{"option4": "kept"}, enum.ToMap(cases))
}

func TestDecode(t *testing.T) {
	var out struct {
		Option4 string    `json:"option4"`
		Option5 int       `json:"option5"`
		Option6 []any     `json:"option6"`
		Missing *struct{} `json:"missing"`
	}
	cases := []test2{option4{"test"}, option5{3}, option6{4, "more"}}
	require.NoError(t, enum.Decode(cases, &out))
	assert.Equal(t, "test", out.Option4)
	assert.Equal(t, 3, out.Option5)
	assert.Equal(t, []any{4, "more"}, out.Option6)
	assert.Nil(t, out.Missing)

	var bad struct {
		Option4 int `json:"option4"`
	}
	err := enum.Decode(cases, &bad)
	assert.True(t, errors.Is(err, constant.ErrDecode))

	err = enum.Decode(cases, nil)
	assert.True(t, errors.Is(err, constant.ErrDecode))
}
