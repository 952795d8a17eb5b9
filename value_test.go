package tuteliq

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOf(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    Value
		wantErr bool
	}{
		{"nil", nil, Null(), false},
		{"bool", true, Bool(true), false},
		{"int", 42, Number(42), false},
		{"int64", int64(-7), Number(-7), false},
		{"uint", uint(9), Number(9), false},
		{"float64", 0.5, Number(0.5), false},
		{"string", "hello", String("hello"), false},
		{"value passthrough", String("x"), String("x"), false},
		{"slice", []any{1, "two", true}, Array(Number(1), String("two"), Bool(true)), false},
		{"map", map[string]any{"k": "v"}, Object(map[string]Value{"k": String("v")}), false},
		{"NaN rejected", math.NaN(), Value{}, true},
		{"+Inf rejected", math.Inf(1), Value{}, true},
		{"channel rejected", make(chan int), Value{}, true},
		{"nested error propagates", []any{math.NaN()}, Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValueOf(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v got %v", tt.want, got)
		})
	}
}

func TestValueAccessors(t *testing.T) {
	b, ok := Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = Bool(true).AsString()
	assert.False(t, ok)

	n, ok := Number(3.5).AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 3.5, n)

	s, ok := String("x").AsString()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	a, ok := Array(Number(1)).AsArray()
	assert.True(t, ok)
	assert.Len(t, a, 1)

	o, ok := Object(map[string]Value{"k": Null()}).AsObject()
	assert.True(t, ok)
	assert.Contains(t, o, "k")

	assert.True(t, Null().IsNull())
	assert.False(t, Number(0).IsNull())
}

func TestValueJSONRoundTrip(t *testing.T) {
	original := Object(map[string]Value{
		"conversation": String("abc-123"),
		"age":          Number(12),
		"flagged":      Bool(false),
		"tags":         Array(String("chat"), String("school")),
		"extra":        Null(),
	})

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Value
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Equal(decoded))
}

func TestValueMarshalEmptyContainers(t *testing.T) {
	data, err := json.Marshal(Array())
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))

	data, err = json.Marshal(Object(nil))
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(data))

	data, err = json.Marshal(Null())
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Null().Equal(Null()))
	assert.False(t, Null().Equal(Bool(false)))
	assert.True(t, Number(1).Equal(Number(1)))
	assert.False(t, Number(1).Equal(Number(2)))

	a := Object(map[string]Value{"x": Number(1), "y": Number(2)})
	b := Object(map[string]Value{"y": Number(2), "x": Number(1)})
	assert.True(t, a.Equal(b), "object key order is irrelevant")

	assert.False(t, Array(Number(1)).Equal(Array(Number(1), Number(2))))
}
