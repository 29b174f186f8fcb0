package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUsername(t *testing.T) {
	tests := []struct {
		in       string
		expected bool
	}{
		{"alice", true},
		{"abc", true},
		{"ab", false},
		{"a23456789012345678901", false},
		{"A1b2C3", true},
		{"alice_1", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsUsername(tt.in))
		})
	}
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("alice@x.com"))
	assert.False(t, IsEmail("alice@x"))
	assert.False(t, IsEmail("alice x@y.com"))
	assert.False(t, IsEmail("@x.com"))
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected bool
	}{
		{"Valid", "Str0ng!Pass", true},
		{"Too short", "S0!a", false},
		{"No upper", "str0ng!pass", false},
		{"No lower", "STR0NG!PASS", false},
		{"No digit", "Strong!Pass", false},
		{"No symbol", "Str0ngPass", false},
		{"Symbol outside set", "Str0ng#Pass", false},
		{"Non ascii", "Str0ng!Pässword", false},
		{"Exactly eight", "Aa1!aaaa", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsStrongPassword(tt.in))
		})
	}
}

func TestPaymentShapes(t *testing.T) {
	assert.True(t, IsAmount("12.34"))
	assert.True(t, IsAmount("12"))
	assert.True(t, IsAmount("12.3"))
	assert.False(t, IsAmount("12.345"))
	assert.False(t, IsAmount("-1"))
	assert.False(t, IsAmount("1e3"))

	assert.True(t, IsInstrumentNumber("4242424242424242"))
	assert.True(t, IsInstrumentNumber("1234567890123"))
	assert.False(t, IsInstrumentNumber("1234"))
	assert.False(t, IsInstrumentNumber("12345678901234567890"))
	assert.False(t, IsInstrumentNumber("4242 4242 4242 4242"))

	assert.True(t, IsExpiry("01/27"))
	assert.True(t, IsExpiry("12/2030"))
	assert.False(t, IsExpiry("13/27"))
	assert.False(t, IsExpiry("1/27"))
	assert.False(t, IsExpiry("01/271"))

	assert.True(t, IsVerificationCode("123"))
	assert.True(t, IsVerificationCode("1234"))
	assert.False(t, IsVerificationCode("12"))
	assert.False(t, IsVerificationCode("12a"))
}

func TestIsLuna(t *testing.T) {
	assert.True(t, IsLuna("4242424242424242"))
	assert.False(t, IsLuna("4242424242424241"))
}

func TestFirstMissing(t *testing.T) {
	type input struct {
		A string `validate:"required"`
		B string `validate:"required"`
	}

	field, ok := FirstMissing(input{A: "x", B: "y"})
	assert.False(t, ok)
	assert.Empty(t, field)

	field, ok = FirstMissing(input{})
	assert.True(t, ok)
	assert.Equal(t, "A", field)

	field, ok = FirstMissing(input{A: "x"})
	assert.True(t, ok)
	assert.Equal(t, "B", field)
}
