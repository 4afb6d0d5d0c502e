package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidIndianMobile(t *testing.T) {
	valid := []string{
		"9876543210",
		"09876543210",
		"+919876543210",
		"919876543210",
		"+91 9876543210",
		"+91-9876543210",
		"6123456789",
	}
	for _, phone := range valid {
		require.True(t, IsValidIndianMobile(phone), "expected %q to be valid", phone)
	}

	invalid := []string{
		"",
		"12345",
		"5876543210",  // starts below 6
		"98765432101", // 11 digits
		"abcdefghij",
		"+929876543210", // wrong country code
	}
	for _, phone := range invalid {
		require.False(t, IsValidIndianMobile(phone), "expected %q to be invalid", phone)
	}
}

func TestNormalizeIndianMobile(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9876543210", "+919876543210"},
		{"09876543210", "+919876543210"},
		{"919876543210", "+919876543210"},
		{"+91-9876543210", "+919876543210"},
		{"+91 9876 543 210", "+919876543210"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, NormalizeIndianMobile(tt.in))
	}
}

func TestIsValidEmail(t *testing.T) {
	require.True(t, IsValidEmail("user@example.com"))
	require.True(t, IsValidEmail("first.last@sub.example.in"))
	require.False(t, IsValidEmail(""))
	require.False(t, IsValidEmail("not-an-email"))
	require.False(t, IsValidEmail("user@"))
}
