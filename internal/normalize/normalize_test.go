package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone_CommonFormats(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"parentheses and dash", "(555) 123-4567", "5551234567"},
		{"dashes", "555-123-4567", "5551234567"},
		{"dots", "555.123.4567", "5551234567"},
		{"country code", "+1 (555) 123-4567", "15551234567"},
		{"spaces", "+44 20 7946 0958", "442079460958"},
		{"already digits", "5551234567", "5551234567"},
		{"exactly seven digits", "123-4567", "1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Phone(tt.input))
		})
	}
}

func TestPhone_TooShort(t *testing.T) {
	assert.Equal(t, "", Phone("123-456"))
	assert.Equal(t, "", Phone(""))
	assert.Equal(t, "", Phone("call us"))
	assert.Equal(t, "", Phone("+1 23"))
}

func TestPhone_PreservesDigitOrder(t *testing.T) {
	assert.Equal(t, "9876543210", Phone("98-76-54-32-10"))
}

func TestCleanURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"full https URL", "https://www.example.com/about", "example.com"},
		{"http URL", "http://example.com", "example.com"},
		{"no scheme", "example.com", "example.com"},
		{"no scheme with www", "www.example.com", "example.com"},
		{"trailing slash", "https://example.com/", "example.com"},
		{"uppercase scheme", "HTTPS://Example.COM/Contact", "example.com"},
		{"subdomain kept", "https://shop.example.com/x", "shop.example.com"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanURL(tt.input))
		})
	}
}

func TestNameVariants_CamelCaseSplit(t *testing.T) {
	variants := NameVariants("AcmeCorp")
	assert.Equal(t, []string{"AcmeCorp", "Acme Corp"}, variants)
}

func TestNameVariants_NoSplitNeeded(t *testing.T) {
	variants := NameVariants("Acme Corporation")
	assert.Equal(t, []string{"Acme Corporation"}, variants)
}

func TestNameVariants_KeepsAbbreviations(t *testing.T) {
	// Short runs stay attached rather than becoming one-letter parts.
	variants := NameVariants("IBM")
	assert.Equal(t, []string{"IBM"}, variants)
}

func TestNameVariants_Empty(t *testing.T) {
	assert.Nil(t, NameVariants(""))
	assert.Nil(t, NameVariants("   "))
}

func TestNameVariants_TrimsWhitespace(t *testing.T) {
	variants := NameVariants("  GreenField Labs  ")
	assert.Equal(t, "GreenField Labs", variants[0])
}
