package validation

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLinkedInURL(t *testing.T) {
	valid := []string{
		"",
		"https://www.linkedin.com/in/jane-doe",
		"http://linkedin.com/in/jane_doe.42/",
		"https://linkedin.com/pub/jdoe",
	}
	invalid := []string{
		"linkedin.com/in/jane",
		"https://www.linkedin.com/company/acme",
		"https://evil.com/in/jane",
		"https://www.linkedin.com/in/",
	}

	for _, link := range valid {
		assert.True(t, IsLinkedInURL(link), link)
	}
	for _, link := range invalid {
		assert.False(t, IsLinkedInURL(link), link)
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail(" Jane@Example.com "))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("jane"))
	assert.Error(t, ValidateEmail("jane@localhost"))
	assert.Error(t, ValidateEmail("Jane <jane@example.com>"))
}

func TestLengthRules(t *testing.T) {
	assert.Error(t, ValidateName("J"))
	assert.NoError(t, ValidateName("Jo"))

	bio := strings.Repeat("б", MaxBioLength)
	assert.NoError(t, ValidateBio(&bio))
	bio += "x"
	assert.EqualError(t, ValidateBio(&bio), "Bio cannot exceed 500 characters")
	assert.NoError(t, ValidateBio(nil))

	assert.Error(t, ValidatePassword("12345"))
	assert.NoError(t, ValidatePassword("123456"))
}

func TestNormalizeSkills(t *testing.T) {
	got := NormalizeSkills([]string{" Go ", "", "go", "Rust"})
	assert.Equal(t, []string{"Go", "Rust"}, got)
	assert.NoError(t, ValidateSkills("Skills offered", got))
	assert.Error(t, ValidateSkills("Skills offered", []string{strings.Repeat("x", MaxSkillLength+1)}))
}

func TestRegisterTags(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterTags(v))

	type listing struct {
		Category string `validate:"skillcategory"`
		Level    string `validate:"skilllevel"`
		LinkedIn string `validate:"omitempty,linkedin"`
	}

	assert.NoError(t, v.Struct(listing{Category: "Music", Level: "Beginner"}))
	assert.Error(t, v.Struct(listing{Category: "Gardening", Level: "Beginner"}))
	assert.Error(t, v.Struct(listing{Category: "Music", Level: "Expert"}))
	assert.Error(t, v.Struct(listing{Category: "Music", Level: "Beginner", LinkedIn: "https://x.com/in/a"}))
}
