package form

import (
	"testing"

	"kenics-pageant-site/internal/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func photo(name string) backend.File {
	return backend.File{
		Filename:    name,
		ContentType: "image/jpeg",
		Content:     []byte("jpeg-bytes-" + name),
	}
}

// validController returns a draft that passes validation
func validController(t *testing.T) *Controller {
	t.Helper()

	c := New()
	fields := map[string]string{
		"firstName":                     "Sarah",
		"lastName":                      "Williams",
		"email":                         "sarah@example.com",
		"phone":                         "+2348012345678",
		"dateOfBirth":                   "2001-04-12",
		"height":                        "170",
		"weight":                        "58",
		"category":                      "miss",
		"bio":                           "Fashion design student.",
		"experience":                    "Two years of runway.",
		"achievements":                  "Campus queen 2024",
		"socialMedia.instagram":         "@sarahw",
		"emergencyContact.name":         "Jane Williams",
		"emergencyContact.relationship": "Mother",
		"emergencyContact.phone":        "+2348098765432",
		"termsAccepted":                 "true",
	}
	for name, value := range fields {
		require.NoError(t, c.SetField(name, value))
	}
	c.SelectProfilePhoto(photo("profile.jpg"))
	require.NoError(t, c.AddAdditionalPhotos(photo("extra1.jpg"), photo("extra2.jpg")))
	return c
}

func TestValidateEmptyForm(t *testing.T) {
	c := New()

	assert.False(t, c.Validate())

	wantKeys := []string{
		"firstName", "lastName", "email", "phone", "dateOfBirth",
		"height", "weight", "category", "bio", "experience",
		"emergencyContact.name", "emergencyContact.relationship",
		"emergencyContact.phone",
		"profilePhoto", "additionalPhotos", "termsAccepted",
	}

	errs := c.Errors()
	assert.Len(t, errs, 16)
	for _, key := range wantKeys {
		assert.Contains(t, errs, key)
	}
	// achievements is optional
	assert.NotContains(t, errs, "achievements")
}

func TestValidateFullForm(t *testing.T) {
	c := validController(t)

	assert.True(t, c.Validate())
	assert.Empty(t, c.Errors())
}

func TestValidateEmailFormat(t *testing.T) {
	c := validController(t)
	require.NoError(t, c.SetField("email", "not-an-email"))

	assert.False(t, c.Validate())

	errs := c.Errors()
	assert.Len(t, errs, 1)
	assert.Equal(t, "Please enter a valid email address", errs["email"])
}

func TestValidateWhitespaceOnly(t *testing.T) {
	c := validController(t)
	require.NoError(t, c.SetField("firstName", "   "))
	require.NoError(t, c.SetField("emergencyContact.name", " \t "))

	assert.False(t, c.Validate())

	errs := c.Errors()
	assert.Equal(t, "First name is required", errs["firstName"])
	assert.Equal(t, "Emergency contact name is required", errs["emergencyContact.name"])
}

func TestSetFieldClearsOnlyOwnError(t *testing.T) {
	c := New()
	require.False(t, c.Validate())
	before := len(c.Errors())

	require.NoError(t, c.SetField("email", "sarah@example.com"))

	errs := c.Errors()
	assert.NotContains(t, errs, "email")
	assert.Len(t, errs, before-1)
	assert.Contains(t, errs, "firstName")
	assert.Contains(t, errs, "emergencyContact.phone")
}

func TestSetFieldDottedClearsDottedError(t *testing.T) {
	c := New()
	require.False(t, c.Validate())

	require.NoError(t, c.SetField("emergencyContact.name", "Jane"))

	errs := c.Errors()
	assert.NotContains(t, errs, "emergencyContact.name")
	assert.Contains(t, errs, "emergencyContact.relationship")
}

func TestSetFieldNestedLeavesSiblings(t *testing.T) {
	c := validController(t)
	before := c.Snapshot()

	require.NoError(t, c.SetField("socialMedia.instagram", "@newhandle"))

	after := c.Snapshot()
	assert.Equal(t, "@newhandle", after.SocialMedia.Instagram)
	assert.Equal(t, before.SocialMedia.Facebook, after.SocialMedia.Facebook)
	assert.Equal(t, before.SocialMedia.Twitter, after.SocialMedia.Twitter)
	assert.Equal(t, before.SocialMedia.TikTok, after.SocialMedia.TikTok)
	assert.Equal(t, before.FirstName, after.FirstName)
	assert.Equal(t, before.Emergency, after.Emergency)
}

func TestSetFieldUnknown(t *testing.T) {
	tests := []struct {
		name  string
		field string
	}{
		{name: "unknown flat field", field: "nickname"},
		{name: "unknown nested child", field: "socialMedia.myspace"},
		{name: "unknown parent", field: "passport.number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			assert.Error(t, c.SetField(tt.field, "x"))
		})
	}
}

func TestSetFieldTermsAccepted(t *testing.T) {
	c := New()

	require.NoError(t, c.SetField("termsAccepted", "on"))
	assert.True(t, c.Snapshot().TermsAccepted)

	require.NoError(t, c.SetField("termsAccepted", "false"))
	assert.False(t, c.Snapshot().TermsAccepted)

	require.NoError(t, c.SetField("termsAccepted", "true"))
	assert.True(t, c.Snapshot().TermsAccepted)
}

func TestSelectProfilePhotoReplaces(t *testing.T) {
	c := New()

	c.SelectProfilePhoto(photo("first.jpg"))
	c.SelectProfilePhoto(photo("second.jpg"))

	selected := c.ProfilePhoto()
	require.NotNil(t, selected)
	assert.Equal(t, "second.jpg", selected.Filename)
}

func TestRemoveAdditionalPhotoShifts(t *testing.T) {
	c := New()
	require.NoError(t, c.AddAdditionalPhotos(photo("a.jpg"), photo("b.jpg"), photo("c.jpg")))

	require.NoError(t, c.RemoveAdditionalPhoto(1))

	photos := c.AdditionalPhotos()
	require.Len(t, photos, 2)
	assert.Equal(t, "a.jpg", photos[0].Filename)
	assert.Equal(t, "c.jpg", photos[1].Filename)

	assert.ErrorIs(t, c.RemoveAdditionalPhoto(2), ErrNoSuchPhoto)
	assert.ErrorIs(t, c.RemoveAdditionalPhoto(-1), ErrNoSuchPhoto)
}

func TestAdditionalPhotosCap(t *testing.T) {
	c := New()
	require.NoError(t, c.AddAdditionalPhotos(
		photo("1.jpg"), photo("2.jpg"), photo("3.jpg"), photo("4.jpg"), photo("5.jpg"),
	))

	err := c.AddAdditionalPhotos(photo("6.jpg"))
	assert.ErrorIs(t, err, ErrTooManyPhotos)
	assert.Len(t, c.AdditionalPhotos(), 5)

	// an over-cap batch is rejected whole
	require.NoError(t, c.RemoveAdditionalPhoto(0))
	err = c.AddAdditionalPhotos(photo("6.jpg"), photo("7.jpg"))
	assert.ErrorIs(t, err, ErrTooManyPhotos)
	assert.Len(t, c.AdditionalPhotos(), 4)
}
