package forms

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationErrors(t *testing.T, err error) Errors {
	t.Helper()
	require.Error(t, err)
	var errs Errors
	require.ErrorAs(t, err, &errs)
	return errs
}

func TestValidate_SignIn(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&SignIn{Email: "a@b.com", Password: "x"}))

	errs := validationErrors(t, v.Validate(&SignIn{Email: "nope", Password: ""}))
	assert.Equal(t, "Please enter a valid email address.", errs["email"])
	assert.Equal(t, "Password is required.", errs["password"])
}

func TestValidate_SignUp(t *testing.T) {
	v := NewValidator()

	valid := SignUp{
		Name:            "Ada",
		Email:           "ada@example.com",
		Password:        "longenough",
		ConfirmPassword: "longenough",
		Terms:           true,
	}
	assert.NoError(t, v.Validate(&valid))

	t.Run("reports every failing field", func(t *testing.T) {
		errs := validationErrors(t, v.Validate(&SignUp{
			Name:            "A",
			Email:           "ada",
			Password:        "short",
			ConfirmPassword: "different",
		}))
		assert.Equal(t, "Name must be at least 2 characters.", errs["name"])
		assert.Equal(t, "Please enter a valid email address.", errs["email"])
		assert.Equal(t, "Password must be at least 8 characters.", errs["password"])
		assert.Equal(t, "Passwords do not match.", errs["confirmPassword"])
		assert.Equal(t, "You must accept the terms and conditions.", errs["terms"])
	})

	t.Run("terms must be accepted", func(t *testing.T) {
		f := valid
		f.Terms = false
		errs := validationErrors(t, v.Validate(&f))
		assert.Len(t, errs, 1)
		assert.True(t, errs.Has("terms"))
	})

	t.Run("confirmation must equal password", func(t *testing.T) {
		f := valid
		f.ConfirmPassword = "longenougH"
		errs := validationErrors(t, v.Validate(&f))
		assert.Equal(t, Errors{"confirmPassword": "Passwords do not match."}, errs)
	})
}

func TestValidate_Profile(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&Profile{Name: "Demo User", Email: "demo@example.com"}))

	errs := validationErrors(t, v.Validate(&Profile{
		Name:  "Demo User",
		Email: "demo@example.com",
		Bio:   strings.Repeat("x", 501),
	}))
	assert.Equal(t, "Bio must not be longer than 500 characters.", errs["bio"])
}

func TestValidate_Password(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&Password{CurrentPassword: "old", NewPassword: "newpassword", ConfirmPassword: "newpassword"}))

	errs := validationErrors(t, v.Validate(&Password{NewPassword: "newpassword", ConfirmPassword: "newpasswore"}))
	assert.Equal(t, "Please enter your current password.", errs["currentPassword"])
	assert.Equal(t, "Passwords do not match.", errs["confirmPassword"])

	errs = validationErrors(t, v.Validate(&Password{CurrentPassword: "old", NewPassword: "short", ConfirmPassword: "short"}))
	assert.Equal(t, "Password must be at least 8 characters.", errs["newPassword"])
	assert.Equal(t, "Password must be at least 8 characters.", errs["confirmPassword"])
}

func TestValidate_Feedback(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&Feedback{Rating: "positive"}))
	errs := validationErrors(t, v.Validate(&Feedback{Rating: "meh"}))
	assert.True(t, errs.Has("rating"))
}

func TestDecode(t *testing.T) {
	values := url.Values{
		"name":            {"Ada"},
		"email":           {"ada@example.com"},
		"password":        {"secret123"},
		"confirmPassword": {"secret123"},
		"terms":           {"on"},
	}

	var f SignUp
	require.NoError(t, Decode(values, &f))
	assert.Equal(t, SignUp{
		Name:            "Ada",
		Email:           "ada@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Terms:           true,
	}, f)

	var empty SignUp
	require.NoError(t, Decode(url.Values{}, &empty))
	assert.False(t, empty.Terms)
	assert.Empty(t, empty.Name)
}

func TestErrorsError(t *testing.T) {
	err := Errors{"email": "Please enter a valid email address."}
	assert.Contains(t, err.Error(), "email: Please enter a valid email address.")
}

func TestEncodeDecodeInts(t *testing.T) {
	type prefs struct {
		FontSize int    `form:"fontSize"`
		Compact  bool   `form:"compact"`
		Wide     bool   `form:"wide"`
		Language string `form:"language"`
		Internal string `form:"-"`
	}

	values := Encode(prefs{FontSize: 18, Compact: true, Language: "french", Internal: "x"})
	assert.Equal(t, "18", values.Get("fontSize"))
	assert.Equal(t, "true", values.Get("compact"))
	assert.Equal(t, "false", values.Get("wide"))
	assert.False(t, values.Has("Internal"))

	var p prefs
	require.NoError(t, Decode(values, &p))
	assert.Equal(t, prefs{FontSize: 18, Compact: true, Language: "french"}, p)
}

func TestDecode_InvalidInt(t *testing.T) {
	type prefs struct {
		FontSize int `form:"fontSize"`
	}

	var p prefs
	errs := validationErrors(t, Decode(url.Values{"fontSize": {"abc"}}, &p))
	assert.True(t, errs.Has("fontSize"))
	assert.Zero(t, p.FontSize)
}
