package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/partsdesk/pkg/api"
)

func dealerDrawer(mode DrawerMode) *Drawer {
	return NewDrawer("Dealer", mode, []FieldSpec{
		{Key: "accountNum", Label: "Account number", Required: true},
		{Key: "email", Label: "Email", Required: true},
		{Key: "companyName", Label: "Company", Required: true},
		{Key: "phone", Label: "Phone"},
	}, nil)
}

func bannerDrawer() *Drawer {
	return NewDrawer("Banner", DrawerCreate, []FieldSpec{
		{Key: "title", Label: "Title", Required: true},
	}, []FileFieldSpec{
		{Key: "imgae", Label: "Image", Required: true},
	})
}

// TestRequiredFieldsBlockSubmit verifies client-side validation.
func TestRequiredFieldsBlockSubmit(t *testing.T) {
	d := dealerDrawer(DrawerCreate)
	d.SetValue("accountNum", "1001")

	assert.False(t, d.TrySubmit())
	assert.Equal(t, "Required", d.FieldError("email"))
	assert.Equal(t, "", d.FieldError("accountNum"))
	assert.False(t, d.Submitting())
}

// TestDoubleSubmitIgnored verifies a second submit while one is in flight
// is a no-op.
func TestDoubleSubmitIgnored(t *testing.T) {
	d := dealerDrawer(DrawerCreate)
	d.SetValue("accountNum", "1001")
	d.SetValue("email", "a@b.com")
	d.SetValue("companyName", "Acme Parts")

	require.True(t, d.TrySubmit())
	assert.True(t, d.Submitting())
	assert.False(t, d.TrySubmit(), "submit while in flight must be ignored")
}

// TestConflictAttachesToField verifies the dealer creation conflict scenario:
// ACCOUNT_NUM_CONFLICT lands on the account-number field, the drawer stays
// open and entered values persist.
func TestConflictAttachesToField(t *testing.T) {
	d := dealerDrawer(DrawerCreate)
	d.SetValue("accountNum", "1001")
	d.SetValue("email", "a@b.com")
	d.SetValue("companyName", "Acme Parts")

	require.True(t, d.TrySubmit())

	closed := d.FinishSubmit(&api.APIError{
		Status: 409,
		Code:   "ACCOUNT_NUM_CONFLICT",
		Errors: []string{"Account number already exists"},
	})

	assert.False(t, closed, "drawer must stay open on failure")
	assert.Equal(t, "Account number already exists", d.FieldError("accountNum"))
	assert.Equal(t, "1001", d.Value("accountNum"), "entered values must persist")
	assert.Equal(t, "a@b.com", d.Value("email"))
	assert.False(t, d.Submitting(), "a new submit must be possible after failure")
	assert.Empty(t, d.Notice)
}

// TestEmailConflictAttachesToField verifies the second known conflict code.
func TestEmailConflictAttachesToField(t *testing.T) {
	d := dealerDrawer(DrawerCreate)
	d.SetValue("accountNum", "1001")
	d.SetValue("email", "a@b.com")
	d.SetValue("companyName", "Acme Parts")

	require.True(t, d.TrySubmit())
	d.FinishSubmit(&api.APIError{Status: 409, Code: "EMAIL_CONFLICT", Errors: []string{"Email already in use"}})

	assert.Equal(t, "Email already in use", d.FieldError("email"))
}

// TestServerFieldErrors verifies the fields map from the error envelope.
func TestServerFieldErrors(t *testing.T) {
	d := dealerDrawer(DrawerCreate)
	d.SetValue("accountNum", "1001")
	d.SetValue("email", "a@b.com")
	d.SetValue("companyName", "Acme Parts")

	require.True(t, d.TrySubmit())
	d.FinishSubmit(&api.APIError{
		Status: 422,
		Code:   "VALIDATION_ERROR",
		Errors: []string{"Validation failed"},
		Fields: map[string][]string{"phone": {"Invalid phone format"}},
	})

	assert.Equal(t, "Invalid phone format", d.FieldError("phone"))
}

// TestUnknownCodeGoesToNotice verifies unrecognized codes fall back to the
// general notice instead of being dropped.
func TestUnknownCodeGoesToNotice(t *testing.T) {
	d := dealerDrawer(DrawerCreate)
	d.SetValue("accountNum", "1001")
	d.SetValue("email", "a@b.com")
	d.SetValue("companyName", "Acme Parts")

	require.True(t, d.TrySubmit())
	d.FinishSubmit(&api.APIError{Status: 400, Code: "SOMETHING_NEW", Errors: []string{"backend says no"}})

	assert.Equal(t, "backend says no", d.Notice)
}

// TestNetworkErrorGoesToNotice verifies non-API errors get a human message.
func TestNetworkErrorGoesToNotice(t *testing.T) {
	d := dealerDrawer(DrawerCreate)
	d.SetValue("accountNum", "1001")
	d.SetValue("email", "a@b.com")
	d.SetValue("companyName", "Acme Parts")

	require.True(t, d.TrySubmit())
	closed := d.FinishSubmit(errors.New("dial tcp: connection refused"))

	assert.False(t, closed)
	assert.NotEmpty(t, d.Notice)
}

// TestUploadGateBlocksSubmit verifies the form cannot be submitted while a
// required file upload is pending — no network call is attempted.
func TestUploadGateBlocksSubmit(t *testing.T) {
	d := bannerDrawer()
	d.SetValue("title", "Spring sale")

	assert.False(t, d.TrySubmit(), "missing required upload must block submit")
	assert.NotEmpty(t, d.Notice)

	d.Uploads.Start("imgae", "banner.jpg")
	assert.False(t, d.TrySubmit(), "in-flight upload must block submit")

	d.Uploads.Done("imgae", "https://cdn.test/banner.jpg")
	assert.True(t, d.TrySubmit())

	body := d.Body()
	assert.Equal(t, "https://cdn.test/banner.jpg", body["imgae"])
	assert.Equal(t, "Spring sale", body["title"])
}

// TestSuccessfulSubmitCloses verifies the happy path closes the drawer.
func TestSuccessfulSubmitCloses(t *testing.T) {
	d := dealerDrawer(DrawerEdit)
	d.RecordID = "d42"
	d.SetValue("accountNum", "1001")
	d.SetValue("email", "a@b.com")
	d.SetValue("companyName", "Acme Parts")

	require.True(t, d.TrySubmit())
	assert.True(t, d.FinishSubmit(nil))
}

// TestBodySkipsEmptyValues verifies optional empty fields are not sent
// on create.
func TestBodySkipsEmptyValues(t *testing.T) {
	d := dealerDrawer(DrawerCreate)
	d.SetValue("accountNum", "1001")
	d.SetValue("email", "a@b.com")
	d.SetValue("companyName", "Acme Parts")

	body := d.Body()
	_, hasPhone := body["phone"]
	assert.False(t, hasPhone)
}

// TestBodySendsEmptiesOnEdit verifies clearing an optional field in edit
// mode reaches the backend: PUT замещает запись, пустое поле — это очистка.
func TestBodySendsEmptiesOnEdit(t *testing.T) {
	d := dealerDrawer(DrawerEdit)
	d.SetValue("accountNum", "1001")
	d.SetValue("email", "a@b.com")
	d.SetValue("companyName", "Acme Parts")
	d.SetValue("phone", "")

	body := d.Body()
	phone, hasPhone := body["phone"]
	assert.True(t, hasPhone)
	assert.Equal(t, "", phone)
}
