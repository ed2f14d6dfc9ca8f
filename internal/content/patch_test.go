package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	var u PartnershipUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Acme","url":null}`), &u))

	assert.True(t, u.Name.Set)
	assert.False(t, u.Name.Null)
	assert.Equal(t, "Acme", u.Name.Value)

	assert.True(t, u.URL.Set)
	assert.True(t, u.URL.Null)

	assert.False(t, u.Role.Set, "absent fields stay unset")
}

func TestPartnershipChanges(t *testing.T) {
	ch, err := PartnershipUpdate{Name: Some("Acme"), URL: Null[string]()}.Changes()
	require.NoError(t, err)
	assert.Equal(t, "Acme", ch.Set["name"])
	assert.Equal(t, []string{"url"}, ch.Unset)
	assert.NotContains(t, ch.Set, "role")

	ch, err = PartnershipUpdate{URL: Some("")}.Changes()
	require.NoError(t, err)
	assert.Equal(t, []string{"url"}, ch.Unset)

	ch, err = PartnershipUpdate{}.Changes()
	require.NoError(t, err)
	assert.True(t, ch.Empty())
}

func TestChangesRejectNullOnRequiredField(t *testing.T) {
	_, err := BiographyUpdate{Name: Null[string](), Title: Some("ok")}.Changes()
	require.Error(t, err)
	ve := FromValidator(err)
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "name", ve.Fields[0].Field)
	assert.Equal(t, "not_null", ve.Fields[0].Rule)

	_, err = SocialMediaUpdate{URL: Null[string]()}.Changes()
	require.True(t, IsValidation(err))
}

func TestChangesValidateURLs(t *testing.T) {
	_, err := SocialMediaUpdate{URL: Some("ftp//broken")}.Changes()
	require.True(t, IsValidation(err))
	assert.Equal(t, "url", FromValidator(err).Fields[0].Field)

	ch, err := SocialMediaUpdate{URL: Some("https://twitch.tv/ladypi89")}.Changes()
	require.NoError(t, err)
	assert.Equal(t, "https://twitch.tv/ladypi89", ch.Set["url"])
}

func TestFromValidatorWrapsParseErrors(t *testing.T) {
	var u BiographyUpdate
	err := json.Unmarshal([]byte(`{"name":`), &u)
	require.Error(t, err)
	ve := FromValidator(err)
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "body", ve.Fields[0].Field)
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, ContactResponded.Valid())
	assert.False(t, ContactStatus("bogus").Valid())
	assert.True(t, StreamStreaming.Valid())
	assert.False(t, StreamState("away").Valid())
}
