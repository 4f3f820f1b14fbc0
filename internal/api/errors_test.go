package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeArrayJoinsMessages(t *testing.T) {
	e := Normalize(400, []byte(`["first problem", "second problem"]`))

	require.Equal(t, KindServer, e.Kind)
	require.Equal(t, "first problem, second problem", e.General)
	require.Empty(t, e.Fields)
}

func TestNormalizeNonFieldErrorsWinOverFields(t *testing.T) {
	body := []byte(`{"non_field_errors": ["Invalid credentials"], "email": ["bad"]}`)
	e := Normalize(400, body)

	require.Equal(t, "Invalid credentials", e.General)
	require.Empty(t, e.Fields)
}

func TestNormalizeFieldMapBecomesFieldErrors(t *testing.T) {
	body := []byte(`{"name": ["This field is required."], "due_date": ["Invalid date."]}`)
	e := Normalize(400, body)

	require.Equal(t, KindValidation, e.Kind)
	require.True(t, e.HasFields())
	require.Equal(t, "This field is required.", e.Fields["name"])
	require.Equal(t, "Invalid date.", e.Fields["due_date"])
	require.Empty(t, e.General)
}

func TestNormalizeFieldMapTakesFirstListElement(t *testing.T) {
	body := []byte(`{"password": ["too short", "too common"]}`)
	e := Normalize(400, body)

	require.Equal(t, "too short", e.Fields["password"])
}

func TestNormalizeDetailWinsOverError(t *testing.T) {
	body := []byte(`{"detail": "Not found.", "error": "other"}`)
	e := Normalize(404, body)

	require.Equal(t, "Not found.", e.General)
}

func TestNormalizeErrorKeyAlone(t *testing.T) {
	e := Normalize(500, []byte(`{"error": "Something broke"}`))

	require.Equal(t, "Something broke", e.General)
}

func TestNormalizeBareString(t *testing.T) {
	e := Normalize(400, []byte(`"plain message"`))

	require.Equal(t, "plain message", e.General)
}

func TestNormalizeUnrecognizedMapConcatenatesPairs(t *testing.T) {
	// "detail" is present but not a string, so the map cannot be treated
	// as field errors and falls through to the concatenated form.
	body := []byte(`{"detail": ["a", "b"], "extra": "c"}`)
	e := Normalize(400, body)

	require.Equal(t, "detail: a, b; extra: c", e.General)
}

func TestNormalizeMapWithNoMessagesUsesGenericMessage(t *testing.T) {
	e := Normalize(400, []byte(`{"non_field_errors": []}`))

	require.Equal(t, genericErrorMessage, e.General)
}

func TestNormalizeEmptyBodyUsesFallback(t *testing.T) {
	e := Normalize(500, nil)

	require.Equal(t, FallbackErrorMessage, e.General)
}

func TestNormalizeNonJSONBodySurfacesRawText(t *testing.T) {
	e := Normalize(502, []byte("Bad Gateway"))

	require.Equal(t, "Bad Gateway", e.General)
}

func TestNormalizeEmptyArrayUsesFallback(t *testing.T) {
	e := Normalize(400, []byte(`[]`))

	require.Equal(t, FallbackErrorMessage, e.General)
}

func TestErrorStringPrefersGeneral(t *testing.T) {
	e := &Error{General: "boom", Fields: map[string]string{"name": "required"}}

	require.Equal(t, "boom", e.Error())
}

func TestErrorStringJoinsFieldsSorted(t *testing.T) {
	e := &Error{Fields: map[string]string{
		"name":     "required",
		"due_date": "invalid",
	}}

	require.Equal(t, "due_date: invalid; name: required", e.Error())
}

func TestAsErrorUnwrapsChain(t *testing.T) {
	inner := &Error{Kind: KindAuth, General: SessionExpiredMessage}
	wrapped := errors.Join(errors.New("context"), inner)

	apiErr, ok := AsError(wrapped)
	require.True(t, ok)
	require.Equal(t, KindAuth, apiErr.Kind)
	require.True(t, IsAuthError(wrapped))
	require.False(t, IsNetworkError(wrapped))
}
