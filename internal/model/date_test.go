package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.March, 15)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2026-03-15"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, "2026-03-15", back.String())
}

func TestDateUnmarshalTreatsNullAndEmptyAsUnset(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	require.True(t, d.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	require.True(t, d.IsZero())
	require.Equal(t, "", d.String())
}

func TestDateMarshalUnsetAsNull(t *testing.T) {
	data, err := json.Marshal(Date{})
	require.NoError(t, err)
	require.Equal(t, "null", string(data))
}

func TestDateBeforeComparesDatesOnly(t *testing.T) {
	a := NewDate(2026, time.March, 14)
	b := NewDate(2026, time.March, 15)

	require.True(t, a.Before(b))
	require.False(t, b.Before(a))
	require.False(t, b.Before(b))
}

func TestDateRejectsOtherLayouts(t *testing.T) {
	var d Date
	require.Error(t, json.Unmarshal([]byte(`"15/03/2026"`), &d))
}
