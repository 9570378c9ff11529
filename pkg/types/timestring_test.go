package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	cases := []struct {
		name    string
		value   TimeString
		wantErr bool
	}{
		{name: "корректное время", value: "09:00", wantErr: false},
		{name: "полночь", value: "00:00", wantErr: false},
		{name: "с секундами", value: "09:00:00", wantErr: true},
		{name: "часы вне диапазона", value: "25:00", wantErr: true},
		{name: "минуты вне диапазона", value: "09:75", wantErr: true},
		{name: "пустая строка", value: "", wantErr: true},
		{name: "не время", value: "abc", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.value.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("14:30")
	require.NoError(t, err)
	assert.Equal(t, TimeString("14:30"), ts)

	_, err = NewTimeStringFromString("14-30")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestTimeString_AddMinutes(t *testing.T) {
	cases := []struct {
		name    string
		value   TimeString
		minutes int
		want    TimeString
	}{
		{name: "обычный шаг", value: "09:00", minutes: 30, want: "09:30"},
		{name: "переход через час", value: "09:30", minutes: 30, want: "10:00"},
		{name: "час вперед", value: "12:30", minutes: 60, want: "13:30"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.value.AddMinutes(tc.minutes)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := TimeString("bad").AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.True(t, TimeString("14:30").IsAfter("12:30"))
	assert.False(t, TimeString("12:30").IsAfter("12:30"))
}

func TestTimeString_Scan(t *testing.T) {
	cases := []struct {
		name string
		src  interface{}
		want TimeString
	}{
		{name: "строка", src: "10:30", want: "10:30"},
		{name: "строка с секундами из postgres", src: "10:30:00", want: "10:30"},
		{name: "байты", src: []byte("16:00"), want: "16:00"},
		{name: "time.Time", src: time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC), want: "09:30"},
		{name: "NULL", src: nil, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ts TimeString
			require.NoError(t, ts.Scan(tc.src))
			assert.Equal(t, tc.want, ts)
		})
	}

	var ts TimeString
	assert.Error(t, ts.Scan(42))
	assert.Error(t, ts.Scan("not-a-time"))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
