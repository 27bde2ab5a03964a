package types_test

import (
	"testing"
	"time"

	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestDayCode_DisplayName(t *testing.T) {
	tests := []struct {
		day  types.DayCode
		want string
	}{
		{types.DayMonday, "월요일"},
		{types.DayTuesday, "화요일"},
		{types.DayWednesday, "수요일"},
		{types.DayThursday, "목요일"},
		{types.DayFriday, "금요일"},
		{types.DaySaturday, "토요일"},
		{types.DaySunday, "일요일"},
		{"holiday", "holiday"},
	}

	for _, tt := range tests {
		t.Run(string(tt.day), func(t *testing.T) {
			gt.Value(t, tt.day.DisplayName()).Equal(tt.want)
		})
	}
}

func TestAllDayCodes(t *testing.T) {
	days := types.AllDayCodes()
	gt.Array(t, days).Length(7)
	for _, d := range days {
		gt.Bool(t, d.IsValid()).True()
	}
}

func TestDayCode_Weekday(t *testing.T) {
	wd, ok := types.DaySunday.Weekday()
	gt.Bool(t, ok).True()
	gt.Value(t, wd).Equal(time.Sunday)

	_, ok = types.DayCode("").Weekday()
	gt.Bool(t, ok).False()
}

func TestParseDayCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.DayCode
		wantErr bool
	}{
		{"lowercase", "mon", types.DayMonday, false},
		{"uppercase with spaces", " FRI ", types.DayFriday, false},
		{"empty means unset", "", "", false},
		{"unknown", "monday", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.ParseDayCode(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, got).Equal(tt.want)
		})
	}
}
