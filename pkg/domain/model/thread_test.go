package model_test

import (
	"testing"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestParseThreadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"raw timestamp", "1760337471.753399", "1760337471.753399"},
		{"trims spaces", "  1760337471.753399 ", "1760337471.753399"},
		{"permalink", "https://iginihq.slack.com/archives/C09LZ0WBB4Y/p1760337471753399", "1760337471.753399"},
		{"permalink with query", "https://x.slack.com/archives/C1/p1234567890123456?thread_ts=1", "1234567890.123456"},
		{"unknown text kept", "latest", "latest"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, model.ParseThreadInput(tt.input)).Equal(tt.want)
		})
	}
}

func TestThreadRef(t *testing.T) {
	var ref model.ThreadRef
	gt.Bool(t, ref.IsZero()).True()
	gt.Bool(t, ref.HasDMTarget()).False()

	ref = model.ThreadRef{TS: "1.2", User: "U123"}
	gt.Bool(t, ref.IsZero()).False()
	gt.Bool(t, ref.HasDMTarget()).True()
}

func TestIsThreadTS(t *testing.T) {
	gt.Bool(t, model.IsThreadTS("1760337471.753399")).True()
	gt.Bool(t, model.IsThreadTS("1760337471")).False()
	gt.Bool(t, model.IsThreadTS("latest")).False()
}
