package model_test

import (
	"testing"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestWorkspaces_Find(t *testing.T) {
	ws := model.Workspaces{
		{ID: "class-a", Name: "A반"},
		{ID: "class-b"},
	}

	w, err := ws.Find("class-b")
	gt.NoError(t, err).Required()
	gt.Value(t, w.DisplayName()).Equal("class-b")

	_, err = ws.Find("class-z")
	gt.Error(t, err).Is(model.ErrWorkspaceNotFound)

	gt.Array(t, ws.IDs()).Length(2)
}
