package view

import (
	"fmt"
	"strings"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
)

// RenderWorkspaces lists workspaces, marking the current one
func RenderWorkspaces(workspaces model.Workspaces, currentID string) string {
	if len(workspaces) == 0 {
		return ""
	}
	var b strings.Builder
	for _, ws := range workspaces {
		mark := " "
		if ws.ID == currentID {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s %s (%s)\n", mark, ws.DisplayName(), ws.ID)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderWorkspaceInfo shows the channel and sheet of the current workspace
func RenderWorkspaceInfo(ws *model.Workspace) string {
	if ws == nil {
		return ""
	}
	return fmt.Sprintf("채널: %s\n시트: %s", ws.ChannelID, ws.SheetName)
}

// RenderThread describes the resolved thread
func RenderThread(ref model.ThreadRef, discovered *model.DiscoveredThread) string {
	if ref.IsZero() {
		return ""
	}
	var b strings.Builder
	if discovered != nil && discovered.Text != "" {
		b.WriteString(discovered.Text + "\n")
	}
	b.WriteString("Thread TS: " + ref.TS)
	return b.String()
}

const progressWidth = 20

// RenderProgress draws the run progress bar with its stage label
func RenderProgress(stage types.RunStage) string {
	pct := stage.Percent()
	filled := pct * progressWidth / 100
	return fmt.Sprintf("[%s%s] %3d%% %s",
		strings.Repeat("█", filled),
		strings.Repeat("░", progressWidth-filled),
		pct, stage.Label())
}
