package types

import "time"

// RunStage is a cosmetic progress step shown while an attendance run is
// outstanding. Only one network call is made; the stages pace the display.
type RunStage int

const (
	RunStagePreparing RunStage = iota
	RunStageConnecting
	RunStageCollecting
	RunStageParsing
	RunStageUpdatingSheet
	RunStageNotifying
	RunStageDone
)

type runStageInfo struct {
	percent int
	label   string
	pause   time.Duration
}

var runStages = map[RunStage]runStageInfo{
	RunStagePreparing:     {0, "준비 중...", 0},
	RunStageConnecting:    {10, "슬랙 연결 중...", 500 * time.Millisecond},
	RunStageCollecting:    {25, "댓글 수집 중...", 0},
	RunStageParsing:       {50, "출석 파싱 중...", 500 * time.Millisecond},
	RunStageUpdatingSheet: {70, "구글 시트 업데이트 중...", 0},
	RunStageNotifying:     {90, "알림 전송 중...", 500 * time.Millisecond},
	RunStageDone:          {100, "완료!", 300 * time.Millisecond},
}

// Percent returns the progress bar fill for the stage
func (s RunStage) Percent() int {
	return runStages[s].percent
}

// Label returns the text shown next to the progress bar
func (s RunStage) Label() string {
	return runStages[s].label
}

// Pause returns the display delay that follows the stage
func (s RunStage) Pause() time.Duration {
	return runStages[s].pause
}
