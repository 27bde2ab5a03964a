package usecase

// Operator facing messages. Failure prefixes come in pairs: "실패" for a
// {"success": false} answer and "오류" when the backend could not be
// reached or answered garbage.
const (
	MsgNoWorkspaces         = "워크스페이스가 없습니다. workspaces/ 폴더에 워크스페이스를 추가하세요."
	MsgSelectWorkspace      = "워크스페이스를 선택하세요."
	MsgSelectWorkspaceFirst = "워크스페이스를 먼저 선택하세요."
	MsgSelectThread         = "스레드를 선택하거나 입력하세요."
	MsgEnterColumn          = "열을 입력하세요."
	MsgInvalidColumn        = "열은 A-Z 중 한 글자여야 합니다."
	MsgRunInFlight          = "출석체크가 이미 진행 중입니다."
	MsgWorkspaceNotFound    = "워크스페이스를 찾을 수 없습니다."
	MsgSlackTokenRequired   = "알림 사용자를 확인하려면 Bot Token이 필요합니다."
	MsgFormMismatch         = "스케줄 양식이 다른 워크스페이스의 것입니다. 다시 불러오세요."

	MsgScheduleSaved     = "스케줄이 저장되었습니다! 서버를 재시작하면 자동 실행이 활성화됩니다."
	MsgScheduleDeleted   = "스케줄이 삭제되었습니다! 서버를 재시작하면 적용됩니다."
	MsgWorkspaceAdded    = "워크스페이스가 추가되었습니다."
	MsgWorkspaceDeleted  = "워크스페이스가 삭제되었습니다."
	MsgTokenPrefixWarn   = "토큰이 xoxb-로 시작하지 않습니다. Bot Token이 맞는지 확인하세요."
	MsgUnsafeFolderName  = `폴더 이름에 다음 문자를 사용할 수 없습니다: < > : " / \ | ? *`
	MsgInvalidBotToken   = "Bot Token은 xoxb-로 시작해야 합니다."
	MsgInvalidChannelID  = "채널 ID는 C로 시작해야 합니다."
	MsgInvalidNameColumn = "이름 열은 A-Z 중 한 글자여야 합니다."
	MsgMissingField      = "필수 항목을 입력하세요: "
	MsgInvalidCreds      = "인증 정보 JSON 형식이 올바르지 않습니다: "
	MsgNotJSONFile       = "JSON 파일만 업로드할 수 있습니다."
	MsgEmptyToken        = "토큰을 찾을 수 없습니다."

	prefixLoadWorkspacesFailed  = "워크스페이스 로드 실패: "
	prefixLoadWorkspacesError   = "워크스페이스 로드 오류: "
	prefixFindThreadFailed      = "스레드 찾기 실패: "
	prefixFindThreadError       = "스레드 찾기 오류: "
	prefixRunFailed             = "출석체크 실패: "
	prefixRunError              = "출석체크 오류: "
	prefixLoadScheduleFailed    = "스케줄 로드 실패: "
	prefixLoadScheduleError     = "스케줄 로드 오류: "
	prefixSaveScheduleFailed    = "스케줄 저장 실패: "
	prefixSaveScheduleError     = "스케줄 저장 오류: "
	prefixInvalidSchedule       = "스케줄 설정 오류: "
	prefixDeleteScheduleFailed  = "스케줄 삭제 실패: "
	prefixDeleteScheduleError   = "스케줄 삭제 오류: "
	prefixLoadStatusFailed      = "예약 현황 로드 실패: "
	prefixLoadStatusError       = "예약 현황 로드 오류: "
	prefixAddWorkspaceFailed    = "워크스페이스 추가 실패: "
	prefixAddWorkspaceError     = "워크스페이스 추가 오류: "
	prefixDeleteWorkspaceFailed = "워크스페이스 삭제 실패: "
	prefixDeleteWorkspaceError  = "워크스페이스 삭제 오류: "
	prefixSlackPreflight        = "Slack 확인 실패: "
	prefixSheetPreflight        = "스프레드시트 확인 실패: "
	prefixNotifyUserPreflight   = "알림 사용자 확인 실패: "

	promptDeleteSchedule   = "\"%s\" 워크스페이스의 자동 실행 스케줄을 삭제하시겠습니까?\n\n삭제 후 서버를 재시작해야 적용됩니다."
	promptDeleteWorkspace1 = "\"%s\" 워크스페이스를 삭제하시겠습니까?\n\n모든 설정과 인증 정보가 삭제됩니다."
	promptDeleteWorkspace2 = "정말로 삭제하시겠습니까? 이 작업은 되돌릴 수 없습니다."
)
