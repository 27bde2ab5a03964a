package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/classroom-tools/attendctl/pkg/repository/memory"
	"github.com/classroom-tools/attendctl/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

var errBadRequest = goerr.New("request body is not valid JSON")

type failure struct {
	target  error
	status  int
	message string
}

// failures maps store errors to the status and operator message the
// backend answers with. An empty message passes the error text through.
var failures = []failure{
	{model.ErrWorkspaceNotFound, http.StatusNotFound, "워크스페이스를 찾을 수 없습니다."},
	{memory.ErrThreadNotFound, http.StatusNotFound, "최신 출석 스레드를 찾을 수 없습니다."},
	{memory.ErrInvalidThreadTS, http.StatusBadRequest, "올바른 Thread TS 형식이 아닙니다."},
	{types.ErrInvalidColumn, http.StatusBadRequest, "올바른 열 형식이 아닙니다."},
	{memory.ErrNoReplies, http.StatusInternalServerError, "댓글을 가져올 수 없습니다."},
	{memory.ErrNoAttendance, http.StatusBadRequest, "출석한 학생이 없습니다."},
	{memory.ErrEmptyRoster, http.StatusInternalServerError, "학생 명단을 읽을 수 없습니다."},
	{memory.ErrWorkspaceExists, http.StatusConflict, "이미 존재하는 워크스페이스입니다."},
	{errBadRequest, http.StatusBadRequest, "잘못된 요청입니다."},
	{model.ErrMissingField, http.StatusBadRequest, ""},
	{model.ErrUnsafeFolderName, http.StatusBadRequest, ""},
	{model.ErrInvalidBotToken, http.StatusBadRequest, ""},
	{model.ErrInvalidChannelID, http.StatusBadRequest, ""},
	{model.ErrInvalidCredentials, http.StatusBadRequest, ""},
	{model.ErrInvalidSchedule, http.StatusBadRequest, ""},
}

type failureResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Traceback string `json:"traceback,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, f := range failures {
		if errors.Is(err, f.target) {
			msg := f.message
			if msg == "" {
				msg = err.Error()
			}
			writeJSON(w, r, f.status, &failureResponse{Error: msg})
			return
		}
	}

	if !s.traceback {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	_ = errutil.Handle(r.Context(), err, "stub backend request failed")
	writeJSON(w, r, http.StatusInternalServerError, &failureResponse{
		Error:     err.Error(),
		Traceback: fmt.Sprintf("%+v", err),
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	errutil.WriteJSON(r.Context(), w, status, v)
}
