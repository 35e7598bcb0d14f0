package api

import "time"

// MsgType is a message type for streamed grading progress
type MsgType string

const (
	StartRunMsg        MsgType = "run_start"
	StartQuestionMsg   MsgType = "question_start"
	FinishArtifactsMsg MsgType = "artifacts_finish"
	FinishBuildMsg     MsgType = "build_finish"
	ReachCaseMsg       MsgType = "case_reach"
	FinishCaseMsg      MsgType = "case_finish"
	SkipTestingMsg     MsgType = "testing_skip"
	FinishQuestionMsg  MsgType = "question_finish"
	FinishRunMsg       MsgType = "run_finish"
)

// Runtime data size constraints for streaming
const (
	MaxRuntimeDataHeight = 40
	MaxRuntimeDataWidth  = 80
)

// Verdict is the outcome of a single fixture case.
type Verdict string

const (
	VerdictPassed      Verdict = "passed"
	VerdictWrongOutput Verdict = "wrong_output"
	VerdictTimedOut    Verdict = "timed_out"
	VerdictCrashed     Verdict = "crashed"
)

// Header is the common header for all streaming messages
type Header struct {
	RunUuid string  `json:"run_uuid"`
	MsgType MsgType `json:"msg_type"`
}

type StartRun struct {
	Header
	SystemInfo  string `json:"system_info"`
	StartedTime string `json:"started_time"`
}

type StartQuestion struct {
	Header
	QuestionId string `json:"question_id"`
}

type FinishArtifacts struct {
	Header
	QuestionId string   `json:"question_id"`
	Missing    []string `json:"missing"`
}

type FinishBuild struct {
	Header
	QuestionId  string       `json:"question_id"`
	Target      int          `json:"target"`
	Recorded    bool         `json:"recorded"`
	Success     bool         `json:"success"`
	RuntimeData *RuntimeData `json:"runtime_data"`
}

type ReachCase struct {
	Header
	QuestionId string `json:"question_id"`
	CaseId     string `json:"case_id"`
}

type FinishCase struct {
	Header
	QuestionId  string       `json:"question_id"`
	CaseId      string       `json:"case_id"`
	Verdict     Verdict      `json:"verdict"`
	RuntimeData *RuntimeData `json:"runtime_data"`
}

type SkipTesting struct {
	Header
	QuestionId string `json:"question_id"`
	Reason     string `json:"reason"`
}

type FinishQuestion struct {
	Header
	QuestionId string  `json:"question_id"`
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"max_score"`
}

type FinishRun struct {
	Header
	Score        float64 `json:"score"`
	ErrorMessage *string `json:"error_message"`
}

func NewHeader(runUuid string, msgType MsgType) Header {
	return Header{
		RunUuid: runUuid,
		MsgType: msgType,
	}
}

func NewStartRun(runUuid, systemInfo string) StartRun {
	return StartRun{
		Header:      NewHeader(runUuid, StartRunMsg),
		SystemInfo:  systemInfo,
		StartedTime: time.Now().Format(time.RFC3339),
	}
}

func NewStartQuestion(runUuid, qid string) StartQuestion {
	return StartQuestion{
		Header:     NewHeader(runUuid, StartQuestionMsg),
		QuestionId: qid,
	}
}

func NewFinishArtifacts(runUuid, qid string, missing []string) FinishArtifacts {
	if missing == nil {
		missing = []string{}
	}
	return FinishArtifacts{
		Header:     NewHeader(runUuid, FinishArtifactsMsg),
		QuestionId: qid,
		Missing:    missing,
	}
}

func NewFinishBuild(runUuid, qid string, target int, recorded, success bool, data *RuntimeData) FinishBuild {
	return FinishBuild{
		Header:      NewHeader(runUuid, FinishBuildMsg),
		QuestionId:  qid,
		Target:      target,
		Recorded:    recorded,
		Success:     success,
		RuntimeData: data,
	}
}

func NewReachCase(runUuid, qid, cid string) ReachCase {
	return ReachCase{
		Header:     NewHeader(runUuid, ReachCaseMsg),
		QuestionId: qid,
		CaseId:     cid,
	}
}

func NewFinishCase(runUuid, qid, cid string, verdict Verdict, data *RuntimeData) FinishCase {
	return FinishCase{
		Header:      NewHeader(runUuid, FinishCaseMsg),
		QuestionId:  qid,
		CaseId:      cid,
		Verdict:     verdict,
		RuntimeData: data,
	}
}

func NewSkipTesting(runUuid, qid, reason string) SkipTesting {
	return SkipTesting{
		Header:     NewHeader(runUuid, SkipTestingMsg),
		QuestionId: qid,
		Reason:     reason,
	}
}

func NewFinishQuestion(runUuid, qid string, score, maxScore float64) FinishQuestion {
	return FinishQuestion{
		Header:     NewHeader(runUuid, FinishQuestionMsg),
		QuestionId: qid,
		Score:      score,
		MaxScore:   maxScore,
	}
}

func NewFinishRun(runUuid string, score float64, errorMessage *string) FinishRun {
	return FinishRun{
		Header:       NewHeader(runUuid, FinishRunMsg),
		Score:        score,
		ErrorMessage: errorMessage,
	}
}
