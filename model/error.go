package model

import (
	"fmt"
	"regexp"

	log "github.com/sirupsen/logrus"

	"github.com/AmineMekki01/rag-app-prod-example/constant"
)

const (
	ErrorParams           = 200001
	ErrorExtraction       = 200002
	ErrorIndexing         = 200003
	ErrorCompletion       = 200004
	ErrorNoDocuments      = 200005
	ErrorStreamProcessing = 200006
	ErrorDB               = 200007
	ErrorNotFound         = 200008
	ErrorInternal         = 200009
	ErrorNewRepo          = 200010
	ErrorSearch           = 200011
)

var ErrorMessages = map[int]string{
	ErrorParams:           "invalid request parameters",
	ErrorExtraction:       constant.UnsupportedFileTypeDetail,
	ErrorIndexing:         "failed to index document into the vector store",
	ErrorCompletion:       constant.OpenAICallError,
	ErrorNoDocuments:      "no documents found for query",
	ErrorStreamProcessing: "Failed Processing",
	ErrorDB:               "db error",
	ErrorNotFound:         "not found",
	ErrorInternal:         "internal error",
	ErrorNewRepo:          "failed to create repository",
	ErrorSearch:           "failed to search the vector store",
}

type Error struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	InnerError error  `json:"inner_error"`
}

func (err Error) Error() string {
	return err.Message
}

func NewError(code int, innerError error) *Error {
	if innerError != nil {
		var re = regexp.MustCompile(`[\n\t]+`)
		innerErrorString := re.ReplaceAllString(fmt.Sprintf("%+v", innerError), " ")
		log.Errorf("NewError code:%d, message:%s, innerError:%+v\n", code, ErrorMessages[code], innerErrorString)
	}
	return &Error{
		Code:       code,
		Message:    ErrorMessages[code],
		InnerError: nil,
	}
}

func NewErrorWithMessage(code int, message string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		InnerError: nil,
	}
}
