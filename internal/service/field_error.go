package service

import "fmt"

// FieldError 携带逐字段错误信息的校验错误，Unwrap 返回对应的业务哨兵错误
type FieldError struct {
	Err    error
	Fields map[string][]string
}

func newFieldError(err error) *FieldError {
	return &FieldError{Err: err, Fields: make(map[string][]string)}
}

// Add 追加字段错误
func (e *FieldError) Add(field, format string, args ...interface{}) *FieldError {
	e.Fields[field] = append(e.Fields[field], fmt.Sprintf(format, args...))
	return e
}

// Empty 是否没有任何字段错误
func (e *FieldError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *FieldError) Error() string {
	return e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// AssessmentFieldError 提交目标测评不存在或已停用时的字段错误
func AssessmentFieldError(id uint) *FieldError {
	return newFieldError(ErrAssessmentNotFound).
		Add("assessment", "Invalid pk \"%d\" - object does not exist.", id)
}
