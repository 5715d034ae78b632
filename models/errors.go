package models

import (
	"errors"
	"fmt"
)

// 实体校验错误
var (
	ErrEmptyName           = errors.New("名称不能为空")
	ErrInvalidAccountType  = errors.New("无效的账户类型")
	ErrInvalidCategoryType = errors.New("无效的类别类型")
	ErrInvalidTxType       = errors.New("无效的交易类型")
	ErrInvalidPeriod       = errors.New("无效的预算周期")
	ErrNegativeAmount      = errors.New("金额不能为负数")
	ErrMissingAccount      = errors.New("缺少账户")
	ErrMissingCategory     = errors.New("缺少类别")
	ErrMissingTarget       = errors.New("转账缺少目标账户")
	ErrSameAccountTransfer = errors.New("转出账户与转入账户不能相同")
	ErrUnexpectedTarget    = errors.New("只有转账可以指定目标账户")
	ErrSelfParent          = errors.New("类别不能以自身为父类别")
	ErrInvalidDateRange    = errors.New("结束时间不能早于开始时间")
)

// ValidationError 字段校验错误
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// IsValidationError 判断是否为校验错误
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
