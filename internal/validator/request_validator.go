package validator

import (
	playground "github.com/go-playground/validator/v10"
)

// RequestValidator はechoのValidatorフック実装。
// ここを通ったリクエストDTOは型も必須項目も確定済みで、
// usecaseには検証済みの値だけが届く。
type RequestValidator struct {
	validate *playground.Validate
}

func New() *RequestValidator {
	return &RequestValidator{validate: playground.New()}
}

func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
