package utils

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var mobileRegexp = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// RegisterValidations 向gin的binding验证器注册自定义校验规则
func RegisterValidations() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v.RegisterValidation("mobile", validateMobile)
	}
	return nil
}

// validateMobile 校验手机号格式（可选的国家码前缀加7-15位数字）
func validateMobile(fl validator.FieldLevel) bool {
	mobile := fl.Field().String()
	if mobile == "" {
		return true
	}
	return mobileRegexp.MatchString(mobile)
}
