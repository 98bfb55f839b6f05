package model

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// CinemaEraStart 电影诞生日，上映日期不得早于此
var CinemaEraStart = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// RegisterValidations 向 gin 的校验引擎注册自定义规则
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	// cinemaera 上映日期不早于电影诞生日
	if err := v.RegisterValidation("cinemaera", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(Date)
		if !ok {
			return false
		}
		return !d.Before(CinemaEraStart)
	}); err != nil {
		return err
	}

	// pastdate 日期不晚于今天
	return v.RegisterValidation("pastdate", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(Date)
		if !ok {
			return false
		}
		return !d.After(time.Now())
	})
}
