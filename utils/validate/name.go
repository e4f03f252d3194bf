package validate

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// TagPersonName 可用於 binding tag，例如 `binding:"required,personname"`
const TagPersonName = "personname"

// 英文字母組成的單字，單字之間只能用一個空白、連字號或撇號分隔
var namePattern = regexp.MustCompile(`^[a-zA-Z]+(?:[' -][a-zA-Z]+)*$`)

// ValidateName 作者名稱檢查
func ValidateName(name string) bool {
	return namePattern.MatchString(name)
}

var registerOnce sync.Once

// RegisterValidations 把自訂規則掛到 gin 的 validator，重複呼叫無副作用
func RegisterValidations() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation(TagPersonName, func(fl validator.FieldLevel) bool {
				return ValidateName(fl.Field().String())
			})
		}
	})
}
