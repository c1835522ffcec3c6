package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// RegisterValidators adds the "uzphone" tag to gin's binding validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("uzphone", func(fl validator.FieldLevel) bool {
		return domain.ValidPhone(fl.Field().String())
	})
}

// bindJSON binds the request body and answers 400 on failure. A failed
// uzphone tag is reported as domain.ErrInvalidPhone.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "uzphone" {
				badRequest(c, domain.ErrInvalidPhone)
				return false
			}
		}
	}
	badRequest(c, err)
	return false
}
