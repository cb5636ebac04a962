package handler

import (
	"errors"
	"net/http"
	"reflect"

	"auromart/internal/apierror"
	"auromart/internal/middleware"
	"auromart/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// lets min/gt/gte tags run against decimal.Decimal fields
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds the JSON body and runs validator tags. On failure it
// writes the response and returns false.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

// bindQuery is bindAndValidate for query strings.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

func validateStruct(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps service error kinds to statuses. Anything unclassified is
// handed to the ErrorHandler middleware, which logs it and answers 500.
func respondError(c *gin.Context, err error) {
	status := 0
	switch {
	case errors.Is(err, apierror.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apierror.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apierror.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apierror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apierror.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, apierror.New("resource already exists"))
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New("resource not found"))
		return
	}
	if status == 0 {
		_ = c.Error(err)
		return
	}
	c.JSON(status, apierror.New(err.Error()))
}

// currentUser reads the caller from the JWT claims set by middleware.JWTAuth.
func currentUser(c *gin.Context) (uuid.UUID, model.Role) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return uuid.Nil, ""
	}
	return claims.UserUUID(), claims.UserRole()
}

// uuidParam parses a path parameter, writing a 400 when it is malformed.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}
