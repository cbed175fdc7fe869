package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type payload struct {
	Email string `validate:"required,email"`
	Count int    `validate:"gte=0"`
}

func TestValidateStruct(t *testing.T) {
	errs := ValidateStruct(payload{Email: "not-an-email", Count: -1})
	assert.Len(t, errs, 2)
	assert.Equal(t, "Email", errs[0].Field)
	assert.Equal(t, "Email must be a valid email address", errs[0].Message)

	errs = ValidateStruct(payload{Email: "desk@example.com", Count: 2})
	assert.Empty(t, errs)
}

func TestBindingErrors(t *testing.T) {
	err := validator.New().Struct(payload{Email: "", Count: 0})
	details := BindingErrors(err)
	assert.Len(t, details, 1)
	assert.Equal(t, "required", details[0].Tag)

	assert.Nil(t, BindingErrors(errors.New("unexpected EOF")))
	assert.Nil(t, BindingErrors(nil))
}

func TestRespondWithValidationErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithValidationErrors(c, ValidateStruct(payload{Email: "nope", Count: -1}))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error   string            `json:"error"`
		Details []ValidationError `json:"details"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation failed", body.Error)
	assert.Len(t, body.Details, 2)
}
