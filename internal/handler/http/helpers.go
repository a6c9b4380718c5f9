package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dcastillo/user-service/internal/handler/http/dto"
)

// JSONSuccess writes a success envelope with the given payload and message.
func JSONSuccess(c *gin.Context, statusCode int, response interface{}, msg string) {
	c.JSON(statusCode, dto.Envelope{Status: true, Response: response, Msg: msg})
}

// JSONError writes a failure envelope. Response defaults to an empty object
// when nil so the envelope shape stays uniform.
func JSONError(c *gin.Context, statusCode int, response interface{}, msg string) {
	if response == nil {
		response = gin.H{}
	}
	c.JSON(statusCode, dto.Envelope{Status: false, Response: response, Msg: msg})
}

// BindAndValidate binds the JSON request body and reports a validation
// failure in the uniform envelope.
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		JSONError(c, http.StatusBadRequest, gin.H{"detail": err.Error()}, "Error in data input")
		return err
	}
	return nil
}
