package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

type Response struct {
	Status  string      `json:"Status"`
	Message string      `json:"Message"`
	Data    interface{} `json:"Data,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "Success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status:  "Fail",
		Message: message,
	})
}

func mapErrorToStatus(err error) int {
	var te *domain.TransportError
	switch {
	case errors.Is(err, domain.ErrEmptyBasket), errors.Is(err, domain.ErrCustomerNameRequired):
		return http.StatusBadRequest
	case errors.As(err, &te):
		if te.StatusCode >= 400 && te.StatusCode < 500 {
			return http.StatusUnprocessableEntity
		}
		return http.StatusBadGateway
	case domain.IsMissingDataError(err):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// noticeForSubmit turns the outcome of an order submission into the message
// shown to the visitor.
func noticeForSubmit(err error) domain.Notice {
	var te *domain.TransportError
	switch {
	case err == nil:
		return domain.Notice{Kind: domain.NoticeInfo, Message: "Order created!"}
	case errors.Is(err, domain.ErrEmptyBasket):
		return domain.Notice{Kind: domain.NoticeWarning, Message: "Basket is empty!"}
	case errors.Is(err, domain.ErrCustomerNameRequired):
		return domain.Notice{Kind: domain.NoticeWarning, Message: "Please enter your name before buying."}
	case errors.As(err, &te):
		return domain.Notice{Kind: domain.NoticeError, Message: "Order failed: " + te.Message()}
	}
	return domain.Notice{Kind: domain.NoticeError, Message: "An unexpected error occurred."}
}
