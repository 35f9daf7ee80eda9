package posserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	employeeapp "github.com/Apurer/retail-pos/internal/domains/employees/application"
	employeeports "github.com/Apurer/retail-pos/internal/domains/employees/ports"
	orderapp "github.com/Apurer/retail-pos/internal/domains/orders/application"
	orderports "github.com/Apurer/retail-pos/internal/domains/orders/ports"
	productapp "github.com/Apurer/retail-pos/internal/domains/products/application"
	productports "github.com/Apurer/retail-pos/internal/domains/products/ports"
	reportapp "github.com/Apurer/retail-pos/internal/domains/reports/application"
	salesapp "github.com/Apurer/retail-pos/internal/domains/sales/application"
	salesdomain "github.com/Apurer/retail-pos/internal/domains/sales/domain"
	salesports "github.com/Apurer/retail-pos/internal/domains/sales/ports"
	supplierapp "github.com/Apurer/retail-pos/internal/domains/suppliers/application"
	supplierports "github.com/Apurer/retail-pos/internal/domains/suppliers/ports"
	userapp "github.com/Apurer/retail-pos/internal/domains/users/application"
	userports "github.com/Apurer/retail-pos/internal/domains/users/ports"
	apierrors "github.com/Apurer/retail-pos/internal/shared/errors"
	"github.com/Apurer/retail-pos/internal/shared/validation"
)

// responder maps service errors to problem responses. Order matters: OutOfStock wraps product ErrNotFound.
var responder = apierrors.NewResponder(
	outOfStockMapper,
	apierrors.SentinelMapper(salesdomain.ErrOutOfStock, apierrors.ErrOutOfStock),
	apierrors.SentinelMapper(salesdomain.ErrEmptyCart, apierrors.ErrEmptyCart),
	apierrors.SentinelMapper(salesdomain.ErrMissingCustomerName, apierrors.ErrMissingCustomerName),
	apierrors.SentinelMapper(salesdomain.ErrCheckoutInProgress, apierrors.ErrConflict),
	apierrors.SentinelMapper(userports.ErrInvalidCredentials, apierrors.ErrInvalidCredentials),
	apierrors.SentinelMapper(userports.ErrUnauthenticated, apierrors.ErrUnauthorized),
	apierrors.SentinelMapper(userports.ErrUsernameTaken, apierrors.ErrConflict),
	notFoundMapper,
	invalidInputMapper,
	apierrors.PersistenceMapper,
)

// outOfStockMapper reports the short product when the error still carries it.
func outOfStockMapper(err error) (apierrors.ProblemDetail, bool) {
	var shortage *salesdomain.OutOfStockError
	if errors.As(err, &shortage) {
		return apierrors.NewOutOfStockProblem(shortage.ProductID, err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func notFoundMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, productports.ErrNotFound),
		errors.Is(err, supplierports.ErrNotFound),
		errors.Is(err, employeeports.ErrNotFound),
		errors.Is(err, orderports.ErrNotFound),
		errors.Is(err, userports.ErrNotFound),
		errors.Is(err, salesports.ErrCartNotFound),
		errors.Is(err, salesdomain.ErrLineNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func invalidInputMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, productapp.ErrInvalidInput),
		errors.Is(err, supplierapp.ErrInvalidInput),
		errors.Is(err, employeeapp.ErrInvalidInput),
		errors.Is(err, orderapp.ErrInvalidInput),
		errors.Is(err, userapp.ErrInvalidInput),
		errors.Is(err, salesapp.ErrInvalidInput),
		errors.Is(err, reportapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

var payloadValidator validation.Validator = validation.NewDefaultValidator()

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

// respondServiceError maps an error returned by any bounded context service.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// bindPayload decodes the JSON body into payload and runs struct validation.
// A body that does not decode, such as a non-numeric price, is a validation problem.
func bindPayload(c *gin.Context, payload any) bool {
	if err := c.ShouldBindJSON(payload); err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return false
	}
	if err := payloadValidator.Validate(payload); err != nil {
		if fields := validation.FieldErrors(err); fields != nil {
			respondProblem(c, apierrors.NewValidationProblem(fields))
			return false
		}
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
