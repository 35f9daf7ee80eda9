package posserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	employeehttpmapper "github.com/Apurer/retail-pos/internal/domains/employees/adapters/http/mapper"
	employeeports "github.com/Apurer/retail-pos/internal/domains/employees/ports"
	apierrors "github.com/Apurer/retail-pos/internal/shared/errors"
)

type EmployeeAPI struct {
	service employeeports.Service
}

func NewEmployeeAPI(service employeeports.Service) EmployeeAPI {
	return EmployeeAPI{service: service}
}

// Post /api/v1/employees
func (api *EmployeeAPI) AddEmployee(c *gin.Context) {
	var payload employeehttpmapper.EmployeePayload
	if !bindPayload(c, &payload) {
		return
	}
	employee, err := employeehttpmapper.ToDomainEmployee(0, payload)
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	saved, err := api.service.Add(c.Request.Context(), employee)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, employeehttpmapper.FromDomainEmployee(saved))
}

// Get /api/v1/employees
func (api *EmployeeAPI) ListEmployees(c *gin.Context) {
	employees, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, employeehttpmapper.FromDomainEmployees(employees))
}

// Get /api/v1/employees/search?q=
func (api *EmployeeAPI) SearchEmployees(c *gin.Context) {
	employees, err := api.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, employeehttpmapper.FromDomainEmployees(employees))
}

// Get /api/v1/employees/:employeeId
func (api *EmployeeAPI) GetEmployeeById(c *gin.Context) {
	id, ok := parseIDParam(c, "employeeId")
	if !ok {
		return
	}
	employee, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, employeehttpmapper.FromDomainEmployee(employee))
}

// Put /api/v1/employees/:employeeId
func (api *EmployeeAPI) UpdateEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "employeeId")
	if !ok {
		return
	}
	var payload employeehttpmapper.EmployeePayload
	if !bindPayload(c, &payload) {
		return
	}
	employee, err := employeehttpmapper.ToDomainEmployee(id, payload)
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	updated, err := api.service.Update(c.Request.Context(), employee)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, employeehttpmapper.FromDomainEmployee(updated))
}

// Delete /api/v1/employees/:employeeId
func (api *EmployeeAPI) DeleteEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "employeeId")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	noContent(c)
}
