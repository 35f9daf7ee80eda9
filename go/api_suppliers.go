package posserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	supplierhttpmapper "github.com/Apurer/retail-pos/internal/domains/suppliers/adapters/http/mapper"
	supplierports "github.com/Apurer/retail-pos/internal/domains/suppliers/ports"
	apierrors "github.com/Apurer/retail-pos/internal/shared/errors"
)

type SupplierAPI struct {
	service supplierports.Service
}

func NewSupplierAPI(service supplierports.Service) SupplierAPI {
	return SupplierAPI{service: service}
}

// Post /api/v1/suppliers
func (api *SupplierAPI) AddSupplier(c *gin.Context) {
	var payload supplierhttpmapper.SupplierPayload
	if !bindPayload(c, &payload) {
		return
	}
	supplier, err := supplierhttpmapper.ToDomainSupplier(0, payload)
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	saved, err := api.service.Add(c.Request.Context(), supplier)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, supplierhttpmapper.FromDomainSupplier(saved))
}

// Get /api/v1/suppliers
func (api *SupplierAPI) ListSuppliers(c *gin.Context) {
	suppliers, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplierhttpmapper.FromDomainSuppliers(suppliers))
}

// Get /api/v1/suppliers/search?q=
// Matches name, email or phone
func (api *SupplierAPI) SearchSuppliers(c *gin.Context) {
	suppliers, err := api.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplierhttpmapper.FromDomainSuppliers(suppliers))
}

// Get /api/v1/suppliers/:supplierId
func (api *SupplierAPI) GetSupplierById(c *gin.Context) {
	id, ok := parseIDParam(c, "supplierId")
	if !ok {
		return
	}
	supplier, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplierhttpmapper.FromDomainSupplier(supplier))
}

// Put /api/v1/suppliers/:supplierId
func (api *SupplierAPI) UpdateSupplier(c *gin.Context) {
	id, ok := parseIDParam(c, "supplierId")
	if !ok {
		return
	}
	var payload supplierhttpmapper.SupplierPayload
	if !bindPayload(c, &payload) {
		return
	}
	supplier, err := supplierhttpmapper.ToDomainSupplier(id, payload)
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	updated, err := api.service.Update(c.Request.Context(), supplier)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplierhttpmapper.FromDomainSupplier(updated))
}

// Delete /api/v1/suppliers/:supplierId
// Products naming the supplier are left as they are
func (api *SupplierAPI) DeleteSupplier(c *gin.Context) {
	id, ok := parseIDParam(c, "supplierId")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	noContent(c)
}
