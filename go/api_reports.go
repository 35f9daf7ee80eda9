package posserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	producthttpmapper "github.com/Apurer/retail-pos/internal/domains/products/adapters/http/mapper"
	productdomain "github.com/Apurer/retail-pos/internal/domains/products/domain"
	reporthttpmapper "github.com/Apurer/retail-pos/internal/domains/reports/adapters/http/mapper"
	reportdomain "github.com/Apurer/retail-pos/internal/domains/reports/domain"
	reportports "github.com/Apurer/retail-pos/internal/domains/reports/ports"
	apierrors "github.com/Apurer/retail-pos/internal/shared/errors"
)

type ReportAPI struct {
	service reportports.Service
}

func NewReportAPI(service reportports.Service) ReportAPI {
	return ReportAPI{service: service}
}

// Get /api/v1/reports/dashboard
func (api *ReportAPI) GetDashboard(c *gin.Context) {
	dashboard, err := api.service.Dashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reporthttpmapper.FromDomainDashboard(dashboard))
}

// Get /api/v1/reports/sales?filter=today|all
func (api *ReportAPI) GetSalesReport(c *gin.Context) {
	filter, err := reportdomain.ParseSalesFilter(c.Query("filter"))
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	report, err := api.service.Sales(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reporthttpmapper.FromDomainSalesReport(report))
}

// Get /api/v1/reports/inventory?filter=all|low|out
func (api *ReportAPI) GetInventoryReport(c *gin.Context) {
	filter, err := productdomain.ParseInventoryFilter(c.Query("filter"))
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	inventory, err := api.service.Inventory(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainInventory(inventory))
}
