package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// Manager returns today's snapshot across all employees
	Manager(w http.ResponseWriter, r *http.Request)
	// Employee returns one user's total hours and latest records
	Employee(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// Manager handles GET /dashboard/manager
func (h *dashboardHandlerImpl) Manager(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.Manager(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Employee handles GET /dashboard/employee/{userId}
func (h *dashboardHandlerImpl) Employee(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r, "userId")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.Employee(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
