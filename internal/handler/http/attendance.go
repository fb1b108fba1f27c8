package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	EmployeeRecords(w http.ResponseWriter, r *http.Request)
	TodayStatus(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// actingUser resolves the user a check-in/check-out applies to.
// An explicit userId must match the caller.
func actingUser(r *http.Request, requested string) (string, error) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return "", auth.ErrInvalidToken
	}
	if requested != "" && requested != identity.UserID {
		return "", user.ErrForbidden
	}
	return identity.UserID, nil
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest

	if err := decodeOptionalJSON(r, &req); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID, err := actingUser(r, req.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.UserID = userID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest

	if err := decodeOptionalJSON(r, &req); err != nil {
		slog.Error("CheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID, err := actingUser(r, req.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.UserID = userID

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}

// History handles GET /attendance/my-history/{userId}
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r, "userId")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.History(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Today handles GET /attendance/today/{userId}
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r, "userId")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Today(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EmployeeRecords handles GET /attendance/employee/{id}
func (h *attendanceHandlerImpl) EmployeeRecords(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.History(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TodayStatus handles GET /attendance/today-status
func (h *attendanceHandlerImpl) TodayStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.TodayStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
