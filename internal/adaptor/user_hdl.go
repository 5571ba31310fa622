package adaptor

import (
	"net/http"

	"car-rental/internal/dto/request"
	"car-rental/internal/usecase"
	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// UpdateProfile handles PUT /api/users/profile (protected)
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req request.UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.UpdateProfile(r.Context(), caller.UserID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated", resp)
}

// ListUsers handles GET /api/users (admin)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)

	resp, err := h.service.ListUsers(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// GetUser handles GET /api/users/{id} (admin)
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "user")
	if !ok {
		return
	}

	resp, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// UpdateUserRole handles PUT /api/users/{id}/role (admin)
func (h *UserHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "user")
	if !ok {
		return
	}

	var req request.UpdateUserRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.UpdateUserRole(r.Context(), caller, userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update user role")
		return
	}

	utils.ResponseSuccess(w, "User role updated", resp)
}

// SetUserStatus handles PUT /api/users/{id}/status (admin)
func (h *UserHandler) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "user")
	if !ok {
		return
	}

	var req request.UpdateUserStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.SetUserActive(r.Context(), caller, userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update user status")
		return
	}

	utils.ResponseSuccess(w, "User status updated", resp)
}

func paginationFromQuery(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: min(utils.ParseInt(query.Get("limit"), request.DefaultPerPage), request.MaxPerPage),
	}
}
