package adaptor

import (
	"net/http"

	"car-rental/internal/dto/request"
	"car-rental/internal/usecase"
	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CheckAvailability handles GET /api/bookings/availability-check?car=&startDate=&endDate= (public)
func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	start, errStart := utils.ParseDate(query.Get("startDate"))
	end, errEnd := utils.ParseDate(query.Get("endDate"))
	if errStart != nil || errEnd != nil {
		utils.ResponseBadRequest(w, "startDate and endDate must be ISO-8601 dates", nil)
		return
	}

	req := request.AvailabilityRequest{
		CarID:     query.Get("car"),
		StartDate: start,
		EndDate:   end,
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.CheckAvailability(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.CreateBooking(r.Context(), caller, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created", resp)
}

// ListBookings handles GET /api/bookings (protected; admins see every booking)
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := request.ListBookingsRequest{
		PaginatedRequest: paginationFromQuery(r),
		Status:           query.Get("status"),
		PaymentStatus:    query.Get("paymentStatus"),
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.ListBookings(r.Context(), caller, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// GetBooking handles GET /api/bookings/{id} (protected)
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r, "booking")
	if !ok {
		return
	}

	resp, err := h.service.GetBooking(r.Context(), caller, bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// UpdateStatus handles PUT /api/bookings/{id}/status (protected)
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r, "booking")
	if !ok {
		return
	}

	var req request.UpdateBookingStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.UpdateStatus(r.Context(), caller, bookingID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "Booking status updated", resp)
}

// UpdatePaymentStatus handles PUT /api/bookings/{id}/payment (admin)
func (h *BookingHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r, "booking")
	if !ok {
		return
	}

	var req request.UpdatePaymentStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.UpdatePaymentStatus(r.Context(), caller, bookingID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update payment status")
		return
	}

	utils.ResponseSuccess(w, "Payment status updated", resp)
}

// AddReview handles POST /api/bookings/{id}/review (protected)
func (h *BookingHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r, "booking")
	if !ok {
		return
	}

	var req request.ReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.AddReview(r.Context(), caller, bookingID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "add booking review")
		return
	}

	utils.ResponseCreated(w, "Review added", resp)
}

// UpdateMileage handles PUT /api/bookings/{id}/mileage (admin)
func (h *BookingHandler) UpdateMileage(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r, "booking")
	if !ok {
		return
	}

	var req request.UpdateMileageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.UpdateMileage(r.Context(), caller, bookingID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update mileage")
		return
	}

	utils.ResponseSuccess(w, "Mileage updated", resp)
}

// AddDamageReport handles POST /api/bookings/{id}/damage (admin)
func (h *BookingHandler) AddDamageReport(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r, "booking")
	if !ok {
		return
	}

	var req request.DamageReportRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.AddDamageReport(r.Context(), caller, bookingID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "add damage report")
		return
	}

	utils.ResponseCreated(w, "Damage report added", resp)
}
