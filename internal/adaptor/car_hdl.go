package adaptor

import (
	"net/http"
	"time"

	"car-rental/internal/dto/request"
	"car-rental/internal/usecase"
	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

type CarHandler struct {
	service usecase.CarService
	log     *zap.Logger
}

func NewCarHandler(service usecase.CarService, log *zap.Logger) *CarHandler {
	return &CarHandler{
		service: service,
		log:     log.With(zap.String("handler", "car")),
	}
}

// ListCars handles GET /api/cars (public)
func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := request.ListCarsRequest{
		PaginatedRequest: paginationFromQuery(r),
		City:             query.Get("city"),
		State:            query.Get("state"),
		Type:             query.Get("type"),
		Transmission:     query.Get("transmission"),
		FuelType:         query.Get("fuelType"),
		MinPrice:         utils.ParseFloatPtr(query.Get("minPrice")),
		MaxPrice:         utils.ParseFloatPtr(query.Get("maxPrice")),
		SeatingCapacity:  utils.ParseInt(query.Get("seatingCapacity"), 0),
		Availability:     utils.ParseBoolPtr(query.Get("availability")),
		Search:           query.Get("search"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.ListCars(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "list cars")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// GetCar handles GET /api/cars/{id} (public)
func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	carID, ok := pathID(w, r, "car")
	if !ok {
		return
	}

	resp, err := h.service.GetCar(r.Context(), carID)
	if err != nil {
		handleServiceError(h.log, w, err, "get car")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// CheckAvailability handles GET /api/cars/availability/{id}?startDate=&endDate= (public)
func (h *CarHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	carID, ok := pathID(w, r, "car")
	if !ok {
		return
	}

	query := r.URL.Query()
	var start, end *time.Time
	if query.Get("startDate") != "" || query.Get("endDate") != "" {
		s, errStart := utils.ParseDate(query.Get("startDate"))
		e, errEnd := utils.ParseDate(query.Get("endDate"))
		if errStart != nil || errEnd != nil {
			utils.ResponseBadRequest(w, "startDate and endDate must be ISO-8601 dates", nil)
			return
		}
		start, end = &s, &e
	}

	resp, err := h.service.CheckAvailability(r.Context(), carID, start, end)
	if err != nil {
		handleServiceError(h.log, w, err, "check car availability")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// CreateCar handles POST /api/cars (admin)
func (h *CarHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req request.CreateCarRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.CreateCar(r.Context(), caller, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create car")
		return
	}

	utils.ResponseCreated(w, "Car created", resp)
}

// UpdateCar handles PUT /api/cars/{id} (admin)
func (h *CarHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	carID, ok := pathID(w, r, "car")
	if !ok {
		return
	}

	var req request.UpdateCarRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.UpdateCar(r.Context(), carID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update car")
		return
	}

	utils.ResponseSuccess(w, "Car updated", resp)
}

// DeleteCar handles DELETE /api/cars/{id} (admin)
func (h *CarHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	carID, ok := pathID(w, r, "car")
	if !ok {
		return
	}

	if err := h.service.DeleteCar(r.Context(), carID); err != nil {
		handleServiceError(h.log, w, err, "delete car")
		return
	}

	utils.ResponseSuccess(w, "Car deleted", nil)
}

// AddReview handles POST /api/cars/{id}/reviews (protected)
func (h *CarHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	carID, ok := pathID(w, r, "car")
	if !ok {
		return
	}

	var req request.ReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.AddCarReview(r.Context(), caller, carID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "add car review")
		return
	}

	utils.ResponseCreated(w, "Review added", resp)
}
