package wage

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fleetwage/fleetwage/pkg/payrate"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type CalculationRequestDTO struct {
	ShiftId   int       `json:"shiftId"`
	CompanyId int       `json:"companyId"`
	DriverId  int       `json:"driverId"`
	Arrival   time.Time `json:"arrival"`
	Departure time.Time `json:"departure"`
}

type BreakdownDTO struct {
	Uid                string    `json:"uid"`
	ShiftId            int       `json:"shiftId"`
	CompanyId          int       `json:"companyId"`
	DriverId           int       `json:"driverId"`
	RegularMinutes     int       `json:"regularMinutes"`
	NightMinutes       int       `json:"nightMinutes"`
	WeekendMinutes     int       `json:"weekendMinutes"`
	BankHolidayMinutes int       `json:"bankHolidayMinutes"`
	OvertimeMinutes    int       `json:"overtimeMinutes"`
	RegularPay         string    `json:"regularPay"`
	NightPay           string    `json:"nightPay"`
	WeekendPay         string    `json:"weekendPay"`
	BankHolidayPay     string    `json:"bankHolidayPay"`
	OvertimePay        string    `json:"overtimePay"`
	TotalPay           string    `json:"totalPay"`
	CalculatedAt       time.Time `json:"calculatedAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	log.Debug("Calculating wages for shift")
	w.Header().Set("Content-Type", "application/json")

	var requestDTO CalculationRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&requestDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	breakdown, err := h.service.Calculate(r.Context(), CalculationInput{
		ShiftId:   requestDTO.ShiftId,
		CompanyId: requestDTO.CompanyId,
		DriverId:  requestDTO.DriverId,
		Arrival:   requestDTO.Arrival,
		Departure: requestDTO.Departure,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidShift) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, payrate.ErrNoActivePolicy) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(BreakdownToDTO(breakdown)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	shiftIdString := vars["shiftId"]
	shiftId, err := strconv.ParseInt(shiftIdString, 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	breakdown, err := h.service.GetCalculation(r.Context(), int(shiftId))
	if err != nil {
		if errors.Is(err, ErrCalculationNotFound) {
			http.Error(w, "Wage calculation not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(BreakdownToDTO(breakdown)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func BreakdownToDTO(breakdown Breakdown) BreakdownDTO {
	return BreakdownDTO{
		Uid:                breakdown.Uid.String(),
		ShiftId:            breakdown.ShiftId,
		CompanyId:          breakdown.CompanyId,
		DriverId:           breakdown.DriverId,
		RegularMinutes:     breakdown.Minutes.Regular,
		NightMinutes:       breakdown.Minutes.Night,
		WeekendMinutes:     breakdown.Minutes.Weekend,
		BankHolidayMinutes: breakdown.Minutes.BankHoliday,
		OvertimeMinutes:    breakdown.OvertimeMinutes,
		RegularPay:         breakdown.RegularPay.StringFixed(2),
		NightPay:           breakdown.NightPay.StringFixed(2),
		WeekendPay:         breakdown.WeekendPay.StringFixed(2),
		BankHolidayPay:     breakdown.BankHolidayPay.StringFixed(2),
		OvertimePay:        breakdown.OvertimePay.StringFixed(2),
		TotalPay:           breakdown.TotalPay.StringFixed(2),
		CalculatedAt:       breakdown.CalculatedAt,
	}
}
