package createBooking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"slotBooker/internal/lib/api/response"
	"slotBooker/internal/lib/api/validate"
	"slotBooker/internal/lib/logger/sl"
	"slotBooker/internal/metrics"
	"slotBooker/internal/models"
	"slotBooker/internal/storage"
)

type BookingRequest struct {
	StudentName string `json:"student_name" validate:"required,min=2,max=50,personname"`
	MeetingType string `json:"meeting_type" validate:"required,oneof=face-to-face zoom"`
	Day         string `json:"day" validate:"required,oneof=Monday Wednesday Friday"`
	Time        string `json:"time" validate:"required,slot"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCreator
type BookingCreator interface {
	CreateBooking(ctx context.Context, booking models.Booking) (models.Booking, error)
}

func New(log *slog.Logger, booking BookingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.createBooking.New"

		log := log.With(slog.String("op", op))

		var req BookingRequest

		err := render.DecodeJSON(r.Body, &req)
		if errors.Is(err, io.EOF) {
			log.Error("request body is empty")
			metrics.IncBookingCreated(metrics.StatusInvalid)
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("empty request"))
			return
		}
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			metrics.IncBookingCreated(metrics.StatusInvalid)
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		req.StudentName = strings.TrimSpace(req.StudentName)

		log.Info("request body decoded", slog.Any("request", req))

		if err = validate.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				metrics.IncBookingCreated(metrics.StatusInvalid)
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		created, err := booking.CreateBooking(r.Context(), models.Booking{
			StudentName: req.StudentName,
			MeetingType: req.MeetingType,
			Day:         req.Day,
			Time:        req.Time,
		})
		if errors.Is(err, storage.ErrSlotConflict) {
			log.Info("time slot already booked", slog.String("day", req.Day), slog.String("time", req.Time))
			metrics.IncBookingCreated(metrics.StatusConflict)
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("time slot already booked"))
			return
		}
		if err != nil {
			log.Error("failed to create booking", sl.Err(err))
			metrics.IncBookingCreated(metrics.StatusError)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create booking"))
			return
		}

		log.Info("booking created", slog.Int64("id", created.ID))
		metrics.IncBookingCreated(metrics.StatusCreated)

		responseCreated(w, r, created)
	}
}

func responseCreated(w http.ResponseWriter, r *http.Request, booking models.Booking) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, booking)
}
