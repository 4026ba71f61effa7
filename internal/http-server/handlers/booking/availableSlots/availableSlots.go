package availableSlots

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"slotBooker/internal/lib/api/response"
	"slotBooker/internal/lib/logger/sl"
	"slotBooker/internal/schedule"
)

type SlotsResponse struct {
	Day   string   `json:"day"`
	Slots []string `json:"slots"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SlotsGetter
type SlotsGetter interface {
	AvailableSlots(ctx context.Context, day string) ([]string, error)
}

func New(log *slog.Logger, slots SlotsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.availableSlots.New"

		log := log.With(slog.String("op", op))

		day := chi.URLParam(r, "day")
		if day == "" {
			log.Error("day is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("day is required"))
			return
		}

		// Обработка неизвестного дня до обращения к хранилищу
		if !schedule.IsValidDay(day) {
			log.Error("invalid day", slog.String("day", day))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid day"))
			return
		}

		log = log.With(slog.String("day", day))

		free, err := slots.AvailableSlots(r.Context(), day)
		if err != nil {
			log.Error("failed to get available slots", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get available slots"))
			return
		}

		log.Info("available slots retrieved", slog.Int("count", len(free)))

		responseOK(w, r, day, free)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, day string, slots []string) {
	if slots == nil {
		slots = []string{}
	}

	render.JSON(w, r, SlotsResponse{
		Day:   day,
		Slots: slots,
	})
}
