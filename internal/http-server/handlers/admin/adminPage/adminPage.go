package adminPage

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"slotBooker/internal/lib/api/response"
	"slotBooker/internal/lib/logger/sl"
	"slotBooker/internal/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingsLister
type BookingsLister interface {
	ListBookings(ctx context.Context) ([]models.Booking, error)
}

type pageData struct {
	Key      string
	Bookings []models.Booking
}

var page = template.Must(template.New("admin").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Bookings admin</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: .4rem .6rem; text-align: left; }
th { background: #f3f3f3; }
</style>
</head>
<body>
<h1>Bookings ({{len .Bookings}})</h1>
<p><a href="/admin/export?key={{.Key}}">Download xlsx</a></p>
{{if .Bookings}}
<table>
<thead><tr><th>ID</th><th>Student</th><th>Meeting</th><th>Day</th><th>Time</th><th>Created</th><th></th></tr></thead>
<tbody>
{{range .Bookings}}<tr id="booking-{{.ID}}">
<td>{{.ID}}</td><td>{{.StudentName}}</td><td>{{.MeetingType}}</td><td>{{.Day}}</td><td>{{.Time}}</td>
<td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td>
<td><button data-id="{{.ID}}">Delete</button></td>
</tr>
{{end}}</tbody>
</table>
{{else}}
<p>No bookings yet.</p>
{{end}}
<script>
const adminKey = {{.Key}};
document.querySelectorAll("button[data-id]").forEach(function (btn) {
  btn.addEventListener("click", async function () {
    const id = btn.dataset.id;
    if (!confirm("Delete booking " + id + "?")) return;
    const res = await fetch("/api/bookings/" + id + "?key=" + encodeURIComponent(adminKey), { method: "DELETE" });
    if (res.ok) {
      document.getElementById("booking-" + id).remove();
    } else {
      const data = await res.json().catch(function () { return {}; });
      alert(data.error || ("HTTP " + res.status));
    }
  });
});
</script>
</body>
</html>
`))

// New renders the bookings table. The admin key middleware runs first, so the
// key in the query is the valid one and is reused for delete calls.
func New(log *slog.Logger, lister BookingsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.adminPage.New"

		log := log.With(slog.String("op", op))

		bookings, err := lister.ListBookings(r.Context())
		if err != nil {
			log.Error("failed to get bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get bookings"))
			return
		}

		var buf bytes.Buffer
		if err = page.Execute(&buf, pageData{
			Key:      r.URL.Query().Get("key"),
			Bookings: bookings,
		}); err != nil {
			log.Error("failed to render admin page", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to render admin page"))
			return
		}

		render.HTML(w, r, buf.String())
	}
}
