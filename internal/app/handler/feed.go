package handler

import (
	"net/http"
	"strconv"

	"backoffice/internal/app/logger"
	"backoffice/internal/app/model"
	"backoffice/internal/app/service/feed"
)

type FeedHandler struct {
	feed *feed.Service
}

func NewFeedHandler(fs *feed.Service) *FeedHandler {
	return &FeedHandler{
		feed: fs,
	}
}

// List serves the recent-activity feed. Every call re-queries; switching
// direction or status filter replaces the feed's current view.
func (h *FeedHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Feed.List")
	l.Debug().Send()

	d, err := model.ParseDirection(r.URL.Query().Get("direction"))
	if err != nil {
		WriteError(w, err, http.StatusUnprocessableEntity)
		return
	}

	v := feed.View{
		Direction: d,
		Status:    r.URL.Query().Get("status"),
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, err, http.StatusUnprocessableEntity)
			return
		}
		v.Limit = n
	}

	mm, err := h.feed.List(ctx, v)
	if err != nil {
		l.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	WriteResponse(w, mm, http.StatusOK)
}
