package delivery_http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"yatube-api/internal/custom_errors"
	"yatube-api/internal/logger"
	group_service "yatube-api/internal/service/group"
)

type GroupHandler struct {
	groups group_service.Service
	log    *logger.Logger
}

func NewGroupHandler(groups group_service.Service, log *logger.Logger) *GroupHandler {
	return &GroupHandler{groups: groups, log: log}
}

func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := parsePageParams(r)
	if err != nil {
		RespondWithDetail(w, r, http.StatusBadRequest, "Invalid page.")
		return
	}

	groups, total, err := h.groups.ListGroups(r.Context(), *params.filters())
	if err != nil {
		h.log.Error("Failed to list groups", slog.String("error", err.Error()))
		RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	results := newGroupResponseList(groups)
	if !params.paged {
		RespondWithJSON(w, r, http.StatusOK, results)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, newPageEnvelope(r, params, total, results))
}

func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		RespondWithDetail(w, r, http.StatusNotFound, "Group not found.")
		return
	}

	group, err := h.groups.GetGroupByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrGroupNotFound) {
			RespondWithDetail(w, r, http.StatusNotFound, "Group not found.")
			return
		}
		h.log.Error("Failed to get group", slog.String("error", err.Error()), slog.Int64("id", id))
		RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, newGroupResponse(group))
}
