package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/udisondev/slays/internal/flags"
	"github.com/udisondev/slays/internal/game/slay"
	"github.com/udisondev/slays/internal/model"
	"github.com/udisondev/slays/internal/notify"
)

var validate = validator.New()

// attackRequest describes one blow of an ego weapon against a race.
type attackRequest struct {
	EgoID  int32 `json:"ego_id" validate:"required,gt=0"`
	RaceID int32 `json:"race_id" validate:"required,gt=0"`
	// Visible defaults to true.
	Visible   *bool `json:"visible"`
	Real      bool  `json:"real"`
	KnownOnly bool  `json:"known_only"`
}

type attackResponse struct {
	Source     string   `json:"source"`
	Multiplier int      `json:"multiplier"`
	Verb       string   `json:"verb,omitempty"`
	Messages   []string `json:"messages"`
	Lore       []string `json:"lore"`
	// AllKnown is true once every rune on the weapon has been learned.
	AllKnown bool `json:"all_known"`
}

type loreResponse struct {
	RaceID int32    `json:"race_id"`
	Race   string   `json:"race"`
	Flags  []string `json:"flags"`
}

func raceFlagNames(s flags.Set) []string {
	fs := s.Flags()
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, model.RaceFlagName(f))
	}
	return out
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.New("invalid request format")
	}
	e := verrs[0]
	return fmt.Errorf("field %s failed on %s", e.Field(), e.Tag())
}

// POST /api/v1/attacks
//
// Each request wields a freshly made item, so only lore outlives it.
func (h *handlers) attack(w http.ResponseWriter, r *http.Request) {
	var req attackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, formatValidationError(err))
		return
	}

	ego := h.deps.Ego(req.EgoID)
	if ego == nil {
		respondError(w, http.StatusNotFound, fmt.Errorf("ego %d not found", req.EgoID))
		return
	}
	race := h.deps.Race(req.RaceID)
	if race == nil {
		respondError(w, http.StatusNotFound, fmt.Errorf("race %d not found", req.RaceID))
		return
	}

	mon := model.NewMonster(race)
	if req.Visible != nil {
		mon.Visible = *req.Visible
	}
	item := model.NewEgoItem("Weapon", ego)
	journal := notify.NewJournal(notify.DefaultCapacity)

	var book slay.LoreBook
	if h.deps.Book != nil {
		book = h.deps.Book
		// Stored lore is read under the request context; the resolver then
		// finds the record in memory.
		if _, err := h.deps.Book.LoadRecord(r.Context(), race); err != nil {
			slog.Warn("lore read failed, using memory only", "race", race.ID, "err", err)
		}
	}
	res := slay.NewResolver(h.deps.Matcher.Catalog(), journal, book).
		Resolve(item, mon, req.Real, req.KnownOnly)

	resp := attackResponse{
		Source:     res.Source().String(),
		Multiplier: res.Multiplier(),
		Verb:       res.Verb,
		Messages:   journal.Messages(),
		Lore:       []string{},
		AllKnown:   item.AllKnown(),
	}
	if h.deps.Book != nil {
		resp.Lore = raceFlagNames(h.deps.Book.Lore(race).Flags())
	}
	respondJSON(w, http.StatusOK, resp)
}

// GET /api/v1/lore/{raceID}
func (h *handlers) raceLore(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "raceID"), 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Errorf("parsing race id: %w", err))
		return
	}
	race := h.deps.Race(int32(id))
	if race == nil {
		respondError(w, http.StatusNotFound, fmt.Errorf("race %d not found", id))
		return
	}

	resp := loreResponse{RaceID: race.ID, Race: race.Name, Flags: []string{}}
	if h.deps.Book != nil {
		rec, err := h.deps.Book.LoadRecord(r.Context(), race)
		if err != nil {
			respondError(w, http.StatusServiceUnavailable, err)
			return
		}
		resp.Flags = raceFlagNames(rec.Flags())
	}
	respondJSON(w, http.StatusOK, resp)
}

// DELETE /api/v1/lore/{raceID}
//
// Забывает всё, что игрок узнал о расе.
func (h *handlers) forgetLore(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "raceID"), 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Errorf("parsing race id: %w", err))
		return
	}
	race := h.deps.Race(int32(id))
	if race == nil {
		respondError(w, http.StatusNotFound, fmt.Errorf("race %d not found", id))
		return
	}
	if h.deps.Book == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := h.deps.Book.Forget(r.Context(), race.ID); err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	slog.Info("lore forgotten", "race", race.ID)
	w.WriteHeader(http.StatusNoContent)
}
