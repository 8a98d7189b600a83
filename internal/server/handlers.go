package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/udisondev/slays/internal/data"
	"github.com/udisondev/slays/internal/flags"
	"github.com/udisondev/slays/internal/game/slay"
	"github.com/udisondev/slays/internal/model"
)

type handlers struct {
	deps Deps
}

type slayJSON struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	ObjectFlag string `json:"object_flag"`
	Kind       string `json:"kind"`
	Multiplier int    `json:"multiplier"`
	Desc       string `json:"desc"`
	Brand      string `json:"brand,omitempty"`
}

func newSlayJSON(s data.SlayDef) slayJSON {
	return slayJSON{
		ID:         s.ID,
		Name:       s.Name,
		ObjectFlag: model.ObjectFlagName(s.ObjectFlag),
		Kind:       model.ObjectFlagKindOf(s.ObjectFlag).String(),
		Multiplier: s.Mult,
		Desc:       s.Desc,
		Brand:      s.Brand,
	}
}

type infoJSON struct {
	Desc       string `json:"desc"`
	Brand      string `json:"brand,omitempty"`
	Multiplier int    `json:"multiplier"`
}

type cacheEntryJSON struct {
	Flags []string `json:"flags"`
	Value int32    `json:"value"`
}

type errorJSON struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encoding json response", "err", err)
	}
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, errorJSON{Error: err.Error()})
}

// parseObjectFlags parses "SLAY_ORC,BRAND_FIRE".
func parseObjectFlags(s string) (flags.Set, error) {
	var out flags.Set
	if s == "" {
		return out, nil
	}
	for _, name := range strings.Split(s, ",") {
		name = strings.ToUpper(strings.TrimSpace(name))
		f, ok := model.ObjectFlagByName(name)
		if !ok {
			return out, fmt.Errorf("unknown object flag %q", name)
		}
		out.On(f)
	}
	return out, nil
}

func objectFlagNames(s flags.Set) []string {
	fs := s.Flags()
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, model.ObjectFlagName(f))
	}
	return out
}

func handleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func handleReadyz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				respondError(w, http.StatusServiceUnavailable, err)
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// GET /api/v1/slays
func (h *handlers) listCatalog(w http.ResponseWriter, r *http.Request) {
	all := h.deps.Matcher.Catalog().All()
	out := make([]slayJSON, 0, len(all))
	for _, s := range all[1:] {
		out = append(out, newSlayJSON(s))
	}
	respondJSON(w, http.StatusOK, out)
}

// GET /api/v1/slays/match?flags=SLAY_ORC,KILL_DRAGON&dedup=true
func (h *handlers) match(w http.ResponseWriter, r *http.Request) {
	of, err := parseObjectFlags(r.URL.Query().Get("flags"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	dedup := r.URL.Query().Get("dedup") == "true"

	ids := h.deps.Matcher.List(of, model.SlayMask(), dedup)
	info := h.deps.Matcher.CollectInfo(ids)
	out := make([]infoJSON, 0, len(info))
	for _, in := range info {
		out = append(out, infoJSON{Desc: in.Desc, Brand: in.Brand, Multiplier: in.Mult})
	}
	respondJSON(w, http.StatusOK, out)
}

// GET /api/v1/slays/random?flags=...
// Without flags every slay, kill and brand is eligible.
func (h *handlers) random(w http.ResponseWriter, r *http.Request) {
	mask := model.SlayMask()
	if q := r.URL.Query().Get("flags"); q != "" {
		var err error
		if mask, err = parseObjectFlags(q); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
	}

	s, err := h.deps.Matcher.Random(mask)
	if errors.Is(err, slay.ErrNoEligibleSlay) {
		respondError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, newSlayJSON(*s))
}

// GET /api/v1/cache
func (h *handlers) listCache(w http.ResponseWriter, r *http.Request) {
	entries := h.deps.Cache.Entries()
	out := make([]cacheEntryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, cacheEntryJSON{Flags: objectFlagNames(e.Flags), Value: e.Value})
	}
	respondJSON(w, http.StatusOK, out)
}

// GET /api/v1/cache/lookup?flags=...
func (h *handlers) lookup(w http.ResponseWriter, r *http.Request) {
	of, err := parseObjectFlags(r.URL.Query().Get("flags"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	v, ok := h.deps.Cache.Lookup(of.Intersect(model.SlayMask()))
	if !ok {
		respondError(w, http.StatusNotFound, errors.New("combination not cached"))
		return
	}
	respondJSON(w, http.StatusOK, cacheEntryJSON{Flags: objectFlagNames(of.Intersect(model.SlayMask())), Value: v})
}
