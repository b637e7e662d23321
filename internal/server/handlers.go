package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/katalvlaran/indoornav/cache"
	"github.com/katalvlaran/indoornav/geom"
	"github.com/katalvlaran/indoornav/route"
	"github.com/katalvlaran/indoornav/transit"
	"github.com/katalvlaran/indoornav/world"
)

// maxBody caps the size of a route request.
const maxBody = 1 << 20

type routeRequest struct {
	Start geom.Point   `json:"start"`
	Stops []route.Stop `json:"stops,omitempty"`
	Areas []string     `json:"areas,omitempty"`
	Lang  string       `json:"lang,omitempty"`
}

type routeResponse struct {
	ID        string          `json:"id"`
	Segments  []route.Segment `json:"segments"`
	Complete  bool            `json:"complete"`
	Unvisited []route.Stop    `json:"unvisited,omitempty"`
	Fallbacks int             `json:"fallbacks"`
	Distance  float64         `json:"distance"`
	Error     string          `json:"error,omitempty"`
	Cached    bool            `json:"cached"`
}

func (s *Server) createRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Lang == "" {
		req.Lang = s.opts.Lang
	}
	if !geom.InPlane(req.Start) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("start %v is outside the floor plan", req.Start))
		return
	}

	stops := append([]route.Stop(nil), req.Stops...)
	fromAreas, err := s.planner.Stops(req.Areas, req.Lang)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	stops = append(stops, fromAreas...)
	if s.opts.MaxStops > 0 && len(stops) > s.opts.MaxStops {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("too many stops: %d > %d", len(stops), s.opts.MaxStops))
		return
	}

	ctx := r.Context()
	key := cache.Key("route", req.Start, stops, req.Lang)
	if data, hit, err := s.opts.Cache.Get(ctx, key); err != nil {
		s.opts.Logger.Warn("route cache read failed", "err", err)
	} else if hit {
		var resp routeResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			resp.ID = uuid.NewString()
			resp.Cached = true
			writeJSON(w, http.StatusOK, resp)
			return
		}
		s.opts.Logger.Warn("dropping unreadable cache entry", "key", key)
		_ = s.opts.Cache.Delete(ctx, key)
	}

	if s.opts.RouteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RouteTimeout)
		defer cancel()
	}
	planner := s.planner.Translated(s.opts.Catalog.For(req.Lang))
	res := planner.Plan(ctx, req.Start, stops)

	if errors.Is(res.Err, context.DeadlineExceeded) || errors.Is(res.Err, context.Canceled) {
		writeError(w, http.StatusGatewayTimeout, "route planning timed out")
		return
	}

	resp := routeResponse{
		Segments:  res.Segments,
		Complete:  res.Complete,
		Unvisited: res.Unvisited,
		Fallbacks: res.Fallbacks,
		Distance:  res.Distance(),
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	if data, err := json.Marshal(resp); err == nil {
		if err := s.opts.Cache.Set(ctx, key, data, s.opts.CacheTTL); err != nil {
			s.opts.Logger.Warn("route cache write failed", "err", err)
		}
	}

	resp.ID = uuid.NewString()
	s.opts.Logger.Info("route planned",
		"id", resp.ID, "stops", len(stops), "segments", len(resp.Segments),
		"complete", resp.Complete, "fallbacks", resp.Fallbacks)
	writeJSON(w, http.StatusOK, resp)
}

type areaView struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Type     world.AreaType `json:"type"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Width    float64        `json:"width"`
	Height   float64        `json:"height"`
	Entrance geom.Point     `json:"entrancePoint"`
	Gender   string         `json:"gender,omitempty"`
}

type floorView struct {
	Floor int                    `json:"floor"`
	Areas []areaView             `json:"areas"`
	Nodes []world.NavigationNode `json:"nodes"`
}

func (s *Server) listFloors(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = s.opts.Lang
	}
	wd := s.planner.World()
	out := make([]floorView, 0, len(wd.Floors()))
	for _, f := range wd.Floors() {
		fv := floorView{Floor: f, Areas: []areaView{}, Nodes: wd.NodesOn(f)}
		if fv.Nodes == nil {
			fv.Nodes = []world.NavigationNode{}
		}
		for _, a := range wd.AreasOn(f) {
			fv.Areas = append(fv.Areas, areaView{
				ID: a.ID, Name: a.Name.In(lang), Type: a.Type,
				X: a.X, Y: a.Y, Width: a.Width, Height: a.Height,
				Entrance: a.EntrancePoint, Gender: a.Gender,
			})
		}
		out = append(out, fv)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) floorPath(w http.ResponseWriter, r *http.Request) {
	from, err1 := strconv.Atoi(r.URL.Query().Get("from"))
	to, err2 := strconv.Atoi(r.URL.Query().Get("to"))
	if err := errors.Join(err1, err2); err != nil {
		writeError(w, http.StatusBadRequest, "from and to must be integers")
		return
	}
	floors, err := s.planner.Graph().Path(from, to)
	if errors.Is(err, transit.ErrNoFloorPath) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string][]int{"floors": floors})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	wd := s.planner.World()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"floors":    len(wd.Floors()),
		"areas":     len(wd.Areas()),
		"obstacles": wd.Obstacles().Len(),
		"nodes":     len(wd.Nodes()),
		"languages": s.opts.Catalog.Languages(),
	})
}
