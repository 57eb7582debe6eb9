package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/tartampluch/go-schedule3d/internal/config"
	"github.com/tartampluch/go-schedule3d/internal/engine"
	"github.com/tartampluch/go-schedule3d/internal/locale"
)

type peopleResponse struct {
	People  []string `json:"people"`
	Visible []string `json:"visible"`
}

type addPersonRequest struct {
	Name string `json:"name"`
}

type addPersonResponse struct {
	Added bool `json:"added"`
	peopleResponse
}

type visibleRequest struct {
	Visible []string `json:"visible"`
}

type eventsResponse struct {
	Events []engine.Event `json:"events"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleListPeople(w http.ResponseWriter, r *http.Request) {
	s.sessions.Do(w, r, func(sess *engine.Session) {
		writeJSON(w, http.StatusOK, peopleResponse{People: sess.People(), Visible: sess.Visible()})
	})
}

func (s *Server) handleAddPerson(w http.ResponseWriter, r *http.Request) {
	var req addPersonRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.sessions.Do(w, r, func(sess *engine.Session) {
		added, err := sess.AddPerson(req.Name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		status := http.StatusOK
		if added {
			status = http.StatusCreated
		}
		writeJSON(w, status, addPersonResponse{
			Added:          added,
			peopleResponse: peopleResponse{People: sess.People(), Visible: sess.Visible()},
		})
	})
}

func (s *Server) handleSetVisible(w http.ResponseWriter, r *http.Request) {
	var req visibleRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.sessions.Do(w, r, func(sess *engine.Session) {
		sess.SetVisible(req.Visible)
		writeJSON(w, http.StatusOK, peopleResponse{People: sess.People(), Visible: sess.Visible()})
	})
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	s.sessions.Do(w, r, func(sess *engine.Session) {
		writeJSON(w, http.StatusOK, eventsResponse{Events: sess.Events()})
	})
}

func (s *Server) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	var in engine.EventInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.sessions.Do(w, r, func(sess *engine.Session) {
		ev, err := sess.AddEvent(in)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, ev)
	})
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue(config.PathParamID))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s: %v", config.ErrBadQuery, err))
		return
	}

	s.sessions.Do(w, r, func(sess *engine.Session) {
		removed, err := sess.DeleteEventByID(id)
		if errors.Is(err, engine.ErrNoSuchEvent) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, removed)
	})
}

func (s *Server) handleWeeks(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, config.QueryYear)
	if err != nil || year < config.MinYear || year > config.MaxYear {
		writeError(w, http.StatusBadRequest, config.ErrBadQuery+": "+config.QueryYear)
		return
	}
	month, err := queryInt(r, config.QueryMonth)
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, config.ErrBadQuery+": "+config.QueryMonth)
		return
	}
	writeJSON(w, http.StatusOK, engine.WeekBuckets(year, month, s.labels(r)))
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	var sel engine.Selection
	for _, q := range []struct {
		key string
		dst *int
	}{
		{config.QueryYear, &sel.Year},
		{config.QueryMonth, &sel.Month},
		{config.QueryWeek, &sel.Week},
	} {
		v, err := queryInt(r, q.key)
		if err != nil {
			writeError(w, http.StatusBadRequest, config.ErrBadQuery+": "+q.key)
			return
		}
		*q.dst = v
	}

	labels := s.labels(r)
	s.sessions.Do(w, r, func(sess *engine.Session) {
		scene := engine.Render(engine.RenderInput{
			Events:    sess.Events(),
			Visible:   sess.Visible(),
			Selection: sel,
			Holidays:  s.opts.Holidays,
			Labels:    labels,
		})
		slog.Debug(config.MsgRender,
			config.LogKeyComponent, config.CompServer,
			config.LogKeySession, sess.ID,
			config.LogKeySegments, len(scene.Segments),
			config.LogKeyOverlaps, len(scene.Overlaps),
		)
		writeJSON(w, http.StatusOK, scene)
	})
}

// labels picks the scene language from Accept-Language.
func (s *Server) labels(r *http.Request) engine.Labeler {
	if s.opts.Translator == nil {
		return engine.DefaultLabeler{}
	}
	lang := s.opts.Translator.Match(r.Header.Get(config.HeaderAcceptLanguage))
	return locale.Labels{T: s.opts.Translator.For(lang)}
}

// queryInt parses an optional integer query parameter; absent means zero.
func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, config.MaxRequestBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%s: %w", config.ErrBadRequestBody, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
