package httpd

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"

	"github.com/indigo-web/mediatype"
	"github.com/indigo-web/mediatype/internal/logger"
	"github.com/indigo-web/mediatype/internal/metric"
	"github.com/indigo-web/mediatype/internal/strutil"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type entry struct {
	Suffix    string              `json:"suffix"`
	MediaType mediatype.MediaType `json:"media_type"`
	Explicit  bool                `json:"explicit"`
}

type pathEntry struct {
	Path string `json:"path"`
	entry
}

type mediaTypeBody struct {
	MediaType mediatype.MediaType `json:"media_type"`
}

type reloadResult struct {
	Entries int `json:"entries"`
}

type apiError struct {
	Error string `json:"error"`
}

func (s *Server) resolve(suffix string) entry {
	m, explicit := s.table.Resolve(suffix)
	metric.Lookup(explicit)

	return entry{Suffix: suffix, MediaType: m, Explicit: explicit}
}

func (s *Server) listTypes(w http.ResponseWriter, _ *http.Request) {
	entries := make([]entry, 0, s.table.Len())
	for suffix, m := range s.table.Iter() {
		entries = append(entries, entry{Suffix: suffix, MediaType: m, Explicit: true})
	}

	sendJSON(w, http.StatusOK, entries)
}

func (s *Server) getType(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, s.resolve(chi.URLParam(r, "suffix")))
}

func (s *Server) putType(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeMediaType(w, r)
	if !ok {
		return
	}

	suffix := chi.URLParam(r, "suffix")
	s.table.Add(suffix, body.MediaType)
	metric.TableSize(s.table.Len())
	logger.Debug(logSender, "mapped %q to %q", suffix, body.MediaType)

	sendJSON(w, http.StatusOK, entry{Suffix: suffix, MediaType: body.MediaType, Explicit: true})
}

func (s *Server) getDefault(w http.ResponseWriter, _ *http.Request) {
	sendJSON(w, http.StatusOK, mediaTypeBody{MediaType: s.table.Default()})
}

func (s *Server) putDefault(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeMediaType(w, r)
	if !ok {
		return
	}

	s.table.SetDefault(body.MediaType)
	logger.Debug(logSender, "default media type set to %q", body.MediaType)

	sendJSON(w, http.StatusOK, body)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if len(path) == 0 {
		sendError(w, http.StatusBadRequest, errors.New("the path query parameter is required"))
		return
	}

	sendJSON(w, http.StatusOK, pathEntry{
		Path:  path,
		entry: s.resolve(strutil.Suffix(path)),
	})
}

func (s *Server) reload(w http.ResponseWriter, _ *http.Request) {
	if s.reloader == nil {
		sendError(w, http.StatusConflict, ErrNoSource)
		return
	}

	if err := s.reloader.Reload(); err != nil {
		sendError(w, http.StatusInternalServerError, err)
		return
	}

	entries := s.table.Len()
	metric.TableSize(entries)
	sendJSON(w, http.StatusOK, reloadResult{Entries: entries})
}

func decodeMediaType(w http.ResponseWriter, r *http.Request) (body mediaTypeBody, ok bool) {
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sendError(w, http.StatusBadRequest, err)
		return body, false
	}

	if len(mediatype.Essence(body.MediaType)) == 0 {
		sendError(w, http.StatusBadRequest, errors.New("media_type must not be empty"))
		return body, false
	}

	return body, true
}

func sendJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error(logSender, "unable to marshal the response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mediatype.JSON+"; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func sendError(w http.ResponseWriter, status int, err error) {
	sendJSON(w, status, apiError{Error: err.Error()})
}
