package mock

import (
	"net/http"
	"net/http/httptest"
	"path"
	"runtime"
	"sync/atomic"
	"testing"
)

// Fixture files served by GetMockServer
const (
	StringsOK      = "/strings-ok.json"
	StringsNumber  = "/strings-number.json"
	StringsShallow = "/strings-shallow.json"
	StringsArray   = "/strings-array.json"
	StringsBroken  = "/strings-broken.json"
	StringsMissing = "/strings-missing.json"
	StringsFailing = "/strings-failing.json"
)

// Server serves the bundle fixtures next to this file
type Server struct {
	*httptest.Server
	hits    atomic.Int64
	headers atomic.Pointer[http.Header]
}

// Hits returns the number of requests served
func (s *Server) Hits() int64 {
	return s.hits.Load()
}

// LastHeader returns the headers of the most recent request
func (s *Server) LastHeader() http.Header {
	if h := s.headers.Load(); h != nil {
		return *h
	}
	return http.Header{}
}

// GetMockServer mock bundle server
func GetMockServer(tb testing.TB) *Server {
	tb.Helper()
	_, filename, _, _ := runtime.Caller(0)
	mockDir := path.Dir(filename)

	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.hits.Add(1)
		h := req.Header.Clone()
		s.headers.Store(&h)
		if req.URL.Path == StringsFailing {
			http.Error(w, "upstream failure", http.StatusInternalServerError)
			return
		}
		http.ServeFile(w, req, path.Join(mockDir, req.URL.Path[1:]))
	}))
	tb.Cleanup(s.Close)

	return s
}
