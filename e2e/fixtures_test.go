//go:build e2e && unix

package main

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const usersJSON = `[
  {"id": 1, "name": "John Doe", "username": "jd", "email": "john@x.com", "company": {"name": "Acme"}},
  {"id": 2, "name": "Jane Roe", "username": "jr", "email": "jane@y.com", "company": {"name": "Beta"}},
  {"id": 3, "name": "Bob Lee", "username": "bl", "email": "bob@z.com", "company": {"name": "Acme"}}
]`

// DirectoryServer serves the fixture users, optionally failing the first
// few requests
type DirectoryServer struct {
	*httptest.Server
	failures atomic.Int32
	hits     atomic.Int32
}

// NewDirectoryServer starts a fixture server closed with the test
func NewDirectoryServer(t *testing.T, failFirst int) *DirectoryServer {
	t.Helper()
	ds := &DirectoryServer{}
	ds.failures.Store(int32(failFirst))
	ds.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ds.hits.Add(1)
		if ds.failures.Add(-1) >= 0 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(usersJSON))
	}))
	t.Cleanup(ds.Close)
	return ds
}

// Hits returns how many requests reached the server
func (ds *DirectoryServer) Hits() int {
	return int(ds.hits.Load())
}
