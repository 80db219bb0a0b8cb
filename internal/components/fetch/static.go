package fetch

import (
	"context"
	"net/http"
	"sync"
)

// Static is an in-memory API serving fixed pages, unknown urls answer with 404.
type Static struct {
	mutex  sync.Mutex
	pages  map[string]string
	errors map[string]error
	calls  map[string]int
}

func NewStatic(pages map[string]string) *Static {
	copied := make(map[string]string, len(pages))
	for k, v := range pages {
		copied[k] = v
	}
	return &Static{
		pages:  copied,
		errors: map[string]error{},
		calls:  map[string]int{},
	}
}

func (s *Static) Set(url, body string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.pages[url] = body
	delete(s.errors, url)
}

// Fail makes every following Get of url return err.
func (s *Static) Fail(url string, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.errors[url] = err
}

// Calls returns how many times url has been fetched.
func (s *Static) Calls(url string) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.calls[url]
}

func (s *Static) Get(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.calls[url]++
	if err, ok := s.errors[url]; ok {
		return "", err
	}
	page, ok := s.pages[url]
	if !ok {
		return "", &HttpError{StatusCode: http.StatusNotFound, Url: url}
	}
	return page, nil
}
