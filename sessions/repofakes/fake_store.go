package repofakes

import (
	"context"
	"sync"

	"github.com/jrsteele09/bsky-session-server/sessions"
)

var _ sessions.Store = (*FakeStore)(nil)

// FakeStore is an in-memory sessions.Store that records how often it was called.
type FakeStore struct {
	loginSession *sessions.SessionData
	loginErr     error
	resume       func(*sessions.SessionData) (*sessions.SessionData, error)
	loginCalls   int
	resumeCalls  int
	lock         sync.Mutex
}

// NewFakeStore returns a store whose Login hands out copies of loginSession and whose
// Resume accepts every session unchanged.
func NewFakeStore(loginSession *sessions.SessionData) *FakeStore {
	return &FakeStore{
		loginSession: loginSession,
		resume: func(s *sessions.SessionData) (*sessions.SessionData, error) {
			return s, nil
		},
	}
}

func (fs *FakeStore) Login(_ context.Context) (*sessions.SessionData, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.loginCalls++
	if fs.loginErr != nil {
		return nil, fs.loginErr
	}
	return fs.loginSession.Clone(), nil
}

func (fs *FakeStore) Resume(_ context.Context, session *sessions.SessionData) (*sessions.SessionData, error) {
	fs.lock.Lock()
	resume := fs.resume
	fs.resumeCalls++
	fs.lock.Unlock()
	return resume(session)
}

func (fs *FakeStore) SetLoginError(err error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.loginErr = err
}

func (fs *FakeStore) SetLoginSession(session *sessions.SessionData) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.loginSession = session
}

// SetResume replaces the Resume behaviour.
func (fs *FakeStore) SetResume(resume func(*sessions.SessionData) (*sessions.SessionData, error)) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.resume = resume
}

func (fs *FakeStore) LoginCalls() int {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	return fs.loginCalls
}

func (fs *FakeStore) ResumeCalls() int {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	return fs.resumeCalls
}
