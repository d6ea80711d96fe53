package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/pmsadmin/console/internal/domain/model"
	apperrors "github.com/pmsadmin/console/internal/errors"
	"github.com/pmsadmin/console/internal/ports"
	"golang.org/x/sync/singleflight"
)

// Login failure messages shown to the user.
const (
	MsgLoginInvalidCredentials = "Login failed: Invalid credentials"
	MsgLoginTryAgain           = "Login failed, please try again later"
)

// DefaultFetchConcurrency bounds the per-business permission lookups of one aggregation.
const DefaultFetchConcurrency = 8

// FetchKind names a cached aggregated list.
type FetchKind string

// Aggregated lists kept by the Store.
const (
	FetchAdminBusinesses FetchKind = "admin_businesses"
	FetchAgentBusinesses FetchKind = "agent_businesses"
)

const (
	flightBusinesses      = "businesses"
	flightAllBusinesses   = "all_businesses"
	flightAgentBusinesses = "agent_businesses"
	flightInitialize      = "initialize"
)

// StoreOptions groups dependencies for Store.
type StoreOptions struct {
	API ports.PermissionAPI
	KV  ports.KeyValueStore
	// Credentials issues the admin credential on admin login. Admin login fails when nil.
	Credentials ports.AdminCredentialSource
	// Concurrency bounds parallel permission lookups; DefaultFetchConcurrency when <= 0.
	Concurrency int
	Logger      *slog.Logger
}

// Store holds the session of one console user plus the lists fetched on its behalf.
// All readers return copies.
type Store struct {
	api         ports.PermissionAPI
	kv          ports.KeyValueStore
	creds       ports.AdminCredentialSource
	concurrency int
	logger      *slog.Logger

	group singleflight.Group

	mu            sync.RWMutex
	initialized   bool
	session       model.Session
	generation    uint64
	businesses    []model.Business
	detailed      []model.DetailedBusiness
	agentDetailed []model.DetailedBusiness
	failures      map[FetchKind][]model.JoinFailure
	// seq numbers fetches in start order; committed holds the newest seq written per list so a
	// fetch that started earlier never overwrites one that started later.
	seq       uint64
	committed map[FetchKind]uint64
}

// NewStore constructs a Store. Call Initialize before use to restore a persisted session.
func NewStore(opts StoreOptions) *Store {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultFetchConcurrency
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		api:         opts.API,
		kv:          opts.KV,
		creds:       opts.Credentials,
		concurrency: concurrency,
		logger:      logger.With("component", "store"),
		failures:    make(map[FetchKind][]model.JoinFailure),
		committed:   make(map[FetchKind]uint64),
	}
}

// Initialize restores the persisted session. It runs once; later calls are no-ops.
// A failed read leaves the store uninitialized so the caller may retry.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.RLock()
	done := s.initialized
	s.mu.RUnlock()
	if done {
		return nil
	}

	_, err, _ := s.group.Do(flightInitialize, func() (any, error) {
		return nil, s.initialize(ctx)
	})
	return err
}

func (s *Store) initialize(ctx context.Context) error {
	s.mu.RLock()
	done := s.initialized
	s.mu.RUnlock()
	if done {
		return nil
	}

	var sess model.Session
	var isAdmin string
	for _, kv := range []struct {
		key string
		dst *string
	}{
		{model.KeyUserToken, &sess.UserToken},
		{model.KeyUserEmail, &sess.UserEmail},
		{model.KeyAdminToken, &sess.AdminToken},
		{model.KeyIsAdmin, &isAdmin},
	} {
		v, _, err := s.kv.Get(ctx, kv.key)
		if err != nil {
			return fmt.Errorf("restore %s: %w", kv.key, err)
		}
		*kv.dst = v
	}
	sess.IsAdmin, _ = strconv.ParseBool(isAdmin)
	if sess.AdminToken == "" {
		sess.IsAdmin = false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	s.session = sess
	s.initialized = true
	s.logger.DebugContext(ctx, "session restored",
		"authenticated", sess.Authenticated(), "admin", sess.IsAdmin)
	return nil
}

// Initialized reports whether Initialize completed.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Session returns the current session. It is empty before Initialize.
func (s *Store) Session() model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized {
		return model.Session{}
	}
	return s.session
}

// LoginInput groups login parameters.
type LoginInput struct {
	Email    string
	Password string
	// Admin requests an admin session with an admin credential.
	Admin bool
}

// Login authenticates against the permission API and persists the session.
// An admin login is followed by one admin aggregation fetch; its failure does not fail the login.
func (s *Store) Login(ctx context.Context, in LoginInput) (model.Session, error) {
	if !model.ValidEmail(in.Email) {
		return model.Session{}, apperrors.ValidationField("email", "Please enter a valid email address")
	}
	if in.Password == "" {
		return model.Session{}, apperrors.ValidationField("password", "Please enter your password")
	}
	if in.Admin && s.creds == nil {
		return model.Session{}, apperrors.Forbidden("Admin sign-in is not enabled")
	}

	token, err := s.api.Login(ctx, in.Email, in.Password)
	if err != nil {
		return model.Session{}, s.loginError(ctx, in.Email, err)
	}
	if token == "" {
		return model.Session{}, apperrors.Unauthorized(MsgLoginInvalidCredentials)
	}

	sess := model.Session{UserToken: token, UserEmail: in.Email}
	if in.Admin {
		cred, credErr := s.creds.AdminCredential(ctx, in.Email)
		if credErr != nil {
			s.logger.WarnContext(ctx, "admin credential unavailable", "email", in.Email, "error", credErr)
			return model.Session{}, credErr
		}
		sess.AdminToken = cred
		sess.IsAdmin = true
	}

	if err := s.persistSession(ctx, sess); err != nil {
		return model.Session{}, err
	}

	s.mu.Lock()
	s.session = sess
	s.initialized = true
	s.generation++
	s.clearListsLocked()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "user signed in", "email", in.Email, "admin", sess.IsAdmin)

	if sess.IsAdmin {
		if _, err := s.FetchAllBusinesses(ctx); err != nil {
			s.logger.WarnContext(ctx, "initial admin fetch failed", "error", err)
		}
	}
	return sess, nil
}

func (s *Store) loginError(ctx context.Context, email string, err error) error {
	if apperrors.IsCanceled(err) {
		return err
	}
	var apiErr *ports.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = MsgLoginInvalidCredentials
		}
		s.logger.InfoContext(ctx, "login rejected", "email", email, "status_code", apiErr.StatusCode)
		return apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, msg)
	}
	s.logger.WarnContext(ctx, "login request failed", "email", email, "error", err)
	return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, MsgLoginTryAgain)
}

func (s *Store) persistSession(ctx context.Context, sess model.Session) error {
	writes := []struct{ key, value string }{
		{model.KeyUserToken, sess.UserToken},
		{model.KeyUserEmail, sess.UserEmail},
	}
	if sess.IsAdmin {
		writes = append(writes, struct{ key, value string }{model.KeyAdminToken, sess.AdminToken})
	}
	writes = append(writes, struct{ key, value string }{model.KeyIsAdmin, strconv.FormatBool(sess.IsAdmin)})

	for _, w := range writes {
		if err := s.kv.Set(ctx, w.key, w.value); err != nil {
			return fmt.Errorf("persist %s: %w", w.key, err)
		}
	}
	if !sess.IsAdmin {
		if err := s.kv.Delete(ctx, model.KeyAdminToken); err != nil {
			return fmt.Errorf("clear %s: %w", model.KeyAdminToken, err)
		}
	}
	return nil
}

// Logout forgets the session and every cached list. It is idempotent.
// In-memory state is cleared even when the persisted keys cannot be deleted.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	email := s.session.UserEmail
	s.session = model.Session{}
	s.generation++
	s.clearListsLocked()
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, model.SessionKeys()...); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear persisted session", "error", err)
		return fmt.Errorf("clear session: %w", err)
	}
	if email != "" {
		s.logger.InfoContext(ctx, "user signed out", "email", email)
	}
	return nil
}

func (s *Store) clearListsLocked() {
	s.businesses = nil
	s.detailed = nil
	s.agentDetailed = nil
	s.failures = make(map[FetchKind][]model.JoinFailure)
}

// snapshot returns the session and its generation; commits of a fetch started under an older
// generation are discarded so a logout can't be undone by a late response.
func (s *Store) snapshot() (model.Session, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized {
		return model.Session{}, s.generation
	}
	return s.session, s.generation
}

func (s *Store) requireUser() (model.Session, uint64, error) {
	sess, gen := s.snapshot()
	if !sess.Authenticated() {
		return sess, gen, apperrors.Unauthorized("Please sign in first")
	}
	return sess, gen, nil
}

func (s *Store) requireAdmin() (model.Session, uint64, error) {
	sess, gen := s.snapshot()
	switch {
	case sess.HasAdmin():
		return sess, gen, nil
	case sess.Authenticated():
		return sess, gen, apperrors.Forbidden("Admin access required")
	default:
		return sess, gen, apperrors.Unauthorized("Please sign in first")
	}
}

// AdminToken returns the admin credential of the session or an error when there is none.
func (s *Store) AdminToken() (string, error) {
	sess, _, err := s.requireAdmin()
	return sess.AdminToken, err
}

// FetchBusinesses lists the signed-in user's own businesses and replaces the cached list.
// On failure the previous list is kept.
func (s *Store) FetchBusinesses(ctx context.Context) ([]model.Business, error) {
	sess, gen, err := s.requireUser()
	if err != nil {
		return nil, err
	}

	v, err, shared := s.group.Do(flightKey(flightBusinesses, gen), func() (any, error) {
		list, err := s.api.ListBusinesses(ctx, sess.UserToken)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to fetch businesses", "error", err)
			return nil, err
		}
		s.mu.Lock()
		if s.generation == gen {
			s.businesses = list
		}
		s.mu.Unlock()
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.DebugContext(ctx, "joined in-flight fetch", "fetch", flightBusinesses)
	}
	return cloneBusinesses(v.([]model.Business)), nil
}

// FetchAllBusinesses searches every business and joins each with its permissions.
// Businesses whose permission lookup failed are left out and reported in Failures.
// A call made while another is in flight shares its result.
func (s *Store) FetchAllBusinesses(ctx context.Context) (model.AggregationResult, error) {
	return s.fetchAllBusinesses(ctx, false)
}

// RefreshAllBusinesses is FetchAllBusinesses for callers that just changed remote state.
// It never joins a fetch that started before it, and such a fetch finishing later cannot
// replace its result.
func (s *Store) RefreshAllBusinesses(ctx context.Context) (model.AggregationResult, error) {
	return s.fetchAllBusinesses(ctx, true)
}

func (s *Store) fetchAllBusinesses(ctx context.Context, fresh bool) (model.AggregationResult, error) {
	sess, gen, err := s.requireAdmin()
	if err != nil {
		return model.AggregationResult{}, err
	}

	key := flightKey(flightAllBusinesses, gen)
	if fresh {
		s.group.Forget(key)
	}
	v, err, _ := s.group.Do(key, func() (any, error) {
		seq := s.nextSeq()
		list, err := s.api.SearchBusinesses(ctx, sess.AdminToken)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to search businesses", "error", err)
			return nil, err
		}
		res, err := joinAll(ctx, joinConfig[model.Business]{
			items: list,
			limit: s.concurrency,
			id:    func(b model.Business) string { return b.ID },
			join: func(ctx context.Context, b model.Business) (model.DetailedBusiness, error) {
				perms, err := s.api.GetBusinessPermissions(ctx, sess.AdminToken, b.ID)
				if err != nil {
					return model.DetailedBusiness{}, err
				}
				return model.DetailedBusiness{ID: b.ID, OwnerID: b.OwnerID, Name: b.Name, Permissions: perms}, nil
			},
		})
		if err != nil {
			return nil, err
		}
		s.logFailures(ctx, FetchAdminBusinesses, res)
		s.commit(gen, seq, FetchAdminBusinesses, res)
		return res, nil
	})
	if err != nil {
		return model.AggregationResult{}, err
	}
	return cloneResult(v.(model.AggregationResult)), nil
}

// FetchAllAgentBusinesses lists the businesses delegated to the signed-in agent and joins
// each with its permissions. Name and owner come from the association when present, else
// from the permission records, which must agree.
func (s *Store) FetchAllAgentBusinesses(ctx context.Context) (model.AggregationResult, error) {
	sess, gen, err := s.requireUser()
	if err != nil {
		return model.AggregationResult{}, err
	}

	v, err, _ := s.group.Do(flightKey(flightAgentBusinesses, gen), func() (any, error) {
		seq := s.nextSeq()
		assoc, err := s.api.ListAgentBusinesses(ctx, sess.UserToken)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to list agent businesses", "error", err)
			return nil, err
		}
		res, err := joinAll(ctx, joinConfig[model.AgentBusiness]{
			items: assoc,
			limit: s.concurrency,
			id:    func(a model.AgentBusiness) string { return a.BusinessID },
			join: func(ctx context.Context, a model.AgentBusiness) (model.DetailedBusiness, error) {
				perms, err := s.api.GetBusinessPermissions(ctx, sess.UserToken, a.BusinessID)
				if err != nil {
					return model.DetailedBusiness{}, err
				}
				return joinAgentBusiness(a, perms)
			},
		})
		if err != nil {
			return nil, err
		}
		s.logFailures(ctx, FetchAgentBusinesses, res)
		s.commit(gen, seq, FetchAgentBusinesses, res)
		return res, nil
	})
	if err != nil {
		return model.AggregationResult{}, err
	}
	return cloneResult(v.(model.AggregationResult)), nil
}

// flightKey scopes in-flight deduplication to one session generation so a caller of a new
// session never receives a result fetched with the previous session's token.
func flightKey(name string, gen uint64) string {
	return name + ":" + strconv.FormatUint(gen, 10)
}

func (s *Store) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

func (s *Store) commit(gen, seq uint64, kind FetchKind, res model.AggregationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen || seq < s.committed[kind] {
		return
	}
	s.committed[kind] = seq
	switch kind {
	case FetchAdminBusinesses:
		s.detailed = res.Businesses
	case FetchAgentBusinesses:
		s.agentDetailed = res.Businesses
	}
	s.failures[kind] = res.Failures
}

func (s *Store) logFailures(ctx context.Context, kind FetchKind, res model.AggregationResult) {
	for _, f := range res.Failures {
		level := slog.LevelError
		if errors.Is(f.Err, model.ErrNoPermissions) || errors.Is(f.Err, model.ErrInconsistentBusiness) ||
			errors.Is(f.Err, model.ErrUnnamedBusiness) {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "business join failed",
			"fetch", string(kind), "business_id", f.BusinessID, "error", f.Err)
	}
	if res.Partial() {
		s.logger.WarnContext(ctx, "aggregation incomplete",
			"fetch", string(kind), "joined", len(res.Businesses), "failed", len(res.Failures))
	}
}

// Businesses returns the cached user business list.
func (s *Store) Businesses() []model.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneBusinesses(s.businesses)
}

// DetailedBusinesses returns the cached admin aggregation.
func (s *Store) DetailedBusinesses() []model.DetailedBusiness {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDetailed(s.detailed)
}

// AgentDetailedBusinesses returns the cached agent aggregation.
func (s *Store) AgentDetailedBusinesses() []model.DetailedBusiness {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDetailed(s.agentDetailed)
}

// DetailedBusiness returns one business of the admin aggregation.
func (s *Store) DetailedBusiness(id string) (model.DetailedBusiness, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findBusiness(s.detailed, id)
}

// AgentDetailedBusiness returns one business of the agent aggregation.
func (s *Store) AgentDetailedBusiness(id string) (model.DetailedBusiness, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findBusiness(s.agentDetailed, id)
}

// LastFailures returns the join failures of the latest committed aggregation of kind.
func (s *Store) LastFailures(kind FetchKind) []model.JoinFailure {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.failures[kind]
	if len(src) == 0 {
		return nil
	}
	out := make([]model.JoinFailure, len(src))
	copy(out, src)
	return out
}

func findBusiness(list []model.DetailedBusiness, id string) (model.DetailedBusiness, bool) {
	for _, b := range list {
		if b.ID == id {
			return b.Clone(), true
		}
	}
	return model.DetailedBusiness{}, false
}

func cloneBusinesses(in []model.Business) []model.Business {
	out := make([]model.Business, len(in))
	copy(out, in)
	return out
}

func cloneDetailed(in []model.DetailedBusiness) []model.DetailedBusiness {
	out := make([]model.DetailedBusiness, len(in))
	for i, b := range in {
		out[i] = b.Clone()
	}
	return out
}

func cloneResult(in model.AggregationResult) model.AggregationResult {
	out := model.AggregationResult{Businesses: cloneDetailed(in.Businesses)}
	if len(in.Failures) > 0 {
		out.Failures = make([]model.JoinFailure, len(in.Failures))
		copy(out.Failures, in.Failures)
	}
	return out
}
