package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumeBuilder/internal/auth"
	"resumeBuilder/internal/config"
	"resumeBuilder/internal/database"
	"resumeBuilder/internal/resume"
	"resumeBuilder/internal/suggest"
)

// memoryKV 在内存中模拟认证与定制所用的 Redis 命令。
type memoryKV struct {
	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryKV) Incr(_ context.Context, key string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, _ := strconv.ParseInt(m.values[key], 10, 64)
	n++
	m.values[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func (m *memoryKV) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; !ok {
		return redis.NewBoolResult(false, nil)
	}
	m.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (m *memoryKV) TTL(_ context.Context, key string) *redis.DurationCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; !ok {
		return redis.NewDurationResult(-2, nil)
	}
	if ttl, ok := m.ttls[key]; ok {
		return redis.NewDurationResult(ttl, nil)
	}
	return redis.NewDurationResult(-1, nil)
}

func (m *memoryKV) Del(_ context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, key := range keys {
		if _, ok := m.values[key]; ok {
			n++
		}
		delete(m.values, key)
		delete(m.ttls, key)
	}
	return redis.NewIntResult(n, nil)
}

func (m *memoryKV) Get(_ context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memoryKV) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		m.values[key] = string(v)
	case string:
		m.values[key] = v
	default:
		m.values[key] = fmt.Sprint(v)
	}
	if expiration > 0 {
		m.ttls[key] = expiration
	} else {
		delete(m.ttls, key)
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *memoryKV) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok
}

type fakeQueue struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: fmt.Sprintf("task-%d", len(q.tasks)), Type: task.Type()}, nil
}

type fakeStorage struct {
	mu        sync.Mutex
	prefixes  []string
	presigned []string
}

func (s *fakeStorage) DeletePrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefixes = append(s.prefixes, prefix)
	return nil
}

func (s *fakeStorage) GeneratePresignedURL(_ context.Context, objectKey string, _ time.Duration, filename string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presigned = append(s.presigned, objectKey)
	return "https://minio.test/" + objectKey + "?filename=" + filename, nil
}

type stubSuggester struct {
	items []suggest.Suggestion
	err   error
	got   string
}

func (s *stubSuggester) Suggest(_ context.Context, text string) ([]suggest.Suggestion, error) {
	s.got = text
	return s.items, s.err
}

type fakeNotifications struct {
	ch     chan string
	userID chan uint
}

func newFakeNotifications() *fakeNotifications {
	return &fakeNotifications{ch: make(chan string, 4), userID: make(chan uint, 1)}
}

func (n *fakeNotifications) Subscribe(_ context.Context, userID uint) (<-chan string, func() error, error) {
	n.userID <- userID
	return n.ch, func() error { return nil }, nil
}

type testEnv struct {
	router         *gin.Engine
	cfg            *config.Config
	db             *gorm.DB
	auth           *auth.AuthService
	kv             *memoryKV
	resumes        *resume.Repository
	customizations *resume.CustomizationStore
	queue          *fakeQueue
	storage        *fakeStorage
	suggestions    *stubSuggester
	notifications  *fakeNotifications
}

func newTestAuthService(t *testing.T) *auth.AuthService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	svc, err := auth.NewAuthService(privPEM, pubPEM, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	return svc
}

func newTestEnv(t *testing.T, overrides ...func(*config.Config)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		API: config.APIConfig{MaxResumes: 3, MaxUploadBytes: 1 << 20},
		Auth: config.AuthConfig{
			LoginRateLimit:     20,
			LoginLockThreshold: 3,
			LoginLockTTL:       15 * time.Minute,
		},
		MinIO:  config.MinIOConfig{PresignTTL: 15 * time.Minute},
		Worker: config.WorkerConfig{MaxRetry: 3},
	}
	for _, override := range overrides {
		override(cfg)
	}

	env := &testEnv{
		cfg:           cfg,
		db:            db,
		auth:          newTestAuthService(t),
		kv:            newMemoryKV(),
		resumes:       resume.NewRepository(db, resume.WithMaxResumes(cfg.API.MaxResumes)),
		queue:         &fakeQueue{},
		storage:       &fakeStorage{},
		suggestions:   &stubSuggester{},
		notifications: newFakeNotifications(),
	}
	env.customizations = resume.NewCustomizationStore(env.kv)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.router = NewRouter(logger)
	RegisterRoutes(env.router, Dependencies{
		Config:         cfg,
		DB:             db,
		Auth:           env.auth,
		Redis:          env.kv,
		Notifications:  env.notifications,
		Resumes:        env.resumes,
		Customizations: env.customizations,
		Queue:          env.queue,
		Storage:        env.storage,
		Suggestions:    env.suggestions,
		Logger:         logger,
	})
	return env
}

func (e *testEnv) createUser(t *testing.T, email, password string, mustChange bool) uint {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := database.User{Email: email, Name: "Test", PasswordHash: hash, MustChangePassword: mustChange}
	require.NoError(t, e.db.Create(&user).Error)
	return user.ID
}

func (e *testEnv) accessToken(t *testing.T, userID uint) string {
	t.Helper()
	pair, err := e.auth.GenerateTokenPair(userID, false)
	require.NoError(t, err)
	return pair.AccessToken
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func refreshCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == refreshTokenCookieName {
			return cookie
		}
	}
	return nil
}

var errBoom = errors.New("boom")

func sampleResumeData() resume.Data {
	return resume.Data{
		Personal: resume.Personal{FullName: "Ada Lovelace", Email: "ada@example.com", Mobile: "555-123-4567"},
		Experience: []resume.Experience{
			{Company: "Analytical Engines", Position: "Engineer", Description: "Built the <first> program"},
		},
		Skills: []resume.SkillCategory{{Category: "Math", Skills: "Algorithms, Notes"}},
	}
}
