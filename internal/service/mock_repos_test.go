package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tuilachit/Careercompass/config"
	"github.com/tuilachit/Careercompass/internal/model"
	"github.com/tuilachit/Careercompass/internal/repository"
	pkgerrors "github.com/tuilachit/Careercompass/pkg/errors"
	pkgredis "github.com/tuilachit/Careercompass/pkg/redis"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock CareerPathRepository ──

type mockCareerPathRepo struct {
	paths   map[uint]*model.CareerPath
	nextID  uint
	listErr error // ListAllActive 注入错误
}

func newMockCareerPathRepo() *mockCareerPathRepo {
	return &mockCareerPathRepo{paths: make(map[uint]*model.CareerPath), nextID: 1}
}

func (m *mockCareerPathRepo) Create(_ context.Context, p *model.CareerPath) error {
	if p.ID == 0 {
		p.ID = m.nextID
		m.nextID++
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
		p.UpdatedAt = p.CreatedAt
	}
	m.paths[p.ID] = p
	return nil
}

func (m *mockCareerPathRepo) GetByID(_ context.Context, id uint) (*model.CareerPath, error) {
	if p, ok := m.paths[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCareerPathRepo) GetActiveByID(ctx context.Context, id uint) (*model.CareerPath, error) {
	p, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *mockCareerPathRepo) GetByTitle(_ context.Context, title string) (*model.CareerPath, error) {
	for _, p := range m.paths {
		if p.Title == title {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// sortedActive 目录顺序：标题升序，ID 兜底
func (m *mockCareerPathRepo) sortedActive() []model.CareerPath {
	var result []model.CareerPath
	for _, p := range m.paths {
		if p.IsActive {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Title != result[j].Title {
			return result[i].Title < result[j].Title
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (m *mockCareerPathRepo) List(_ context.Context, filter repository.CareerPathFilter, offset, limit int) ([]model.CareerPath, int64, error) {
	var result []model.CareerPath
	for _, p := range m.sortedActive() {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(filter.Search)) {
			continue
		}
		result = append(result, p)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return []model.CareerPath{}, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockCareerPathRepo) ListAllActive(_ context.Context) ([]model.CareerPath, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.sortedActive(), nil
}

func (m *mockCareerPathRepo) ListByIDs(_ context.Context, ids []uint) ([]model.CareerPath, error) {
	var result []model.CareerPath
	for _, id := range ids {
		if p, ok := m.paths[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockCareerPathRepo) RandomSample(_ context.Context, n int) ([]model.CareerPath, error) {
	active := m.sortedActive()
	if len(active) > n {
		active = active[:n]
	}
	return active, nil
}

func (m *mockCareerPathRepo) Categories(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var result []string
	for _, p := range m.sortedActive() {
		if !seen[p.Category] {
			seen[p.Category] = true
			result = append(result, p.Category)
		}
	}
	sort.Strings(result)
	return result, nil
}

func (m *mockCareerPathRepo) Update(_ context.Context, p *model.CareerPath) error {
	cp := *p
	m.paths[p.ID] = &cp
	return nil
}

func (m *mockCareerPathRepo) Deactivate(_ context.Context, id uint) error {
	p, ok := m.paths[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.IsActive = false
	return nil
}

// ── Mock AssessmentRepository ──

type mockAssessmentRepo struct {
	assessments map[uint]*model.CareerAssessment
	nextID      uint
}

func newMockAssessmentRepo() *mockAssessmentRepo {
	return &mockAssessmentRepo{assessments: make(map[uint]*model.CareerAssessment), nextID: 1}
}

func (m *mockAssessmentRepo) Create(_ context.Context, a *model.CareerAssessment) error {
	if a.ID == 0 {
		a.ID = m.nextID
		m.nextID++
	}
	m.assessments[a.ID] = a
	return nil
}

func (m *mockAssessmentRepo) GetByID(_ context.Context, id uint) (*model.CareerAssessment, error) {
	if a, ok := m.assessments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssessmentRepo) GetActiveByID(_ context.Context, id uint) (*model.CareerAssessment, error) {
	if a, ok := m.assessments[id]; ok && a.IsActive {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssessmentRepo) GetByTitle(_ context.Context, title string) (*model.CareerAssessment, error) {
	for _, a := range m.assessments {
		if a.Title == title {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssessmentRepo) ListActive(_ context.Context) ([]model.CareerAssessment, error) {
	var result []model.CareerAssessment
	for id := uint(1); id < m.nextID; id++ {
		if a, ok := m.assessments[id]; ok && a.IsActive {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssessmentRepo) Update(_ context.Context, a *model.CareerAssessment) error {
	m.assessments[a.ID] = a
	return nil
}

// ── Mock AssessmentResultRepository ──

type mockResultRepo struct {
	results   map[uint]*model.AssessmentResult
	nextID    uint
	createErr error
	updateErr error
	assess    *mockAssessmentRepo
	users     *mockUserRepo
}

func newMockResultRepo(assess *mockAssessmentRepo, users *mockUserRepo) *mockResultRepo {
	return &mockResultRepo{
		results: make(map[uint]*model.AssessmentResult),
		nextID:  1,
		assess:  assess,
		users:   users,
	}
}

func (m *mockResultRepo) Create(_ context.Context, r *model.AssessmentResult) error {
	if m.createErr != nil {
		return m.createErr
	}
	r.ID = m.nextID
	m.nextID++
	cp := *r
	m.results[r.ID] = &cp
	return nil
}

func (m *mockResultRepo) UpdateRecommendations(_ context.Context, id uint, careerIDs []uint) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	r, ok := m.results[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.RecommendedCareers = append([]uint{}, careerIDs...)
	return nil
}

// withRelations 模拟 Preload
func (m *mockResultRepo) withRelations(r *model.AssessmentResult) model.AssessmentResult {
	cp := *r
	if a, ok := m.assess.assessments[r.AssessmentID]; ok {
		cp.Assessment = a
	}
	if r.UserID != nil {
		if u, ok := m.users.users[*r.UserID]; ok {
			cp.User = u
		}
	}
	return cp
}

func (m *mockResultRepo) GetByID(_ context.Context, id uint) (*model.AssessmentResult, error) {
	r, ok := m.results[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := m.withRelations(r)
	return &cp, nil
}

func (m *mockResultRepo) ListByScope(_ context.Context, scope repository.ResultScope, offset, limit int) ([]model.AssessmentResult, int64, error) {
	var result []model.AssessmentResult
	if scope.Empty() {
		return result, 0, nil
	}
	// 按 ID 倒序近似 completed_at 倒序
	for id := m.nextID - 1; id >= 1; id-- {
		r, ok := m.results[id]
		if !ok {
			continue
		}
		if scope.UserID != "" {
			if r.UserID == nil || *r.UserID != scope.UserID {
				continue
			}
		} else if r.SessionID == nil || *r.SessionID != scope.SessionID {
			continue
		}
		result = append(result, m.withRelations(r))
	}
	total := int64(len(result))
	if offset >= len(result) {
		return []model.AssessmentResult{}, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockResultRepo) ListForExport(_ context.Context, assessmentID uint) ([]model.AssessmentResult, error) {
	var result []model.AssessmentResult
	for id := uint(1); id < m.nextID; id++ {
		r, ok := m.results[id]
		if !ok {
			continue
		}
		if assessmentID != 0 && r.AssessmentID != assessmentID {
			continue
		}
		result = append(result, m.withRelations(r))
	}
	return result, nil
}

// ── Mock ResourceRepository ──

type mockResourceRepo struct {
	resources map[uint]*model.CareerResource
	nextID    uint
}

func newMockResourceRepo() *mockResourceRepo {
	return &mockResourceRepo{resources: make(map[uint]*model.CareerResource), nextID: 1}
}

func (m *mockResourceRepo) Create(_ context.Context, r *model.CareerResource) error {
	if r.ID == 0 {
		r.ID = m.nextID
		m.nextID++
	}
	m.resources[r.ID] = r
	return nil
}

func (m *mockResourceRepo) GetByID(_ context.Context, id uint) (*model.CareerResource, error) {
	if r, ok := m.resources[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockResourceRepo) GetActiveByID(ctx context.Context, id uint) (*model.CareerResource, error) {
	r, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (m *mockResourceRepo) GetByTitle(_ context.Context, title string) (*model.CareerResource, error) {
	for _, r := range m.resources {
		if r.Title == title {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockResourceRepo) active() []model.CareerResource {
	var result []model.CareerResource
	for id := uint(1); id < m.nextID; id++ {
		if r, ok := m.resources[id]; ok && r.IsActive {
			result = append(result, *r)
		}
	}
	return result
}

func (m *mockResourceRepo) List(_ context.Context, filter repository.ResourceFilter, offset, limit int) ([]model.CareerResource, int64, error) {
	var result []model.CareerResource
	for _, r := range m.active() {
		if filter.Category != "" && r.Category != filter.Category {
			continue
		}
		if filter.IsFeatured != nil && r.IsFeatured != *filter.IsFeatured {
			continue
		}
		result = append(result, r)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return []model.CareerResource{}, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockResourceRepo) ListFeatured(_ context.Context, limit int) ([]model.CareerResource, error) {
	var result []model.CareerResource
	for _, r := range m.active() {
		if r.IsFeatured && len(result) < limit {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockResourceRepo) Categories(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var result []string
	for _, r := range m.active() {
		if !seen[r.Category] {
			seen[r.Category] = true
			result = append(result, r.Category)
		}
	}
	sort.Strings(result)
	return result, nil
}

func (m *mockResourceRepo) Update(_ context.Context, r *model.CareerResource) error {
	cp := *r
	m.resources[r.ID] = &cp
	return nil
}

func (m *mockResourceRepo) Deactivate(_ context.Context, id uint) error {
	r, ok := m.resources[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.IsActive = false
	return nil
}

// ── Mock ProfileRepository ──

type mockProfileRepo struct {
	profiles    map[string]*model.UserProfile // key: user_id
	nextID      uint
	createCalls int
	paths       *mockCareerPathRepo
	users       *mockUserRepo
}

func newMockProfileRepo(paths *mockCareerPathRepo, users *mockUserRepo) *mockProfileRepo {
	return &mockProfileRepo{
		profiles: make(map[string]*model.UserProfile),
		nextID:   1,
		paths:    paths,
		users:    users,
	}
}

func (m *mockProfileRepo) CreateIfAbsent(_ context.Context, p *model.UserProfile) error {
	m.createCalls++
	if _, ok := m.profiles[p.UserID]; ok {
		return nil
	}
	cp := *p
	cp.ID = m.nextID
	cp.Version = 1
	m.nextID++
	m.profiles[p.UserID] = &cp
	return nil
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID string) (*model.UserProfile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	cp.CurrentCareerPath = nil
	if cp.CurrentCareerPathID != nil {
		if path, ok := m.paths.paths[*cp.CurrentCareerPathID]; ok {
			cp.CurrentCareerPath = path
		}
	}
	if u, ok := m.users.users[userID]; ok {
		cp.User = u
	}
	return &cp, nil
}

func (m *mockProfileRepo) Update(_ context.Context, p *model.UserProfile) error {
	stored, ok := m.profiles[p.UserID]
	if !ok || stored.Version != p.Version {
		return pkgerrors.ErrOptimisticLock
	}
	cp := *p
	cp.Version = p.Version + 1
	m.profiles[p.UserID] = &cp
	p.Version = cp.Version
	return nil
}

// ── Mock Cache / TokenBlacklist ──

type mockCache struct {
	data    map[string][]byte
	getErr  error
	gets    int
	sets    int
	deletes int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	m.gets++
	if m.getErr != nil {
		return m.getErr
	}
	raw, ok := m.data[key]
	if !ok {
		return pkgredis.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *mockCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.deletes++
		delete(m.data, k)
	}
	return nil
}

type mockBlacklist struct {
	tokens map[string]time.Duration
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{tokens: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.tokens[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := m.tokens[jti]
	return ok, nil
}

// ── 测试辅助 ──

// mockRepos 一组互相关联的 mock 仓储
type mockRepos struct {
	users       *mockUserRepo
	paths       *mockCareerPathRepo
	assessments *mockAssessmentRepo
	results     *mockResultRepo
	resources   *mockResourceRepo
	profiles    *mockProfileRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		users:       newMockUserRepo(),
		paths:       newMockCareerPathRepo(),
		assessments: newMockAssessmentRepo(),
		resources:   newMockResourceRepo(),
	}
	m.results = newMockResultRepo(m.assessments, m.users)
	m.profiles = newMockProfileRepo(m.paths, m.users)

	repo := &repository.Repository{
		User:             m.users,
		CareerPath:       m.paths,
		Assessment:       m.assessments,
		AssessmentResult: m.results,
		Resource:         m.resources,
		Profile:          m.profiles,
	}
	return repo, m
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-1234567890",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
		},
		Cache:          config.CacheConfig{CategoriesTTL: time.Minute},
		Recommendation: config.RecommendationConfig{TopN: 5, FeaturedSize: 6},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
