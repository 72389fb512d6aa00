package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/tuilachit/Careercompass/internal/dto"
)

func setupTestResourceService(cache Cache) (ResourceService, *mockRepos) {
	repo, m := newMockRepos()
	svc := NewResourceService(testConfig(), repo, cache, testLogger())
	return svc, m
}

func validCreateResourceRequest(title string, featured bool) *dto.CreateResourceRequest {
	return &dto.CreateResourceRequest{
		Title:           title,
		Content:         "How to write a great resume",
		ResourceType:    "guide",
		Category:        "resume",
		DifficultyLevel: "beginner",
		EstimatedTime:   intPtr(15),
		Tags:            []string{"resume", "tips"},
		IsFeatured:      featured,
	}
}

func TestResourceService_CreateAndGet(t *testing.T) {
	svc, _ := setupTestResourceService(nil)

	created, err := svc.Create(context.Background(), validCreateResourceRequest("Resume 101", true))
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if !created.IsActive || !created.IsFeatured {
		t.Errorf("期望 is_active=true is_featured=true，实际: %+v", created)
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if got.Title != "Resume 101" || len(got.Tags) != 2 {
		t.Errorf("返回数据不符: %+v", got)
	}
}

func TestResourceService_Featured_LimitedToSix(t *testing.T) {
	svc, _ := setupTestResourceService(nil)
	for i := 0; i < 8; i++ {
		_, _ = svc.Create(context.Background(), validCreateResourceRequest(fmt.Sprintf("R%d", i), true))
	}
	_, _ = svc.Create(context.Background(), validCreateResourceRequest("Plain", false))

	featured, err := svc.Featured(context.Background())
	if err != nil {
		t.Fatalf("Featured 应成功: %v", err)
	}
	if len(featured) != 6 {
		t.Errorf("期望 6 条，实际: %d", len(featured))
	}
	for _, r := range featured {
		if !r.IsFeatured {
			t.Errorf("期望仅返回精选资源，实际: %s", r.Title)
		}
	}
}

func TestResourceService_ListFilterFeatured(t *testing.T) {
	svc, _ := setupTestResourceService(nil)
	_, _ = svc.Create(context.Background(), validCreateResourceRequest("A", true))
	_, _ = svc.Create(context.Background(), validCreateResourceRequest("B", false))

	no := false
	list, total, err := svc.List(context.Background(), &dto.ResourceListRequest{IsFeatured: &no})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 1 || list[0].Title != "B" {
		t.Errorf("期望仅返回非精选资源，实际: %v", list)
	}
}

func TestResourceService_UpdateAndDelete(t *testing.T) {
	cache := newMockCache()
	svc, m := setupTestResourceService(cache)
	created, _ := svc.Create(context.Background(), validCreateResourceRequest("Interview", false))

	category := "interview"
	featured := true
	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateResourceRequest{
		Category:   &category,
		IsFeatured: &featured,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.Category != "interview" || !updated.IsFeatured {
		t.Errorf("更新结果不符: %+v", updated)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if m.resources.resources[created.ID].IsActive {
		t.Error("期望软删除后 is_active=false")
	}
	if _, err := svc.GetByID(context.Background(), created.ID); !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("期望 ErrResourceNotFound，实际: %v", err)
	}
	if cache.deletes < 3 {
		t.Errorf("期望每次写操作清除类别缓存，实际: %d", cache.deletes)
	}
}

func TestResourceService_Categories(t *testing.T) {
	cache := newMockCache()
	svc, _ := setupTestResourceService(cache)
	_, _ = svc.Create(context.Background(), validCreateResourceRequest("A", false))

	categories, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories 应成功: %v", err)
	}
	if len(categories) != 1 || categories[0] != "resume" {
		t.Errorf("期望 [resume]，实际: %v", categories)
	}

	_, _ = svc.Categories(context.Background())
	if cache.gets != 2 || cache.sets != 1 {
		t.Errorf("期望第二次命中缓存，gets=%d sets=%d", cache.gets, cache.sets)
	}
}
