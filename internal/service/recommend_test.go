package service

import (
	"fmt"
	"testing"

	"github.com/tuilachit/Careercompass/internal/model"
)

func catalog(n int) []model.CareerPath {
	paths := make([]model.CareerPath, 0, n)
	for i := 1; i <= n; i++ {
		paths = append(paths, model.CareerPath{
			ID:       uint(i),
			Title:    fmt.Sprintf("Path %02d", i),
			Category: "technology",
		})
	}
	return paths
}

func TestScoreCareerPaths_TechnologyAnswer(t *testing.T) {
	answers := []model.Answer{
		{QuestionID: 1, Selected: []string{"Software Developer - Technology role"}},
	}

	scored := ScoreCareerPaths(catalog(6), answers, 5)
	if len(scored) != 5 {
		t.Fatalf("期望返回 5 条，实际: %d", len(scored))
	}
	for i, s := range scored {
		if s.Score != 2 {
			t.Errorf("期望每条得分 2，实际[%d]: %d", i, s.Score)
		}
		if s.CareerID != uint(i+1) {
			t.Errorf("期望保持目录顺序，位置 %d 实际 ID: %d", i, s.CareerID)
		}
	}
}

func TestScoreCareerPaths_EmptyAnswers(t *testing.T) {
	scored := ScoreCareerPaths(catalog(7), nil, 5)
	if len(scored) != 5 {
		t.Fatalf("期望返回 5 条，实际: %d", len(scored))
	}
	for i, s := range scored {
		if s.Score != 0 {
			t.Errorf("期望得分 0，实际[%d]: %d", i, s.Score)
		}
		if s.CareerID != uint(i+1) {
			t.Errorf("期望目录顺序，位置 %d 实际 ID: %d", i, s.CareerID)
		}
	}
}

func TestScoreCareerPaths_NoPaths(t *testing.T) {
	answers := []model.Answer{{QuestionID: 1, Selected: []string{"technology"}}}
	scored := ScoreCareerPaths(nil, answers, 5)
	if scored == nil || len(scored) != 0 {
		t.Errorf("期望返回空切片，实际: %v", scored)
	}
}

func TestScoreCareerPaths_FewerThanTopN(t *testing.T) {
	scored := ScoreCareerPaths(catalog(3), nil, 5)
	if len(scored) != 3 {
		t.Errorf("期望返回全部 3 条，实际: %d", len(scored))
	}
}

func TestScoreCareerPaths_CaseInsensitiveAndMultipleMatches(t *testing.T) {
	answers := []model.Answer{
		{QuestionID: 1, Selected: []string{"TECHNOLOGY"}},
		{QuestionID: 2, Selected: []string{"Healthcare", "information technology"}},
		{QuestionID: 3, Selected: []string{"Arts"}},
		{QuestionID: 4, Selected: []string{}},
	}

	scored := ScoreCareerPaths(catalog(2), answers, 5)
	for _, s := range scored {
		// 命中 2 个作答（第 2 题多个选项只计一次）
		if s.Score != 4 {
			t.Errorf("期望得分 4，实际: %d", s.Score)
		}
	}
}

func TestScoreCareerPaths_NoKeywordMeansZero(t *testing.T) {
	answers := []model.Answer{
		{QuestionID: 1, Selected: []string{"Healthcare"}},
		{QuestionID: 2, Selected: []string{"Teaching", "Tech"}},
	}
	for _, s := range ScoreCareerPaths(catalog(4), answers, 5) {
		if s.Score != 0 {
			t.Errorf("期望得分 0，实际: %d", s.Score)
		}
	}
}

func TestScoreCareerPaths_TopNZero(t *testing.T) {
	if got := ScoreCareerPaths(catalog(4), nil, 0); len(got) != 0 {
		t.Errorf("期望 topN=0 返回空，实际: %d", len(got))
	}
}

func TestCareerIDs(t *testing.T) {
	ids := CareerIDs([]ScoredCareerPath{{CareerID: 3}, {CareerID: 1}})
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 1 {
		t.Errorf("期望 [3 1]，实际: %v", ids)
	}
	if ids := CareerIDs(nil); ids == nil || len(ids) != 0 {
		t.Errorf("期望空切片，实际: %v", ids)
	}
}
