package service

import (
	"sort"

	"github.com/tuilachit/Careercompass/internal/model"
)

// techKeyword 计分关键字，匹配时忽略大小写
const techKeyword = "technology"

// pointsPerMatch 每个命中作答的得分
const pointsPerMatch = 2

// ScoredCareerPath 带分数的职业路径
type ScoredCareerPath struct {
	CareerID uint   `json:"career_id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// ScoreCareerPaths 为在架职业路径打分并返回前 topN 个
//
// 规则：
//   - 分数 = 已选项文本包含 "technology" 的作答数 × 2，对所有路径相同
//   - 按分数降序稳定排序，同分保持传入的目录顺序
//   - topN <= 0 时返回空
//
// 纯函数，不访问存储
func ScoreCareerPaths(paths []model.CareerPath, answers []model.Answer, topN int) []ScoredCareerPath {
	if len(paths) == 0 || topN <= 0 {
		return []ScoredCareerPath{}
	}

	matched := 0
	for _, a := range answers {
		if a.ContainsFold(techKeyword) {
			matched++
		}
	}

	scored := make([]ScoredCareerPath, 0, len(paths))
	for _, p := range paths {
		scored = append(scored, ScoredCareerPath{
			CareerID: p.ID,
			Title:    p.Title,
			Category: p.Category,
			Score:    matched * pointsPerMatch,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}

// CareerIDs 提取排名后的职业路径 ID
func CareerIDs(scored []ScoredCareerPath) []uint {
	ids := make([]uint, 0, len(scored))
	for _, s := range scored {
		ids = append(ids, s.CareerID)
	}
	return ids
}
