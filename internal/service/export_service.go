package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tuilachit/Careercompass/internal/model"
	"github.com/tuilachit/Careercompass/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoResults    = errors.New("该测评暂无提交结果")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportResults 导出某测评的全部提交结果为 Excel
	ExportResults(ctx context.Context, assessmentID uint) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportResults — 导出测评结果为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "结果"
//   - 固定列：结果ID | 用户 | 会话 | 完成时间
//   - 每道题一列，单元格为已选项（"; " 分隔）
//   - 末列：推荐职业（按排名，"; " 分隔）
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportResults(ctx context.Context, assessmentID uint) (*bytes.Buffer, string, error) {
	// 1. 查询测评（含已停用）
	assessment, err := s.repo.Assessment.GetByID(ctx, assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrAssessmentNotFound
		}
		s.logger.Error("查询测评失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 查询结果
	results, err := s.repo.AssessmentResult.ListForExport(ctx, assessmentID)
	if err != nil {
		s.logger.Error("查询测评结果失败", zap.Error(err))
		return nil, "", err
	}
	if len(results) == 0 {
		return nil, "", ErrExportNoResults
	}

	// 3. 批量查询推荐职业名称，避免 N+1
	titles, err := s.careerTitles(ctx, results)
	if err != nil {
		s.logger.Error("查询职业路径失败", zap.Error(err))
		return nil, "", err
	}

	// 4. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "结果"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})

	headers := []string{"结果ID", "用户", "会话", "完成时间"}
	for _, q := range assessment.Questions {
		headers = append(headers, fmt.Sprintf("Q%d %s", q.ID, q.Question))
	}
	headers = append(headers, "推荐职业")

	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(headers)-1), 1), headerStyle)
	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "C", 20)
	f.SetColWidth(sheetName, "D", "D", 22)
	if len(headers) > 5 {
		f.SetColWidth(sheetName, colName(4), colName(len(headers)-2), 28)
	}
	f.SetColWidth(sheetName, colName(len(headers)-1), colName(len(headers)-1), 40)

	row := 2
	for i := range results {
		r := &results[i]

		user := "-"
		if r.User != nil {
			user = r.User.Username
		} else if r.UserID != nil {
			user = *r.UserID
		}
		session := "-"
		if r.SessionID != nil {
			session = *r.SessionID
		}

		f.SetCellValue(sheetName, cell("A", row), r.ID)
		f.SetCellValue(sheetName, cell("B", row), user)
		f.SetCellValue(sheetName, cell("C", row), session)
		f.SetCellValue(sheetName, cell("D", row), r.CompletedAt.UTC().Format("2006-01-02 15:04:05"))

		selected := answersByQuestion(r.Answers)
		for qi, q := range assessment.Questions {
			f.SetCellValue(sheetName, cell(colName(4+qi), row), strings.Join(selected[q.ID], "; "))
		}

		names := make([]string, 0, len(r.RecommendedCareers))
		for _, id := range r.RecommendedCareers {
			if t, ok := titles[id]; ok {
				names = append(names, t)
			} else {
				names = append(names, fmt.Sprintf("#%d", id))
			}
		}
		f.SetCellValue(sheetName, cell(colName(len(headers)-1), row), strings.Join(names, "; "))
		row++
	}

	// 5. 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("assessment_%d_results.xlsx", assessment.ID)
	return buf, filename, nil
}

func (s *exportService) careerTitles(ctx context.Context, results []model.AssessmentResult) (map[uint]string, error) {
	seen := make(map[uint]bool)
	var ids []uint
	for _, r := range results {
		for _, id := range r.RecommendedCareers {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	titles := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}
	paths, err := s.repo.CareerPath.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		titles[p.ID] = p.Title
	}
	return titles, nil
}

func answersByQuestion(answers []model.Answer) map[int][]string {
	m := make(map[int][]string, len(answers))
	for _, a := range answers {
		m[a.QuestionID] = append(m[a.QuestionID], a.Selected...)
	}
	return m
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
