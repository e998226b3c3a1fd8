// Package report 把结构化分析结果渲染为 PDF、HTML 摘要和 zip 包
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iWorld-y/site_radar/internal/logger"
	"github.com/iWorld-y/site_radar/pkg/model"
)

const (
	CompanyPDFName  = "company_analysis.pdf"
	UseCasesPDFName = "use_cases.pdf"
	HTMLName        = "index.html"
	BundleName      = "website_analysis_reports.zip"
)

// Generate 在 dir 下写出全部报告文件
func Generate(dir string, theme *Theme, res *model.Result) (model.ReportFiles, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return model.ReportFiles{}, fmt.Errorf("create output dir: %w", err)
	}
	files := model.ReportFiles{
		CompanyPDF:  filepath.Join(dir, CompanyPDFName),
		UseCasesPDF: filepath.Join(dir, UseCasesPDFName),
		HTML:        filepath.Join(dir, HTMLName),
		Bundle:      filepath.Join(dir, BundleName),
	}

	steps := []struct {
		path  string
		write func(w io.Writer) error
	}{
		{files.CompanyPDF, func(w io.Writer) error {
			return WriteCompanyAnalysis(w, theme, res.Company, res.Competitor)
		}},
		{files.UseCasesPDF, func(w io.Writer) error {
			return WriteUseCases(w, theme, res.UseCases, res.DatasetLinks)
		}},
		{files.HTML, func(w io.Writer) error {
			return WriteHTML(w, res)
		}},
		{files.Bundle, func(w io.Writer) error {
			return WriteBundle(w, files.CompanyPDF, files.UseCasesPDF)
		}},
	}
	for _, s := range steps {
		if err := writeFile(s.path, s.write); err != nil {
			return model.ReportFiles{}, err
		}
		logger.Log.Infof("报告已生成: %s", s.path)
	}
	return files, nil
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
